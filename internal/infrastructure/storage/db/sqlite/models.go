package dbsqlite

import (
	"time"

	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

type pendingOrderModel struct {
	ID           string    `gorm:"primaryKey"`
	CreatedAt    time.Time `gorm:"index"`
	FromToken    string
	ToToken      string
	Amount       float64
	Kind         string
	TriggerPrice float64
	MinOut       *float64
}

func (pendingOrderModel) TableName() string {
	return "pending_orders"
}

func newPendingOrderModel(o domain.PendingOrder) pendingOrderModel {
	return pendingOrderModel{
		ID:           o.ID,
		CreatedAt:    o.CreatedAt,
		FromToken:    o.FromToken,
		ToToken:      o.ToToken,
		Amount:       o.Amount,
		Kind:         o.Kind.String(),
		TriggerPrice: o.TriggerPrice,
		MinOut:       o.MinOut,
	}
}

func (m pendingOrderModel) toDomain() domain.PendingOrder {
	return domain.PendingOrder{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		FromToken:    m.FromToken,
		ToToken:      m.ToToken,
		Amount:       m.Amount,
		Kind:         domain.OrderKind(m.Kind),
		TriggerPrice: m.TriggerPrice,
		MinOut:       m.MinOut,
	}
}

type transactionModel struct {
	TxHash            string    `gorm:"primaryKey"`
	OrderID           string    `gorm:"index"`
	Timestamp         time.Time `gorm:"index"`
	Kind              string
	Status            string
	FromToken         string
	ToToken           string
	AmountIn          float64
	TriggerPrice      *float64
	ExpectedAmountOut *float64
	ActualAmountOut   *float64
	ExecutionPrice    *float64
	TokenInDenom      string
	TokenOutDenom     string
	AmountInRaw       string
	AmountOutRaw      string
	PoolID            string
	MinOutRaw         string
}

func (transactionModel) TableName() string {
	return "transactions"
}

func newTransactionModel(t domain.Transaction) transactionModel {
	return transactionModel{
		TxHash:            t.TxHash,
		OrderID:           t.OrderID,
		Timestamp:         t.Timestamp,
		Kind:              t.Kind.String(),
		Status:            t.Status.String(),
		FromToken:         t.FromToken,
		ToToken:           t.ToToken,
		AmountIn:          t.AmountIn,
		TriggerPrice:      t.TriggerPrice,
		ExpectedAmountOut: t.ExpectedAmountOut,
		ActualAmountOut:   t.ActualAmountOut,
		ExecutionPrice:    t.ExecutionPrice,
		TokenInDenom:      t.TokenInDenom,
		TokenOutDenom:     t.TokenOutDenom,
		AmountInRaw:       t.AmountInRaw,
		AmountOutRaw:      t.AmountOutRaw,
		PoolID:            t.PoolID,
		MinOutRaw:         t.MinOutRaw,
	}
}

func (m transactionModel) toDomain() domain.Transaction {
	return domain.Transaction{
		TxHash:            m.TxHash,
		OrderID:           m.OrderID,
		Timestamp:         m.Timestamp,
		Kind:              domain.OrderKind(m.Kind),
		Status:            domain.TxStatus(m.Status),
		FromToken:         m.FromToken,
		ToToken:           m.ToToken,
		AmountIn:          m.AmountIn,
		TriggerPrice:      m.TriggerPrice,
		ExpectedAmountOut: m.ExpectedAmountOut,
		ActualAmountOut:   m.ActualAmountOut,
		ExecutionPrice:    m.ExecutionPrice,
		TokenInDenom:      m.TokenInDenom,
		TokenOutDenom:     m.TokenOutDenom,
		AmountInRaw:       m.AmountInRaw,
		AmountOutRaw:      m.AmountOutRaw,
		PoolID:            m.PoolID,
		MinOutRaw:         m.MinOutRaw,
	}
}

type orderCounterModel struct {
	ID    uint `gorm:"primaryKey"`
	Value uint64
}

func (orderCounterModel) TableName() string {
	return "order_counter"
}
