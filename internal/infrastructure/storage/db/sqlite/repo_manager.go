package dbsqlite

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const dbFile = "trader.db"

type repoManager struct {
	db *gorm.DB

	orderRepository   domain.PendingOrderRepository
	txRepository      domain.TransactionRepository
	counterRepository domain.OrderCounterRepository
}

// NewRepoManager opens (or creates if not exists) the sqlite database in the
// given directory.
func NewRepoManager(baseDbDir string) (ports.RepoManager, error) {
	if len(baseDbDir) <= 0 {
		return nil, fmt.Errorf("missing db directory")
	}
	if err := os.MkdirAll(baseDbDir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(baseDbDir, dbFile)
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening trader db: %w", err)
	}

	if err := db.AutoMigrate(
		&pendingOrderModel{}, &transactionModel{}, &orderCounterModel{},
	); err != nil {
		return nil, fmt.Errorf("migrating trader db: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	return &repoManager{
		db:                db,
		orderRepository:   NewPendingOrderRepositoryImpl(db),
		txRepository:      NewTransactionRepositoryImpl(db),
		counterRepository: NewOrderCounterRepositoryImpl(db),
	}, nil
}

func (r *repoManager) PendingOrderRepository() domain.PendingOrderRepository {
	return r.orderRepository
}

func (r *repoManager) TransactionRepository() domain.TransactionRepository {
	return r.txRepository
}

func (r *repoManager) OrderCounterRepository() domain.OrderCounterRepository {
	return r.counterRepository
}

func (r *repoManager) Close() {
	sqlDB, err := r.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Warn("failed to close trader db")
	}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrStoreIO, err)
}
