package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

type repoManager struct {
	store *badgerhold.Store

	orderRepository   domain.PendingOrderRepository
	txRepository      domain.TransactionRepository
	counterRepository domain.OrderCounterRepository
}

// NewRepoManager opens (or creates if not exists) the badger store in the
// given directory. The store is kept in memory if the directory is empty.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, "trader")
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening trader db: %w", err)
	}

	return &repoManager{
		store:             store,
		orderRepository:   NewPendingOrderRepositoryImpl(store),
		txRepository:      NewTransactionRepositoryImpl(store),
		counterRepository: NewOrderCounterRepositoryImpl(store),
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
	r.store.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrStoreIO, err)
}
