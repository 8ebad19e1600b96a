package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/config"
	"github.com/tdex-network/osmosis-trader/internal/core/application/execution"
	"github.com/tdex-network/osmosis-trader/internal/core/application/monitor"
	"github.com/tdex-network/osmosis-trader/internal/core/application/oracle"
	"github.com/tdex-network/osmosis-trader/internal/core/application/trade"
	"github.com/tdex-network/osmosis-trader/internal/core/application/wallet"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
	"github.com/tdex-network/osmosis-trader/internal/infrastructure/lcd"
	"github.com/tdex-network/osmosis-trader/internal/infrastructure/osmosisd"
	dbbadger "github.com/tdex-network/osmosis-trader/internal/infrastructure/storage/db/badger"
	dbsqlite "github.com/tdex-network/osmosis-trader/internal/infrastructure/storage/db/sqlite"
	httpinterface "github.com/tdex-network/osmosis-trader/internal/interfaces/http"
	"github.com/tdex-network/osmosis-trader/pkg/stats"
)

const initTimeout = 30 * time.Second

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	datadir := config.GetDatadir()
	dbDir := filepath.Join(datadir, config.DbLocation)
	profilerEnabled := config.GetBool(config.EnableProfilerKey)
	statsInterval := config.GetDuration(config.StatsIntervalKey)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if profilerEnabled {
		dumpPath := filepath.Join(
			datadir, config.ProfilerLocation,
			fmt.Sprintf("metrics-%d.txt", time.Now().Unix()),
		)
		stats.EnableMemoryStatistics(ctx, statsInterval, dumpPath)
	}

	registry, err := config.GetTokenRegistry()
	if err != nil {
		log.WithError(err).Fatal("invalid token registry")
	}

	repoManager, err := newRepoManager(config.GetString(config.DBTypeKey), dbDir)
	if err != nil {
		log.WithError(err).Fatal("error while opening db")
	}
	defer repoManager.Close()

	chainClient, err := osmosisd.NewClient(osmosisd.Config{
		Binary:        config.GetString(config.ClientBinaryKey),
		WalletName:    config.GetString(config.WalletNameKey),
		ChainID:       config.GetString(config.ChainIDKey),
		GasAdjustment: config.GetFloat(config.GasAdjustmentKey),
		GasPrices:     config.GetString(config.GasPricesKey),
		Timeout:       config.GetDuration(config.ClientTimeoutKey),
		RateLimit:     config.GetInt(config.ClientRateLimitKey),
	}, osmosisd.NewExecRunner())
	if err != nil {
		log.WithError(err).Fatal("error while setting up osmosis client")
	}

	txQuerier, err := lcd.NewService(
		config.GetString(config.LcdURLKey), config.GetDuration(config.ClientTimeoutKey),
	)
	if err != nil {
		log.WithError(err).Fatal("error while setting up lcd client")
	}

	oracleSvc, err := oracle.NewService(registry, chainClient, oracle.Config{
		CacheTTL:        config.GetDuration(config.PriceCacheTTLKey),
		CacheSize:       config.GetInt(config.PriceCacheSizeKey),
		StalenessWindow: config.GetDuration(config.PriceStalenessWindowKey),
	})
	if err != nil {
		log.WithError(err).Fatal("error while setting up price oracle")
	}

	walletSvc, err := wallet.NewService(
		registry, chainClient, config.GetString(config.WalletAddressKey),
	)
	if err != nil {
		log.WithError(err).Fatal("error while setting up wallet service")
	}

	executionSvc, err := execution.NewService(
		registry, chainClient, txQuerier, repoManager, execution.Config{
			GracePeriod: config.GetDuration(config.ReconcileGracePeriodKey),
			MaxAttempts: config.GetInt(config.ReconcileAttemptsKey),
			Backoff:     config.GetDuration(config.ReconcileBackoffKey),
		},
	)
	if err != nil {
		log.WithError(err).Fatal("error while setting up execution service")
	}
	defer executionSvc.Close()

	initCtx, initCancel := context.WithTimeout(ctx, initTimeout)
	ids, err := trade.NewOrderIDGenerator(initCtx, repoManager)
	initCancel()
	if err != nil {
		log.WithError(err).Fatal("error while restoring order counter")
	}

	tradeSvc, err := trade.NewService(
		registry, repoManager, oracleSvc, executionSvc, walletSvc, ids,
		config.GetFloat(config.DefaultSlippageKey),
	)
	if err != nil {
		log.WithError(err).Fatal("error while setting up trade service")
	}

	monitorSvc, err := monitor.NewService(
		repoManager.PendingOrderRepository(), oracleSvc, executionSvc, walletSvc,
		monitor.Config{
			OrderCheckInterval:     config.GetDuration(config.OrderCheckIntervalKey),
			PriceRefreshInterval:   config.GetDuration(config.PriceRefreshIntervalKey),
			BalanceRefreshInterval: config.GetDuration(config.BalanceRefreshIntervalKey),
		},
	)
	if err != nil {
		log.WithError(err).Fatal("error while setting up order monitor")
	}

	httpSvc, err := httpinterface.NewService(
		config.GetInt(config.ListeningPortKey), tradeSvc,
		config.GetStringList(config.CorsAllowedOriginsKey),
	)
	if err != nil {
		log.WithError(err).Fatal("error while setting up http interface")
	}

	log.Debug("starting daemon")

	if err := monitorSvc.Start(ctx); err != nil {
		log.WithError(err).Fatal("error while starting order monitor")
	}
	defer monitorSvc.Stop()

	if err := httpSvc.Start(); err != nil {
		log.WithError(err).Error("error while starting http interface")
		return
	}
	defer httpSvc.Stop()

	log.Infof(
		"trader started with %d pairs, db %s in %s",
		len(registry.Pairs()), config.GetString(config.DBTypeKey), dbDir,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Info("shutting down daemon")
}

func newRepoManager(dbType, dbDir string) (ports.RepoManager, error) {
	switch dbType {
	case config.DBSqlite:
		return dbsqlite.NewRepoManager(dbDir)
	default:
		dbLogger := log.New()
		dbLogger.SetLevel(log.WarnLevel)
		return dbbadger.NewRepoManager(dbDir, dbLogger)
	}
}
