package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

const (
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// ListeningPortKey is the port where the HTTP operator interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// CorsAllowedOriginsKey is the comma separated list of origins allowed to
	// call the HTTP operator interface from a browser
	CorsAllowedOriginsKey = "CORS_ALLOWED_ORIGINS"
	// ClientBinaryKey is the path or name of the osmosisd executable
	ClientBinaryKey = "CLIENT_BINARY"
	// WalletNameKey is the name of the osmosisd keyring entry used to sign swaps
	WalletNameKey = "WALLET_NAME"
	// WalletAddressKey is the address of the trading wallet
	WalletAddressKey = "WALLET_ADDRESS"
	// ChainIDKey is the id of the Osmosis chain
	ChainIDKey = "CHAIN_ID"
	// GasAdjustmentKey is the factor applied to the simulated gas of swaps
	GasAdjustmentKey = "GAS_ADJUSTMENT"
	// GasPricesKey is the gas price of swaps, ie. 0.025uosmo
	GasPricesKey = "GAS_PRICES"
	// LcdURLKey is the endpoint of the LCD REST API used to query transactions
	LcdURLKey = "LCD_URL"
	// ClientTimeoutKey bounds every invocation of osmosisd and LCD request
	ClientTimeoutKey = "CLIENT_TIMEOUT"
	// ClientRateLimitKey is the max number of osmosisd invocations per second, 0 for unlimited
	ClientRateLimitKey = "CLIENT_RATE_LIMIT"
	// OrderCheckIntervalKey is the interval between checks of pending orders
	OrderCheckIntervalKey = "ORDER_CHECK_INTERVAL"
	// PriceRefreshIntervalKey is the interval between price refreshes
	PriceRefreshIntervalKey = "PRICE_REFRESH_INTERVAL"
	// BalanceRefreshIntervalKey is the interval between wallet balance refreshes
	BalanceRefreshIntervalKey = "BALANCE_REFRESH_INTERVAL"
	// PriceCacheTTLKey is how long a sampled price is served without sampling again
	PriceCacheTTLKey = "PRICE_CACHE_TTL"
	// PriceCacheSizeKey is the soft cap of the price cache
	PriceCacheSizeKey = "PRICE_CACHE_SIZE"
	// PriceStalenessWindowKey is the max age of a cached price served when sampling fails
	PriceStalenessWindowKey = "PRICE_STALENESS_WINDOW"
	// ReconcileGracePeriodKey is the delay before reconciling a submitted swap
	ReconcileGracePeriodKey = "RECONCILE_GRACE_PERIOD"
	// ReconcileAttemptsKey is the max number of reconciliation attempts
	ReconcileAttemptsKey = "RECONCILE_ATTEMPTS"
	// ReconcileBackoffKey is the delay between the first reconciliation attempts, doubled every time
	ReconcileBackoffKey = "RECONCILE_BACKOFF"
	// DefaultSlippageKey is the default slippage tolerance in percentage of market orders
	DefaultSlippageKey = "DEFAULT_SLIPPAGE"
	// EnableProfilerKey enables profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing basic statistics
	StatsIntervalKey = "STATS_INTERVAL"

	// TokensKey and PairsKey are read only from the config file and replace
	// the built-in Osmosis tokens and pools.
	TokensKey = "tokens"
	PairsKey  = "pairs"

	DBBadger = "badger"
	DBSqlite = "sqlite"

	DbLocation       = "db"
	ProfilerLocation = "stats"

	configFileName = "config"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("osmosis-trader", false)

type tokenConfig struct {
	Symbol   string `mapstructure:"symbol"`
	Denom    string `mapstructure:"denom"`
	Decimals int32  `mapstructure:"decimals"`
	Pattern  string `mapstructure:"pattern"`
}

type pairConfig struct {
	PoolID           string  `mapstructure:"pool_id"`
	Base             string  `mapstructure:"base"`
	Quote            string  `mapstructure:"quote"`
	BaseSampleAmount  float64 `mapstructure:"base_sample_amount"`
	QuoteSampleAmount float64 `mapstructure:"quote_sample_amount"`
	FallbackPrice    float64 `mapstructure:"fallback_price"`
}

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("OSMOTRADER")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(ListeningPortKey, 9945)
	vip.SetDefault(ClientBinaryKey, "osmosisd")
	vip.SetDefault(ChainIDKey, "osmosis-1")
	vip.SetDefault(GasAdjustmentKey, 1.5)
	vip.SetDefault(GasPricesKey, "0.025uosmo")
	vip.SetDefault(LcdURLKey, "https://lcd.osmosis.zone")
	vip.SetDefault(ClientTimeoutKey, 60*time.Second)
	vip.SetDefault(ClientRateLimitKey, 5)
	vip.SetDefault(OrderCheckIntervalKey, 10*time.Second)
	vip.SetDefault(PriceRefreshIntervalKey, 30*time.Second)
	vip.SetDefault(BalanceRefreshIntervalKey, 30*time.Second)
	vip.SetDefault(PriceCacheTTLKey, 15*time.Second)
	vip.SetDefault(PriceCacheSizeKey, domain.DefaultPriceCacheSize)
	vip.SetDefault(PriceStalenessWindowKey, domain.DefaultPriceStalenessWindow)
	vip.SetDefault(ReconcileGracePeriodKey, 3*time.Second)
	vip.SetDefault(ReconcileAttemptsKey, 3)
	vip.SetDefault(ReconcileBackoffKey, 2*time.Second)
	vip.SetDefault(DefaultSlippageKey, 1.0)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 10*time.Minute)

	if err := readConfigFile(); err != nil {
		return fmt.Errorf("error while reading config file: %s", err)
	}

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetStringList returns the comma separated values of the given key.
func GetStringList(key string) []string {
	list := make([]string, 0)
	for _, v := range strings.Split(GetString(key), ",") {
		if v = strings.TrimSpace(v); len(v) > 0 {
			list = append(list, v)
		}
	}
	return list
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetTokenRegistry returns the registry of the tokens and pairs defined in
// the config file, or the built-in Osmosis ones if not defined.
func GetTokenRegistry() (*domain.TokenRegistry, error) {
	tokens := domain.DefaultTokens
	pairs := domain.DefaultPairs

	if vip.IsSet(TokensKey) {
		var tokensCfg []tokenConfig
		if err := vip.UnmarshalKey(TokensKey, &tokensCfg); err != nil {
			return nil, fmt.Errorf("invalid %s: %s", TokensKey, err)
		}
		tokens = make([]domain.Token, 0, len(tokensCfg))
		for _, t := range tokensCfg {
			tokens = append(tokens, domain.Token{
				Symbol:   strings.ToUpper(t.Symbol),
				Denom:    t.Denom,
				Decimals: t.Decimals,
				Pattern:  t.Pattern,
			})
		}
	}

	if vip.IsSet(PairsKey) {
		var pairsCfg []pairConfig
		if err := vip.UnmarshalKey(PairsKey, &pairsCfg); err != nil {
			return nil, fmt.Errorf("invalid %s: %s", PairsKey, err)
		}
		pairs = make([]domain.PairInfo, 0, len(pairsCfg))
		for _, p := range pairsCfg {
			pairs = append(pairs, domain.PairInfo{
				PoolID:           p.PoolID,
				BaseSymbol:       strings.ToUpper(p.Base),
				QuoteSymbol:      strings.ToUpper(p.Quote),
				BaseSampleAmount:  p.BaseSampleAmount,
				QuoteSampleAmount: p.QuoteSampleAmount,
				FallbackPrice:    p.FallbackPrice,
			})
		}
	}

	return domain.NewTokenRegistry(tokens, pairs)
}

func readConfigFile() error {
	vip.SetConfigName(configFileName)
	vip.SetConfigType("yaml")
	vip.AddConfigPath(GetDatadir())

	if err := vip.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundErr) {
			return nil
		}
		return err
	}
	return nil
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBSqlite {
		return fmt.Errorf(
			"%s must be either %s or %s", DBTypeKey, DBBadger, DBSqlite,
		)
	}

	if len(GetString(WalletNameKey)) <= 0 {
		return fmt.Errorf("missing wallet name")
	}
	if len(GetString(WalletAddressKey)) <= 0 {
		return fmt.Errorf("missing wallet address")
	}

	if GetFloat(GasAdjustmentKey) <= 0 {
		return fmt.Errorf("%s must be positive", GasAdjustmentKey)
	}
	if GetInt(ClientRateLimitKey) < 0 {
		return fmt.Errorf("%s must not be negative", ClientRateLimitKey)
	}

	slippage := GetFloat(DefaultSlippageKey)
	if slippage <= 0 || slippage >= 100 {
		return fmt.Errorf("%s must be in range (0, 100)", DefaultSlippageKey)
	}

	for _, key := range []string{
		ClientTimeoutKey, OrderCheckIntervalKey, PriceRefreshIntervalKey,
		BalanceRefreshIntervalKey, PriceCacheTTLKey, PriceStalenessWindowKey,
		ReconcileGracePeriodKey, ReconcileBackoffKey,
	} {
		if GetDuration(key) <= 0 {
			return fmt.Errorf("%s must be a positive duration, ie. 10s", key)
		}
	}
	if GetInt(PriceCacheSizeKey) <= 0 {
		return fmt.Errorf("%s must be positive", PriceCacheSizeKey)
	}
	if GetInt(ReconcileAttemptsKey) <= 0 {
		return fmt.Errorf("%s must be positive", ReconcileAttemptsKey)
	}

	if _, err := GetTokenRegistry(); err != nil {
		return err
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
