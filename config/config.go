package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Chain     ChainConfig     `mapstructure:"chain"`
	Watcher   WatcherConfig   `mapstructure:"watcher"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Signer    SignerConfig    `mapstructure:"signer"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres, memory
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// EngineConfig tunes saga retries, expiries and per-parent locking.
type EngineConfig struct {
	AssociationMaxAttempts int           `mapstructure:"association_max_attempts"`
	ScheduleMaxAttempts    int           `mapstructure:"schedule_max_attempts"`
	PaymentTTL             time.Duration `mapstructure:"payment_ttl"`
	SwapTTL                time.Duration `mapstructure:"swap_ttl"`
	LockTTL                time.Duration `mapstructure:"lock_ttl"`
	LockWait               time.Duration `mapstructure:"lock_wait"`
	StaleAfter             time.Duration `mapstructure:"stale_after"`
	SignerTimeout          time.Duration `mapstructure:"signer_timeout"`
}

// ChainConfig describes the network and the mirror node used for reads.
type ChainConfig struct {
	Network            string        `mapstructure:"network"`
	MirrorURL          string        `mapstructure:"mirror_url"`
	NodeAccountIDs     []string      `mapstructure:"node_account_ids"`
	RequestsPerSecond  float64       `mapstructure:"requests_per_second"`
	Burst              int           `mapstructure:"burst"`
	Timeout            time.Duration `mapstructure:"timeout"`
	ValidDuration      time.Duration `mapstructure:"valid_duration"`
	MaxTransactionFee  int64         `mapstructure:"max_transaction_fee"`
	SwapGas            int64         `mapstructure:"swap_gas"`
	ScheduleMemoPrefix string        `mapstructure:"schedule_memo_prefix"`
}

// WatcherConfig holds the HMAC credentials of the confirmation watcher.
type WatcherConfig struct {
	AccessKey string        `mapstructure:"access_key"`
	Secret    string        `mapstructure:"secret"`
	NonceTTL  time.Duration `mapstructure:"nonce_ttl"`
	MaxDrift  time.Duration `mapstructure:"max_drift"`
}

// Directory sources.
const (
	DirectoryDatabase = "database"
	DirectoryFile     = "file"
)

// DirectoryConfig selects where enterprise policy and identities are read from.
type DirectoryConfig struct {
	Source string `mapstructure:"source"` // database, file
	Path   string `mapstructure:"path"`
}

type NotifyConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Secret     string        `mapstructure:"secret"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// SignerConfig points at an optional custodial signing bridge.
type SignerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
}

// Validate checks cross-field constraints viper cannot express.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("database.driver: unknown driver %q", c.Database.Driver))
	}
	switch c.Directory.Source {
	case DirectoryDatabase:
		if c.Database.Driver == DriverMemory {
			errs = append(errs, errors.New("directory.source: database requires database.driver postgres"))
		}
	case DirectoryFile:
		if c.Directory.Path == "" {
			errs = append(errs, errors.New("directory.path: required for file source"))
		}
	default:
		errs = append(errs, fmt.Errorf("directory.source: unknown source %q", c.Directory.Source))
	}
	if c.Engine.AssociationMaxAttempts < 1 || c.Engine.ScheduleMaxAttempts < 1 {
		errs = append(errs, errors.New("engine: max attempts must be at least 1"))
	}
	if c.Engine.LockWait <= 0 || c.Engine.LockTTL <= 0 {
		errs = append(errs, errors.New("engine: lock_ttl and lock_wait must be positive"))
	}
	if c.Signer.Enabled && c.Signer.URL == "" {
		errs = append(errs, errors.New("signer.url: required when signer is enabled"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: DLT_.
// Nested keys use underscore: DLT_DATABASE_HOST, DLT_ENGINE_LOCK_WAIT, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "dlt_orchestrator")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "wage-portal")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("engine.association_max_attempts", 3)
	v.SetDefault("engine.schedule_max_attempts", 3)
	v.SetDefault("engine.payment_ttl", "15m")
	v.SetDefault("engine.swap_ttl", "10m")
	v.SetDefault("engine.lock_ttl", "10s")
	v.SetDefault("engine.lock_wait", "3s")
	v.SetDefault("engine.stale_after", "1h")
	v.SetDefault("engine.signer_timeout", "2m")
	v.SetDefault("chain.network", "testnet")
	v.SetDefault("chain.mirror_url", "https://testnet.mirrornode.hedera.com")
	v.SetDefault("chain.node_account_ids", []string{"0.0.3"})
	v.SetDefault("chain.requests_per_second", 10)
	v.SetDefault("chain.burst", 5)
	v.SetDefault("chain.timeout", "5s")
	v.SetDefault("chain.valid_duration", "120s")
	v.SetDefault("chain.max_transaction_fee", 200000000)
	v.SetDefault("chain.swap_gas", 300000)
	v.SetDefault("chain.schedule_memo_prefix", "wage-advance")
	v.SetDefault("watcher.access_key", "")
	v.SetDefault("watcher.secret", "")
	v.SetDefault("watcher.nonce_ttl", "120s")
	v.SetDefault("watcher.max_drift", "60s")
	v.SetDefault("directory.source", DirectoryDatabase)
	v.SetDefault("directory.path", "")
	v.SetDefault("notify.enabled", true)
	v.SetDefault("notify.secret", "")
	v.SetDefault("notify.timeout", "10s")
	v.SetDefault("notify.max_retries", 3)
	v.SetDefault("signer.enabled", false)
	v.SetDefault("signer.url", "")
	v.SetDefault("signer.api_key", "")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: DLT_DATABASE_HOST -> database.host
	v.SetEnvPrefix("DLT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
