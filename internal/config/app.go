package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
)

type HTTPServer struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type ExchangeRateAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type Scheduler struct {
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec"`
}

// Storage selects where preferences live: "postgres", "sqlite", "redis" or "memory".
type Storage struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type Redis struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type Cache struct {
	MaxItems   int64 `mapstructure:"max_items"`
	TTLSeconds int   `mapstructure:"ttl_seconds"`
}

type Catalog struct {
	Currencies []string `mapstructure:"currencies"`
}

type Preferences struct {
	DefaultTargets []string `mapstructure:"default_targets"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	Logging         Logging         `mapstructure:"logging"`
	DbServer        DbServer        `mapstructure:"db_server"`
	Redis           Redis           `mapstructure:"redis"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	Scheduler       Scheduler       `mapstructure:"scheduler"`
	Storage         Storage         `mapstructure:"storage"`
	Cache           Cache           `mapstructure:"cache"`
	Catalog         Catalog         `mapstructure:"catalog"`
	Preferences     Preferences     `mapstructure:"preferences"`
}

// Init reads .env (optional), the yaml file at configPath (optional when empty) and env overrides.
func Init(configPath string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("exchange_rate_api.base_url", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("scheduler.refresh_interval_sec", 1800)
	v.SetDefault("storage.driver", StorageSQLite)
	v.SetDefault("storage.sqlite_path", "data/fxconvert.db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("cache.max_items", 64)
	v.SetDefault("cache.ttl_seconds", 5)

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// redis env vars
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// exchange rate api env vars
	_ = v.BindEnv("exchange_rate_api.base_url", "EXCHANGE_RATE_API_BASE_URL")
	_ = v.BindEnv("exchange_rate_api.api_key", "EXCHANGE_RATE_API_KEY")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("scheduler.refresh_interval_sec", "REFRESH_INTERVAL_SEC")
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("storage.sqlite_path", "SQLITE_PATH")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch cfg.Storage.Driver {
	case StorageMemory, StoragePostgres, StorageSQLite, StorageRedis:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	return &cfg, nil
}
