package app

import (
	"context"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/adapters/httpclient"
	"fxconvert/internal/adapters/memory"
	"fxconvert/internal/adapters/postgres"
	redisstore "fxconvert/internal/adapters/redis"
	"fxconvert/internal/adapters/sqlite"
	"fxconvert/internal/api"
	"fxconvert/internal/config"
	"fxconvert/internal/conversion"
	"fxconvert/internal/conversion/handler"
	"fxconvert/internal/platform/db"
	httpserver "fxconvert/internal/platform/http"
	"fxconvert/internal/preferences"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Components are the wired pieces shared by the server and the CLI commands.
type Components struct {
	Config  *config.AppConfig
	Catalog *conversion.Catalog
	State   *conversion.State

	closers []func()
}

// Close releases storage in reverse order of acquisition.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

func SetupLogger(level string) {
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
}

// Build opens storage, applies migrations and creates the conversion state. No fetch is made.
func Build(ctx context.Context, appCfg *config.AppConfig) (*Components, error) {
	c := &Components{Config: appCfg}

	// Bounded context for startup operations (DB connect, migrations, initial reads)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	kv, err := c.openStore(startupCtx)
	if err != nil {
		c.Close()
		return nil, err
	}

	cachedKV, err := cache.NewCachedKVStore(kv, appCfg.Cache.MaxItems, time.Duration(appCfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.closers = append(c.closers, cachedKV.Close)

	prefs := preferences.NewStore(cachedKV, appCfg.Preferences.DefaultTargets)

	c.Catalog = conversion.NewCatalog(appCfg.Catalog.Currencies)

	c.State, err = conversion.NewState(startupCtx, c.Catalog, newRateClient(appCfg), prefs)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	logrus.Info("✅ Preferences loaded")
	return c, nil
}

func (c *Components) openStore(ctx context.Context) (adapters.KVStore, error) {
	switch c.Config.Storage.Driver {
	case config.StoragePostgres:
		pool, err := db.CreatePoolAndPing(ctx, c.Config.DbServer)
		if err != nil {
			logrus.WithError(err).Error("Error connecting to db")
			return nil, err
		}
		c.closers = append(c.closers, pool.Close)
		logrus.Info("✅ Postgres connection successful")

		if err = db.MigratePostgres(ctx, c.Config.DbServer.GetConnectionStr()); err != nil {
			return nil, err
		}
		return postgres.NewKVStore(pool), nil

	case config.StorageSQLite:
		sqlDB, err := db.OpenSQLite(ctx, c.Config.Storage.SQLitePath)
		if err != nil {
			logrus.WithError(err).Error("Error opening sqlite database")
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = sqlDB.Close() })
		logrus.WithField("path", c.Config.Storage.SQLitePath).Info("✅ SQLite database opened")

		if err = db.MigrateSQLite(ctx, sqlDB); err != nil {
			return nil, err
		}
		return sqlite.NewKVStore(sqlDB), nil

	case config.StorageRedis:
		client, err := db.CreateRedisClientAndPing(ctx, c.Config.Redis)
		if err != nil {
			logrus.WithError(err).Error("Error connecting to redis")
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = client.Close() })
		logrus.Info("✅ Redis connection successful")
		return redisstore.NewKVStore(client, c.Config.Redis.KeyPrefix), nil

	default:
		logrus.Warn("Using in-memory preferences; selections are lost on exit")
		return memory.NewKVStore(), nil
	}
}

func newRateClient(appCfg *config.AppConfig) *httpclient.ExchangeRateClient {
	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	if appCfg.ExchangeRateAPI.APIKey == "" {
		logrus.Warn("Exchange rate api key is empty; every refresh will fail")
	}
	return httpclient.NewExchangeRateClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.ExchangeRateAPI.BaseURL, "/"),
		appCfg.ExchangeRateAPI.APIKey,
	)
}

// Run wires the application components, starts HTTP server and scheduler
func Run(appCfg *config.AppConfig) error {
	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := Build(ctx, appCfg)
	if err != nil {
		return err
	}
	defer components.Close()

	unsubscribe := components.State.Subscribe(logStateChange)
	defer unsubscribe()

	scheduler := conversion.NewScheduler(components.State, time.Duration(appCfg.Scheduler.RefreshIntervalSec)*time.Second)
	// Ensure scheduler stops before storage closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	conversionHandler := handler.NewHandler(components.Catalog, components.State)
	router := api.NewRouter(conversionHandler, appCfg.HTTPServer.AllowedOrigins)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func logStateChange(snap conversion.Snapshot) {
	entry := logrus.WithFields(logrus.Fields{
		"loading": snap.IsLoading,
		"targets": snap.TargetCurrencies,
		"rates":   len(snap.Rates),
	})
	if snap.Error != nil {
		entry = entry.WithField("error", snap.Error.Message)
	}
	entry.Debug("Conversion state changed")
}
