// Package bootstrap builds the infrastructure shared by the API server and the seed CLI
package bootstrap

import (
	"context"
	"fmt"
	"time"

	businessflow "github.com/Luisr26/ExpertSoft/business_flow"
	"github.com/Luisr26/ExpertSoft/config"
	"github.com/Luisr26/ExpertSoft/repository"
	"github.com/Luisr26/ExpertSoft/seeder"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormWriter routes gorm's statement log through zerolog
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn().Str("component", "gorm").Msgf(format, args...)
}

// InitializeDatabase opens the connection pool and verifies connectivity
func InitializeDatabase(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	slowThreshold := time.Duration(0)
	if cfg.SlowQueryLog {
		slowThreshold = cfg.SlowQueryTime
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.New(gormWriter{log: log}, gormlogger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Int("max_open_conns", cfg.MaxOpenConns).
		Int("max_idle_conns", cfg.MaxIdleConns).
		Msg("database connection established")

	return db, nil
}

// CloseDatabase releases the connection pool
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitializeCache connects to Redis when it is enabled; it returns nil otherwise
func InitializeCache(cfg config.CacheConfig, log zerolog.Logger) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Str("addr", opt.Addr).Int("db", opt.DB).Msg("redis connection established")
	return rc, nil
}

// StartCacheHealthMonitor periodically pings Redis to surface connectivity
// issues. The returned function stops the monitor.
func StartCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration, log zerolog.Logger) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(monitorCtx, 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Warn().Err(err).Msg("redis healthcheck failed")
				}
				c()
			}
		}
	}()
	return cancel
}

// Repositories holds one repository per table
type Repositories struct {
	Platforms    repository.PlatformRepository
	Clients      repository.ClientRepository
	Invoices     repository.InvoiceRepository
	Transactions repository.TransactionRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Platforms:    repository.NewPlatformRepository(db),
		Clients:      repository.NewClientRepository(db),
		Invoices:     repository.NewInvoiceRepository(db),
		Transactions: repository.NewTransactionRepository(db),
	}
}

// NewSeedNotifier fans pipeline events out to the log, Prometheus and, when
// enabled, RabbitMQ. The returned function closes the broker connection.
func NewSeedNotifier(cfg *config.AppConfig, log zerolog.Logger) (seeder.Notifier, func(), error) {
	notifiers := seeder.Notifiers{seeder.NewLogNotifier(log)}
	if cfg.Metrics.Enabled {
		notifiers = append(notifiers, seeder.MetricsNotifier{})
	}

	closeFn := func() {}
	if cfg.Events.Enabled {
		publisher, err := seeder.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, cfg.Events.RoutingKey)
		if err != nil {
			return nil, nil, err
		}
		notifiers = append(notifiers, publisher)
		closeFn = func() {
			if err := publisher.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close event publisher")
			}
		}
		log.Info().Str("exchange", cfg.Events.Exchange).Msg("seed event publisher connected")
	}
	return notifiers, closeFn, nil
}

// NewSeedFlow wires the seed pipeline and verifier over repos. A nil cache
// falls back to an in-process lock.
func NewSeedFlow(cfg *config.AppConfig, repos Repositories, rc *redis.Client, notifier seeder.Notifier, log zerolog.Logger) businessflow.SeedFlow {
	pipeline := seeder.NewSeedPipeline(seeder.Repositories{
		Platforms:    repos.Platforms,
		Clients:      repos.Clients,
		Invoices:     repos.Invoices,
		Transactions: repos.Transactions,
	}, cfg.Seed.Paths(), seeder.OpenSource, notifier, log)

	verifier := seeder.NewVerifier(repos.Platforms, repos.Clients, repos.Invoices, repos.Transactions)

	var locker businessflow.SeedLocker
	if rc != nil {
		locker = businessflow.NewRedisSeedLocker(rc, cfg.Cache.RedisPrefix, cfg.Seed.LockTTL)
	}
	return businessflow.NewSeedFlow(pipeline, verifier, locker, cfg.Seed.Timeout, log)
}
