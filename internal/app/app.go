package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/savdohub/savdobot/core/database"
	"github.com/savdohub/savdobot/core/logger"
	"github.com/savdohub/savdobot/core/telegram/state"
	"github.com/savdohub/savdobot/internal/service"
	"github.com/savdohub/savdobot/internal/storage"
)

// App holds the infrastructure shared by every subcommand.
type App struct {
	Config *Config
	DB     *sqlx.DB

	redis *redis.Client
}

// Bootstrap initializes the logger, connects to Postgres, applies the
// pending migrations and pings Redis when it is configured.
func Bootstrap(ctx context.Context, cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}
	if err := logger.InitLogger(&cfg.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}
	if err := database.RunMigrations(ctx, cfg.Database); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	a := &App{Config: cfg, DB: db}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = client.Close()
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: redis ping failed: %w", err)
		}
		logger.Component("app").Info("redis connected",
			slog.String("event", "redis.connect"),
			slog.String("addr", cfg.Redis.Addr),
		)
		a.redis = client
	}
	return a, nil
}

// Sessions returns the session manager for one bot persona. Namespacing keeps
// the personas apart when they share a Redis database.
func (a *App) Sessions(namespace string) state.Manager {
	if a.redis != nil {
		return state.NewRedisManager(a.redis, namespace)
	}
	return state.NewMemoryManager()
}

// Close releases the database and Redis connections.
func (a *App) Close() error {
	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Services bundles the domain services over one database pool.
type Services struct {
	Dealers  *service.Dealers
	Sellers  *service.Sellers
	Payments *service.Payments

	PaymentRepo *storage.PaymentRepo
}

// BuildServices wires the repositories and services.
func (a *App) BuildServices() *Services {
	dillers := storage.NewDillerRepo(a.DB)
	sotuvchilar := storage.NewSotuvchiRepo(a.DB)
	payments := storage.NewPaymentRepo(a.DB)
	return &Services{
		Dealers:     service.NewDealers(dillers, sotuvchilar),
		Sellers:     service.NewSellers(sotuvchilar),
		Payments:    service.NewPayments(payments, dillers, sotuvchilar),
		PaymentRepo: payments,
	}
}
