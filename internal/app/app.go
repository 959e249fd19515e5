package app

import (
	"context"
	"database/sql"
	"errors"

	"go-empledger/internal/asset"
	"go-empledger/internal/config"
	"go-empledger/internal/shared/connection"
	"go-empledger/internal/shared/migration"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the HTTP router and the connections it was built on.
type App struct {
	Router *gin.Engine

	db      *sql.DB
	rdb     *redis.Client
	closers []func() error
}

// BuildApp connects infrastructure, wires every module and returns the
// ready router.
func BuildApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), cfg.Database.MaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	a := &App{db: sqlDB}
	a.closers = append(a.closers, sqlDB.Close)

	if cfg.AutoMigrate {
		if err := migration.Up(sqlDB); err != nil {
			a.Close()
			return nil, err
		}
		logger.Info("database migrations applied")
	}

	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.Database.MaxRetries)
		if err != nil {
			// the catalog cache and idempotency replay are optional
			logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
		} else {
			a.rdb = rdb
			a.closers = append(a.closers, rdb.Close)
		}
	}

	store, err := asset.NewStore(ctx, cfg.Asset)
	if err != nil {
		a.Close()
		return nil, err
	}
	if c, ok := store.(interface{ Close() error }); ok {
		a.closers = append(a.closers, c.Close)
	}

	a.Router = NewRouter(cfg, zap.L())
	if cfg.Asset.Backend == "" || cfg.Asset.Backend == asset.BackendLocal {
		a.Router.Static("/public", cfg.Asset.Dir)
	}
	registerModules(a.Router.Group("/api"), modules{
		db:     sqlDB,
		gormDB: gormDB,
		rdb:    a.rdb,
		store:  store,
	})

	return a, nil
}

// Close releases every connection opened by BuildApp.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

type modules struct {
	db     *sql.DB
	gormDB *gorm.DB
	rdb    *redis.Client
	store  asset.Store
}
