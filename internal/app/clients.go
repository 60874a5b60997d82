package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	redisclient "github.com/albertshemyakin2009-sys/noolix/internal/clients/redis"
	"github.com/albertshemyakin2009-sys/noolix/internal/data/db"
	"github.com/albertshemyakin2009-sys/noolix/internal/data/kv"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

type Clients struct {
	DB    *db.Service
	Redis *goredis.Client
}

// wireClients opens only what the configured store driver needs.
func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	var out Clients
	switch cfg.StoreDriver {
	case kv.DriverSQLite:
		svc, err := db.NewSQLiteService(log, cfg.SQLitePath)
		if err != nil {
			return out, fmt.Errorf("init sqlite: %w", err)
		}
		out.DB = svc
	case kv.DriverPostgres:
		svc, err := db.NewPostgresService(log, cfg.Postgres)
		if err != nil {
			return out, fmt.Errorf("init postgres: %w", err)
		}
		out.DB = svc
	case kv.DriverRedis:
		rdb, err := redisclient.NewClient(ctx, log, redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return out, fmt.Errorf("init redis: %w", err)
		}
		out.Redis = rdb
	}
	if out.DB != nil {
		if err := db.AutoMigrateAll(out.DB.DB()); err != nil {
			_ = out.DB.Close()
			return out, fmt.Errorf("automigrate: %w", err)
		}
	}
	return out, nil
}

func (c Clients) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
