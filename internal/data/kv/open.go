package kv

import (
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type OpenConfig struct {
	Driver      string
	Namespace   string
	RedisPrefix string
}

// Open picks the adapter for cfg.Driver. sqlite and postgres need db, redis
// needs rdb.
func Open(log *logger.Logger, cfg OpenConfig, db *gorm.DB, rdb goredis.UniversalClient) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverMemory:
		return NewMemoryStore(nil), nil
	case DriverSQLite, DriverPostgres:
		if db == nil {
			return nil, fmt.Errorf("kv driver %q: database not configured", cfg.Driver)
		}
		return NewGormStore(db, log, cfg.Namespace), nil
	case DriverRedis:
		if rdb == nil {
			return nil, fmt.Errorf("kv driver %q: redis not configured", cfg.Driver)
		}
		return NewRedisStore(rdb, cfg.RedisPrefix), nil
	default:
		return nil, fmt.Errorf("unknown kv driver %q", cfg.Driver)
	}
}
