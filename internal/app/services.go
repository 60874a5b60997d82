package app

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/albertshemyakin2009-sys/noolix/internal/data/kv"
	"github.com/albertshemyakin2009-sys/noolix/internal/modules/repair"
	"github.com/albertshemyakin2009-sys/noolix/internal/modules/topics"
	"github.com/albertshemyakin2009-sys/noolix/internal/observability"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

type Services struct {
	Canonicalizer *topics.Canonicalizer
	Store         kv.Store
	Repair        *repair.Service
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos, metrics *observability.Metrics) (Services, error) {
	vocab, err := topics.LoadVocabulary(cfg.VocabularyPath)
	if err != nil {
		return Services{}, fmt.Errorf("load vocabulary: %w", err)
	}
	canon, err := vocab.Compile()
	if err != nil {
		return Services{}, fmt.Errorf("compile vocabulary: %w", err)
	}

	var gdb *gorm.DB
	if clients.DB != nil {
		gdb = clients.DB.DB()
	}
	var rdb goredis.UniversalClient
	if clients.Redis != nil {
		rdb = clients.Redis
	}
	store, err := kv.Open(log, kv.OpenConfig{
		Driver:      cfg.StoreDriver,
		Namespace:   cfg.StoreNamespace,
		RedisPrefix: cfg.RedisPrefix,
	}, gdb, rdb)
	if err != nil {
		return Services{}, fmt.Errorf("open store: %w", err)
	}

	opts := repair.Options{Keys: cfg.RecordKeys}
	if reposet.RepairRuns != nil {
		opts.Recorder = repair.NewRepoRecorder(reposet.RepairRuns, cfg.StoreNamespace)
	}
	if metrics != nil {
		opts.Observer = metrics
	}

	return Services{
		Canonicalizer: canon,
		Store:         store,
		Repair:        repair.NewService(log, store, canon, opts),
	}, nil
}
