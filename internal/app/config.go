package app

import (
	"strings"

	"github.com/albertshemyakin2009-sys/noolix/internal/data/db"
	"github.com/albertshemyakin2009-sys/noolix/internal/data/kv"
	"github.com/albertshemyakin2009-sys/noolix/internal/modules/repair"
	"github.com/albertshemyakin2009-sys/noolix/internal/observability"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/envutil"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

type Config struct {
	LogMode string
	Version string

	StoreDriver    string
	StoreNamespace string
	SQLitePath     string
	Postgres       db.PostgresConfig
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisPrefix    string

	VocabularyPath string
	RecordKeys     repair.Keys
	RepairOnStart  bool

	HTTPAddr          string
	CORSOrigins       []string
	RepairTokenSecret string
	MetricsEnabled    bool

	Otel observability.OtelConfig
}

// HistoryEnabled reports whether repair runs can be persisted; only the
// SQL drivers have a database to write them to.
func (c Config) HistoryEnabled() bool {
	return c.StoreDriver == kv.DriverSQLite || c.StoreDriver == kv.DriverPostgres
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		LogMode: envutil.String("LOG_MODE", "development"),
		Version: envutil.String("APP_VERSION", "dev"),

		StoreDriver:    strings.ToLower(envutil.String("STORE_DRIVER", kv.DriverSQLite)),
		StoreNamespace: envutil.String("STORE_NAMESPACE", "default"),
		SQLitePath:     envutil.String("SQLITE_PATH", "noolix.db"),
		Postgres: db.PostgresConfig{
			Host:     envutil.String("POSTGRES_HOST", "localhost"),
			Port:     envutil.String("POSTGRES_PORT", "5432"),
			User:     envutil.String("POSTGRES_USER", "postgres"),
			Password: envutil.String("POSTGRES_PASSWORD", ""),
			Name:     envutil.String("POSTGRES_NAME", "noolix"),
		},
		RedisAddr:     envutil.String("REDIS_ADDR", ""),
		RedisPassword: envutil.String("REDIS_PASSWORD", ""),
		RedisDB:       envutil.Int("REDIS_DB", 0),
		RedisPrefix:   envutil.String("REDIS_PREFIX", "noolix:"),

		VocabularyPath: envutil.String("TOPIC_VOCABULARY_PATH", ""),
		RecordKeys:     loadRecordKeys(),
		RepairOnStart:  envutil.Bool("REPAIR_ON_START", true),

		HTTPAddr:          envutil.String("HTTP_ADDR", ":8080"),
		CORSOrigins:       splitList(envutil.String("CORS_ORIGINS", "")),
		RepairTokenSecret: envutil.String("REPAIR_TOKEN_SECRET", ""),
		MetricsEnabled:    envutil.Bool("METRICS_ENABLED", false),

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", observability.DefaultServiceName),
			Environment: envutil.String("OTEL_ENVIRONMENT", "development"),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
		},
	}
	cfg.Otel.Version = cfg.Version
	if log != nil {
		log.Info("config loaded",
			"store_driver", cfg.StoreDriver,
			"namespace", cfg.StoreNamespace,
			"http_addr", cfg.HTTPAddr,
			"repair_on_start", cfg.RepairOnStart,
			"repair_auth", cfg.RepairTokenSecret != "",
		)
	}
	return cfg
}

var recordKeyEnv = map[repair.RecordKind]string{
	repair.KindKnowledgeMap:       "RECORD_KEY_KNOWLEDGE_MAP",
	repair.KindGoals:              "RECORD_KEY_GOALS",
	repair.KindLibrary:            "RECORD_KEY_LIBRARY",
	repair.KindTestHistory:        "RECORD_KEY_TEST_HISTORY",
	repair.KindContext:            "RECORD_KEY_CONTEXT",
	repair.KindCurrentGoal:        "RECORD_KEY_CURRENT_GOAL",
	repair.KindLastTopicCandidate: "RECORD_KEY_LAST_TOPIC_CANDIDATE",
}

func loadRecordKeys() repair.Keys {
	keys := repair.DefaultKeys()
	for kind, env := range recordKeyEnv {
		keys[kind] = envutil.String(env, keys[kind])
	}
	return keys
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
