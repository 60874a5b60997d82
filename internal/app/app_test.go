package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/albertshemyakin2009-sys/noolix/internal/data/kv"
	"github.com/albertshemyakin2009-sys/noolix/internal/modules/repair"
	"github.com/albertshemyakin2009-sys/noolix/internal/pkg/dbctx"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("REPAIR_ON_START", "")
	t.Setenv("RECORD_KEY_GOALS", "")
	cfg := LoadConfig(logger.Nop())

	if cfg.StoreDriver != kv.DriverSQLite || !cfg.RepairOnStart || cfg.HTTPAddr != ":8080" {
		t.Fatalf("defaults: got driver=%q repairOnStart=%v addr=%q", cfg.StoreDriver, cfg.RepairOnStart, cfg.HTTPAddr)
	}
	if got := cfg.RecordKeys[repair.KindGoals]; got != repair.DefaultKeys()[repair.KindGoals] {
		t.Fatalf("goals key: got=%q", got)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REPAIR_ON_START", "false")
	t.Setenv("RECORD_KEY_GOALS", "app_goals")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")
	cfg := LoadConfig(logger.Nop())

	if cfg.StoreDriver != kv.DriverRedis || cfg.RepairOnStart {
		t.Fatalf("env: got driver=%q repairOnStart=%v", cfg.StoreDriver, cfg.RepairOnStart)
	}
	if cfg.RecordKeys[repair.KindGoals] != "app_goals" {
		t.Fatalf("goals key: got=%q", cfg.RecordKeys[repair.KindGoals])
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors origins: got=%v", cfg.CORSOrigins)
	}
	if cfg.Otel.SampleRatio != 0.5 {
		t.Fatalf("sample ratio: got=%v", cfg.Otel.SampleRatio)
	}
	if cfg.HistoryEnabled() {
		t.Fatalf("history with redis driver: want=false")
	}
}

func TestAppStartupRepairWithSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		StoreDriver:    kv.DriverSQLite,
		StoreNamespace: "learner-1",
		SQLitePath:     filepath.Join(t.TempDir(), "noolix.db"),
		RecordKeys:     repair.DefaultKeys(),
		RepairOnStart:  true,
		HTTPAddr:       "127.0.0.1:0",
	}
	a, err := New(ctx, logger.Nop(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)

	goalsKey := cfg.RecordKeys[repair.KindGoals]
	if err := a.Services.Store.Set(ctx, goalsKey, `[{"topic":"9 класс"}]`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	report := a.Start(ctx)
	if report == nil || !report.Changed {
		t.Fatalf("startup pass: want changed got=%+v", report)
	}
	got, _, err := a.Services.Store.Get(ctx, goalsKey)
	if err != nil || got != `[{"topic":"Базовые темы"}]` {
		t.Fatalf("goals: got=%q err=%v", got, err)
	}

	list, err := a.Repos.RepairRuns.ListRecent(dbctx.Context{Ctx: ctx}, "learner-1", 5)
	if err != nil || len(list) != 1 || list[0].ID != report.RunID {
		t.Fatalf("recorded runs: got=%v err=%v", list, err)
	}

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthcheck: got=%d", rec.Code)
	}
}

func TestAppMemoryStoreSkipsHistory(t *testing.T) {
	a, err := New(context.Background(), logger.Nop(), Config{
		StoreDriver:   kv.DriverMemory,
		RepairOnStart: false,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)

	if a.Start(context.Background()) != nil {
		t.Fatalf("start with repair disabled: want nil report")
	}
	if a.Repos.RepairRuns != nil {
		t.Fatalf("memory driver: want no run history")
	}
	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/topics/repair/runs", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("runs without history: want=%d got=%d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestAppRejectsUnreadableVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte("wrapper_patterns: ['(']\n"), 0o644); err != nil {
		t.Fatalf("write vocab: %v", err)
	}
	_, err := New(context.Background(), logger.Nop(), Config{
		StoreDriver:    kv.DriverMemory,
		VocabularyPath: path,
	})
	if err == nil {
		t.Fatalf("want error for bad vocabulary pattern")
	}
}
