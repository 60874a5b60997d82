package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/albertshemyakin2009-sys/noolix/internal/domain"
)

func SeedRepairRun(tb testing.TB, ctx context.Context, tx *gorm.DB, namespace string, startedAt time.Time) *types.RepairRun {
	tb.Helper()
	run := &types.RepairRun{
		ID:         uuid.New(),
		Namespace:  namespace,
		Trigger:    "startup",
		Records:    datatypes.JSON([]byte("[]")),
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(10 * time.Millisecond),
	}
	if err := tx.WithContext(ctx).Create(run).Error; err != nil {
		tb.Fatalf("seed repair run: %v", err)
	}
	return run
}
