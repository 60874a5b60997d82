package runs

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/albertshemyakin2009-sys/noolix/internal/data/repos/testutil"
	types "github.com/albertshemyakin2009-sys/noolix/internal/domain"
	"github.com/albertshemyakin2009-sys/noolix/internal/pkg/dbctx"
)

func TestRepairRunRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewRepairRunRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	now := time.Now().UTC()
	older := testutil.SeedRepairRun(t, ctx, tx, "learner-1", now.Add(-2*time.Hour))
	newer := testutil.SeedRepairRun(t, ctx, tx, "learner-1", now.Add(-1*time.Hour))
	testutil.SeedRepairRun(t, ctx, tx, "learner-2", now)

	created := &types.RepairRun{
		Namespace:  "learner-1",
		Trigger:    "manual",
		Changed:    true,
		Failed:     1,
		Records:    datatypes.JSON([]byte(`[{"record":"goals","status":"failed"}]`)),
		StartedAt:  now,
		FinishedAt: now.Add(time.Second),
	}
	if err := repo.Create(dbc, created); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("Create: want generated id")
	}

	got, err := repo.GetByID(dbc, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Trigger != "manual" || !got.Changed || got.Failed != 1 {
		t.Fatalf("GetByID: got=%+v", got)
	}
	if missing, err := repo.GetByID(dbc, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetByID missing: want nil,nil got=%v,%v", missing, err)
	}

	list, err := repo.ListRecent(dbc, "learner-1", 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	wantOrder := []uuid.UUID{created.ID, newer.ID, older.ID}
	if len(list) != len(wantOrder) {
		t.Fatalf("ListRecent: want=%d runs got=%d", len(wantOrder), len(list))
	}
	for i, id := range wantOrder {
		if list[i].ID != id {
			t.Fatalf("ListRecent[%d]: want=%s got=%s", i, id, list[i].ID)
		}
	}

	limited, err := repo.ListRecent(dbc, "learner-1", 1)
	if err != nil {
		t.Fatalf("ListRecent limit: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != created.ID {
		t.Fatalf("ListRecent limit: got=%d runs", len(limited))
	}
}
