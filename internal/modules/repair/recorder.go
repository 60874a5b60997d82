package repair

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/albertshemyakin2009-sys/noolix/internal/data/repos/runs"
	types "github.com/albertshemyakin2009-sys/noolix/internal/domain"
	"github.com/albertshemyakin2009-sys/noolix/internal/pkg/dbctx"
)

// RepoRecorder stores pass reports as repair_run rows.
type RepoRecorder struct {
	repo      runs.RepairRunRepo
	namespace string
}

func NewRepoRecorder(repo runs.RepairRunRepo, namespace string) *RepoRecorder {
	return &RepoRecorder{repo: repo, namespace: namespace}
}

func (r *RepoRecorder) RecordRun(ctx context.Context, report *Report) error {
	if report == nil {
		return nil
	}
	records, err := json.Marshal(report.Records)
	if err != nil {
		return fmt.Errorf("marshal repair records: %w", err)
	}
	run := &types.RepairRun{
		ID:         report.RunID,
		Namespace:  r.namespace,
		Trigger:    report.Trigger,
		Changed:    report.Changed,
		Failed:     report.Failed(),
		Records:    datatypes.JSON(records),
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	}
	if err := r.repo.Create(dbctx.Context{Ctx: ctx}, run); err != nil {
		return fmt.Errorf("store repair run %s: %w", report.RunID, err)
	}
	return nil
}
