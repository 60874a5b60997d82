package runs

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/albertshemyakin2009-sys/noolix/internal/domain"
	"github.com/albertshemyakin2009-sys/noolix/internal/pkg/dbctx"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

const defaultListLimit = 20

type RepairRunRepo interface {
	Create(dbc dbctx.Context, run *types.RepairRun) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.RepairRun, error)
	ListRecent(dbc dbctx.Context, namespace string, limit int) ([]*types.RepairRun, error)
}

type repairRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRepairRunRepo(db *gorm.DB, baseLog *logger.Logger) RepairRunRepo {
	return &repairRunRepo{
		db:  db,
		log: baseLog.With("repo", "RepairRunRepo"),
	}
}

func (r *repairRunRepo) Create(dbc dbctx.Context, run *types.RepairRun) error {
	if run == nil {
		return nil
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if err := dbc.Conn(r.db).Create(run).Error; err != nil {
		return err
	}
	r.log.Debug("repair run stored", "run_id", run.ID.String(), "changed", run.Changed, "failed", run.Failed)
	return nil
}

func (r *repairRunRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.RepairRun, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var run types.RepairRun
	err := dbc.Conn(r.db).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRecent returns the newest runs of a namespace first.
func (r *repairRunRepo) ListRecent(dbc dbctx.Context, namespace string, limit int) ([]*types.RepairRun, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []*types.RepairRun
	err := dbc.Conn(r.db).
		Where("namespace = ?", namespace).
		Order("started_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
