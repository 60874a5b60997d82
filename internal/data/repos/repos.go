package repos

import (
	"gorm.io/gorm"

	"github.com/albertshemyakin2009-sys/noolix/internal/data/repos/runs"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

type RepairRunRepo = runs.RepairRunRepo

func NewRepairRunRepo(db *gorm.DB, baseLog *logger.Logger) RepairRunRepo {
	return runs.NewRepairRunRepo(db, baseLog)
}
