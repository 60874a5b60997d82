package db

import (
	types "github.com/albertshemyakin2009-sys/noolix/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Client records the repair pass works on
		&types.KVEntry{},

		// Repair pass history
		&types.RepairRun{},
	)
}
