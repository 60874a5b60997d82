package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RepairRun is the persisted outcome of one topic repair pass.
type RepairRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Namespace string    `gorm:"column:namespace;type:varchar(128);not null;index" json:"namespace"`
	Trigger   string    `gorm:"column:trigger_source;type:varchar(32);not null" json:"trigger"`
	Changed   bool      `gorm:"column:changed;not null" json:"changed"`
	Failed    int       `gorm:"column:failed;not null" json:"failed"`

	// Records holds the per-record results of the pass.
	Records datatypes.JSON `gorm:"column:records" json:"records,omitempty"`

	StartedAt  time.Time `gorm:"column:started_at;not null;index" json:"started_at"`
	FinishedAt time.Time `gorm:"column:finished_at;not null" json:"finished_at"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (RepairRun) TableName() string { return "repair_run" }
