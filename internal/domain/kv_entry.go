package domain

import "time"

// KVEntry is one persisted client record: the raw string exactly as the
// application wrote it (JSON for structured records, bare text otherwise).
type KVEntry struct {
	Namespace string    `gorm:"column:namespace;type:varchar(128);primaryKey" json:"namespace"`
	Key       string    `gorm:"column:record_key;type:varchar(255);primaryKey" json:"key"`
	Value     string    `gorm:"column:value;type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;index" json:"updated_at"`
}

func (KVEntry) TableName() string { return "kv_entry" }
