package kv

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/albertshemyakin2009-sys/noolix/internal/domain"
	"github.com/albertshemyakin2009-sys/noolix/internal/pkg/dbctx"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

// GormStore keeps records in the kv_entry table, scoped by namespace.
type GormStore struct {
	db        *gorm.DB
	log       *logger.Logger
	namespace string
}

func NewGormStore(db *gorm.DB, baseLog *logger.Logger, namespace string) *GormStore {
	return &GormStore{
		db:        db,
		log:       baseLog.With("store", "GormStore", "namespace", namespace),
		namespace: namespace,
	}
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var rows []types.KVEntry
	err := dbctx.Context{Ctx: ctx}.Conn(s.db).
		Where("namespace = ? AND record_key = ?", s.namespace, key).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	row := &types.KVEntry{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	err := dbctx.Context{Ctx: ctx}.Conn(s.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	s.log.Debug("kv entry written", "key", key, "bytes", len(value))
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	err := dbctx.Context{Ctx: ctx}.Conn(s.db).
		Where("namespace = ? AND record_key = ?", s.namespace, key).
		Delete(&types.KVEntry{}).Error
	if err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}
