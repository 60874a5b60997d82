// Package kv is the persisted-store port the repair pass reads and writes
// client records through, with memory, gorm and redis adapters.
package kv

import "context"

// Store is a flat string key-value store. Get reports absence with ok=false
// rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
