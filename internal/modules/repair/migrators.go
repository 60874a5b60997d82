// Package repair rewrites the topic identifiers scattered across the
// learner's persisted records into canonical titles. A pass is idempotent:
// running it on its own output changes nothing.
package repair

import (
	"github.com/albertshemyakin2009-sys/noolix/internal/modules/topics"
)

const (
	fieldTopic             = "topic"
	fieldTopicTitle        = "topicTitle"
	fieldCurrentTopic      = "currentTopic"
	fieldExplainTopicTitle = "explainTopicTitle"
	fieldMeta              = "meta"
)

// Migrators holds the record-kind specific transformers. Each structured
// migrator takes a decoded JSON value, rewrites it in place where needed and
// reports whether anything changed. Values of an unexpected container type
// pass through untouched.
type Migrators struct {
	topics *topics.Canonicalizer
}

func NewMigrators(c *topics.Canonicalizer) *Migrators {
	if c == nil {
		c = topics.Default()
	}
	return &Migrators{topics: c}
}

// firstCandidate returns the first value that coerces to a non-empty title.
func (m *Migrators) firstCandidate(values ...any) string {
	for _, v := range values {
		if t := m.topics.CoerceTopicTitle(topics.AsString(v)); t != "" {
			return t
		}
	}
	return ""
}

func (m *Migrators) orBaseline(candidate string) string {
	if candidate == "" {
		return m.topics.Baseline()
	}
	return candidate
}

// setString writes value at key unless it is already that exact string.
func setString(obj map[string]any, key, value string) bool {
	if cur, ok := obj[key].(string); ok && cur == value {
		return false
	}
	obj[key] = value
	return true
}

// syncBareTitle points an optional title field at candidate, or drops it
// when there is no candidate. Absent fields are left absent.
func syncBareTitle(obj map[string]any, key, candidate string) bool {
	if _, ok := obj[key]; !ok {
		return false
	}
	if candidate == "" {
		delete(obj, key)
		return true
	}
	return setString(obj, key, candidate)
}

func eachObject(v any, fn func(obj map[string]any) bool) (any, bool) {
	list, ok := v.([]any)
	if !ok {
		return v, false
	}
	changed := false
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if fn(obj) {
			changed = true
		}
	}
	return list, changed
}
