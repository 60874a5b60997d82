package repair

import "github.com/albertshemyakin2009-sys/noolix/internal/modules/topics"

// Context canonicalizes currentTopic and topic independently. An empty
// topic is a valid state here, so there is no baseline fallback.
func (m *Migrators) Context(v any) (any, bool) {
	ctx, ok := v.(map[string]any)
	if !ok {
		return v, false
	}
	changed := false
	for _, field := range []string{fieldCurrentTopic, fieldTopic} {
		raw, ok := ctx[field].(string)
		if !ok {
			continue
		}
		if t := m.topics.CoerceTopicTitle(raw); t != raw {
			ctx[field] = t
			changed = true
		}
	}
	return ctx, changed
}

// CurrentGoal canonicalizes the active goal's topic with baseline fallback.
func (m *Migrators) CurrentGoal(v any) (any, bool) {
	goal, ok := v.(map[string]any)
	if !ok {
		return v, false
	}
	want := m.orBaseline(m.topics.CoerceTopicTitle(topics.AsString(goal[fieldTopic])))
	return goal, setString(goal, fieldTopic, want)
}
