package repair

// Library canonicalizes saved library items.
func (m *Migrators) Library(v any) (any, bool) {
	return eachObject(v, m.explainable)
}

// TestHistory canonicalizes completed test entries. Entries share the
// library item layout.
func (m *Migrators) TestHistory(v any) (any, bool) {
	return eachObject(v, m.explainable)
}

// explainable handles records carrying meta.explainTopicTitle, topic,
// topicTitle and a flat explainTopicTitle, in that order of precedence. A
// field only wins when something survives coercion, so an unusable nested
// title defers to the next field. The stored topic falls back to the
// baseline; the secondary title fields only ever hold the bare candidate.
func (m *Migrators) explainable(item map[string]any) bool {
	meta, _ := item[fieldMeta].(map[string]any)
	var nested any
	if meta != nil {
		nested = meta[fieldExplainTopicTitle]
	}
	candidate := m.firstCandidate(nested, item[fieldTopic], item[fieldTopicTitle], item[fieldExplainTopicTitle])

	changed := setString(item, fieldTopic, m.orBaseline(candidate))
	if syncBareTitle(item, fieldTopicTitle, candidate) {
		changed = true
	}
	if syncBareTitle(item, fieldExplainTopicTitle, candidate) {
		changed = true
	}
	if meta != nil && syncBareTitle(meta, fieldExplainTopicTitle, candidate) {
		changed = true
	}
	return changed
}
