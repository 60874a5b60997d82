package repair

// Goals canonicalizes each goal's topic. The topic always ends up with a
// value (baseline when nothing is extractable); a separate topicTitle is
// kept in sync with the bare candidate or dropped.
func (m *Migrators) Goals(v any) (any, bool) {
	return eachObject(v, func(goal map[string]any) bool {
		candidate := m.firstCandidate(goal[fieldTopic], goal[fieldTopicTitle])
		changed := setString(goal, fieldTopic, m.orBaseline(candidate))
		if syncBareTitle(goal, fieldTopicTitle, candidate) {
			changed = true
		}
		return changed
	})
}
