package repair

import "strings"

// CandidateAction is what a pass does with the stored last-topic candidate.
type CandidateAction int

const (
	CandidateKeep CandidateAction = iota
	CandidateRewrite
	CandidateDelete
)

// LastTopicCandidate decides the fate of the bare-string candidate. A
// non-empty value with no extractable title is garbage and must not
// propagate, so it is deleted rather than rewritten as blank.
func (m *Migrators) LastTopicCandidate(raw string) (string, CandidateAction) {
	t := m.topics.CoerceTopicTitle(raw)
	switch {
	case t == "" && raw != "":
		return "", CandidateDelete
	case t != "" && t != strings.TrimSpace(raw):
		return t, CandidateRewrite
	default:
		return raw, CandidateKeep
	}
}
