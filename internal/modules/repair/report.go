package repair

import (
	"time"

	"github.com/google/uuid"
)

type RecordKind string

const (
	KindKnowledgeMap       RecordKind = "knowledge_map"
	KindGoals              RecordKind = "goals"
	KindLibrary            RecordKind = "library"
	KindTestHistory        RecordKind = "test_history"
	KindContext            RecordKind = "context"
	KindCurrentGoal        RecordKind = "current_goal"
	KindLastTopicCandidate RecordKind = "last_topic_candidate"
)

// AllKinds lists the records in the order a pass visits them.
var AllKinds = []RecordKind{
	KindKnowledgeMap,
	KindGoals,
	KindLibrary,
	KindTestHistory,
	KindContext,
	KindCurrentGoal,
	KindLastTopicCandidate,
}

// Keys maps each record kind to its storage key.
type Keys map[RecordKind]string

func DefaultKeys() Keys {
	return Keys{
		KindKnowledgeMap:       "noolix_knowledgeMap",
		KindGoals:              "noolix_goals",
		KindLibrary:            "noolix_library",
		KindTestHistory:        "noolix_testHistory",
		KindContext:            "noolix_context",
		KindCurrentGoal:        "noolix_currentGoal",
		KindLastTopicCandidate: "noolix_lastTopicCandidate",
	}
}

// WithDefaults fills kinds missing from k with their default key.
func (k Keys) WithDefaults() Keys {
	out := DefaultKeys()
	for kind, key := range k {
		if key != "" {
			out[kind] = key
		}
	}
	return out
}

type RecordStatus string

const (
	StatusUnchanged RecordStatus = "unchanged"
	StatusChanged   RecordStatus = "changed"
	StatusDeleted   RecordStatus = "deleted"
	StatusAbsent    RecordStatus = "absent"
	StatusFailed    RecordStatus = "failed"
)

// Stage names the step of a record's read-transform-write that failed.
type Stage string

const (
	StageRead      Stage = "read"
	StageParse     Stage = "parse"
	StageTransform Stage = "transform"
	StageEncode    Stage = "encode"
	StageWrite     Stage = "write"
)

type RecordResult struct {
	Record      RecordKind   `json:"record"`
	Key         string       `json:"key"`
	Status      RecordStatus `json:"status"`
	Stage       Stage        `json:"stage,omitempty"`
	Error       string       `json:"error,omitempty"`
	ParseFailed bool         `json:"parseFailed,omitempty"`
	Err         error        `json:"-"`
}

type Report struct {
	RunID      uuid.UUID      `json:"runId"`
	Trigger    string         `json:"trigger"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Changed    bool           `json:"changed"`
	Records    []RecordResult `json:"records"`
}

// Failed counts records whose repair did not complete.
func (r *Report) Failed() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, rec := range r.Records {
		if rec.Status == StatusFailed {
			n++
		}
	}
	return n
}

func (r *Report) Result(kind RecordKind) (RecordResult, bool) {
	if r == nil {
		return RecordResult{}, false
	}
	for _, rec := range r.Records {
		if rec.Record == kind {
			return rec, true
		}
	}
	return RecordResult{}, false
}
