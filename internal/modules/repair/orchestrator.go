package repair

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/albertshemyakin2009-sys/noolix/internal/data/kv"
	"github.com/albertshemyakin2009-sys/noolix/internal/modules/topics"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

const (
	TriggerStartup = "startup"
	TriggerManual  = "manual"
)

// RunRecorder persists finished pass reports.
type RunRecorder interface {
	RecordRun(ctx context.Context, report *Report) error
}

// PassObserver receives pass and per-record outcomes for metrics.
type PassObserver interface {
	ObserveRepairPass(trigger string, changed bool, failed int, dur time.Duration)
	ObserveRepairRecord(record, status string)
}

type Options struct {
	Keys     Keys
	Recorder RunRecorder
	Observer PassObserver
}

type structuredMigrator struct {
	empty   func() any
	migrate func(v any) (any, bool)
}

// Service runs repair passes over the persisted records. Each record is
// read, transformed and written on its own; a failure on one never stops
// the others.
type Service struct {
	log       *logger.Logger
	store     kv.Store
	keys      Keys
	migrators *Migrators
	recorder  RunRecorder
	observer  PassObserver
	tracer    trace.Tracer
	flight    singleflight.Group
	now       func() time.Time
}

func NewService(baseLog *logger.Logger, store kv.Store, canon *topics.Canonicalizer, opts Options) *Service {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &Service{
		log:       baseLog.With("service", "TopicRepairService"),
		store:     store,
		keys:      opts.Keys.WithDefaults(),
		migrators: NewMigrators(canon),
		recorder:  opts.Recorder,
		observer:  opts.Observer,
		tracer:    otel.Tracer("noolix/repair"),
		now:       time.Now,
	}
}

// RunMigration performs the startup pass.
func (s *Service) RunMigration(ctx context.Context) *Report {
	return s.run(ctx, TriggerStartup)
}

// RepairNow performs the same pass on demand and reports whether anything
// changed. Overlapping calls share one pass.
func (s *Service) RepairNow(ctx context.Context) bool {
	return s.Repair(ctx).Changed
}

// Repair is RepairNow with the full report.
func (s *Service) Repair(ctx context.Context) *Report {
	return s.run(ctx, TriggerManual)
}

func (s *Service) run(ctx context.Context, trigger string) *Report {
	if ctx == nil {
		ctx = context.Background()
	}
	// The pass is shared by joined callers and outlives any one of them.
	passCtx := context.WithoutCancel(ctx)
	v, _, _ := s.flight.Do("pass", func() (any, error) {
		return s.pass(passCtx, trigger), nil
	})
	return v.(*Report)
}

func (s *Service) pass(ctx context.Context, trigger string) *Report {
	ctx, span := s.tracer.Start(ctx, "repair.pass", trace.WithAttributes(
		attribute.String("repair.trigger", trigger),
	))
	defer span.End()

	report := &Report{
		RunID:     uuid.New(),
		Trigger:   trigger,
		StartedAt: s.now().UTC(),
	}
	for _, kind := range AllKinds {
		res := s.repairRecord(ctx, kind)
		if res.Status == StatusChanged || res.Status == StatusDeleted {
			report.Changed = true
		}
		if res.Status == StatusFailed {
			s.log.Warn("topic repair: record failed",
				"record", string(res.Record),
				"key", res.Key,
				"stage", string(res.Stage),
				"error", res.Err,
			)
		}
		if s.observer != nil {
			s.observer.ObserveRepairRecord(string(res.Record), string(res.Status))
		}
		report.Records = append(report.Records, res)
	}
	report.FinishedAt = s.now().UTC()
	if s.observer != nil {
		s.observer.ObserveRepairPass(trigger, report.Changed, report.Failed(), report.FinishedAt.Sub(report.StartedAt))
	}

	span.SetAttributes(
		attribute.Bool("repair.changed", report.Changed),
		attribute.Int("repair.failed", report.Failed()),
	)
	s.log.Info("topic repair pass finished",
		"run_id", report.RunID.String(),
		"trigger", trigger,
		"changed", report.Changed,
		"failed", report.Failed(),
	)

	if s.recorder != nil {
		if err := s.recorder.RecordRun(ctx, report); err != nil {
			s.log.Warn("topic repair: failed to record run", "run_id", report.RunID.String(), "error", err)
		}
	}
	return report
}

func (s *Service) repairRecord(ctx context.Context, kind RecordKind) (res RecordResult) {
	key := s.keys[kind]
	res = RecordResult{Record: kind, Key: key}

	ctx, span := s.tracer.Start(ctx, "repair.record", trace.WithAttributes(
		attribute.String("repair.record", string(kind)),
		attribute.String("repair.key", key),
	))
	defer func() {
		if r := recover(); r != nil {
			res.Status = StatusFailed
			res.Stage = StageTransform
			res.Err = fmt.Errorf("panic: %v", r)
		}
		if res.Err != nil {
			res.Error = res.Err.Error()
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, string(res.Stage))
		}
		span.SetAttributes(attribute.String("repair.status", string(res.Status)))
		span.End()
	}()

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return failed(res, StageRead, err)
	}

	if kind == KindLastTopicCandidate {
		return s.repairCandidate(ctx, res, raw, ok)
	}

	m := s.structured(kind)
	var value any
	switch {
	case !ok:
		res.Status = StatusAbsent
		value = m.empty()
	default:
		decoded, err := decodeJSON(raw)
		if err != nil {
			// Treated as absent; the stored value is left for the next pass.
			s.log.Debug("topic repair: unparseable record", "record", string(kind), "key", key, "error", err)
			res.Status = StatusAbsent
			res.ParseFailed = true
			value = m.empty()
		} else {
			value = decoded
		}
	}

	out, changed := m.migrate(value)
	if !changed {
		if res.Status == "" {
			res.Status = StatusUnchanged
		}
		return res
	}
	encoded, err := encodeJSON(out)
	if err != nil {
		return failed(res, StageEncode, err)
	}
	if err := s.store.Set(ctx, key, encoded); err != nil {
		return failed(res, StageWrite, err)
	}
	res.Status = StatusChanged
	return res
}

func (s *Service) repairCandidate(ctx context.Context, res RecordResult, raw string, ok bool) RecordResult {
	if !ok {
		res.Status = StatusAbsent
		return res
	}
	next, action := s.migrators.LastTopicCandidate(raw)
	switch action {
	case CandidateDelete:
		if err := s.store.Delete(ctx, res.Key); err != nil {
			return failed(res, StageWrite, err)
		}
		res.Status = StatusDeleted
	case CandidateRewrite:
		if err := s.store.Set(ctx, res.Key, next); err != nil {
			return failed(res, StageWrite, err)
		}
		res.Status = StatusChanged
	default:
		res.Status = StatusUnchanged
	}
	return res
}

func (s *Service) structured(kind RecordKind) structuredMigrator {
	emptyObject := func() any { return map[string]any{} }
	emptyList := func() any { return []any{} }
	switch kind {
	case KindKnowledgeMap:
		return structuredMigrator{empty: emptyObject, migrate: s.migrators.KnowledgeMap}
	case KindGoals:
		return structuredMigrator{empty: emptyList, migrate: s.migrators.Goals}
	case KindLibrary:
		return structuredMigrator{empty: emptyList, migrate: s.migrators.Library}
	case KindTestHistory:
		return structuredMigrator{empty: emptyList, migrate: s.migrators.TestHistory}
	case KindContext:
		return structuredMigrator{empty: emptyObject, migrate: s.migrators.Context}
	case KindCurrentGoal:
		return structuredMigrator{empty: func() any { return nil }, migrate: s.migrators.CurrentGoal}
	default:
		panic(fmt.Sprintf("repair: no migrator for record kind %q", kind))
	}
}

func failed(res RecordResult, stage Stage, err error) RecordResult {
	res.Status = StatusFailed
	res.Stage = stage
	res.Err = err
	return res
}
