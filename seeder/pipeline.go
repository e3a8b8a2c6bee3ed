package seeder

import (
	"context"
	"time"

	"github.com/Luisr26/ExpertSoft/config"
	"github.com/Luisr26/ExpertSoft/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StageResult is the outcome of one successful stage
type StageResult struct {
	Entity     string `json:"entity"`
	Affected   int64  `json:"affected"`
	DurationMS int64  `json:"duration_ms"`
}

// Result aggregates a pipeline run. After a failure it holds the stages
// that completed before the failing one.
type Result struct {
	RunID         string        `json:"run_id"`
	Stages        []StageResult `json:"stages"`
	TotalAffected int64         `json:"total_affected"`
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    time.Time     `json:"finished_at"`
}

// Pipeline runs its loaders strictly one after another and stops at the
// first failure. Stages that already completed stay committed.
type Pipeline struct {
	loaders  []Loader
	notifier Notifier
	log      zerolog.Logger
}

// Repositories groups the upsert targets of the four stages
type Repositories struct {
	Platforms    PlatformUpserter
	Clients      ClientUpserter
	Invoices     InvoiceUpserter
	Transactions TransactionUpserter
}

// NewPipeline runs loaders in the given order
func NewPipeline(log zerolog.Logger, notifier Notifier, loaders ...Loader) *Pipeline {
	return &Pipeline{
		loaders:  loaders,
		notifier: notifier,
		log:      log,
	}
}

// NewSeedPipeline wires the four loaders in dependency order:
// platforms, clients and invoices before the transactions that reference them.
func NewSeedPipeline(repos Repositories, paths config.SeedPaths, open Opener, notifier Notifier, log zerolog.Logger) *Pipeline {
	if open == nil {
		open = OpenSource
	}
	return NewPipeline(log, notifier,
		NewPlatformLoader(repos.Platforms, paths.Platforms, open),
		NewClientLoader(repos.Clients, paths.Clients, open),
		NewInvoiceLoader(repos.Invoices, paths.Invoices, open),
		NewTransactionLoader(repos.Transactions, paths.Transactions, open),
	)
}

// Run executes every stage. On failure the returned error is a *StageError
// wrapping the loader error, and the partial result is returned alongside it.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		RunID:     uuid.NewString(),
		Stages:    make([]StageResult, 0, len(p.loaders)),
		StartedAt: utils.UTCNow(),
	}
	logCtx := p.log.With().Str("run_id", res.RunID)
	if reqID := utils.RequestID(ctx); reqID != "" {
		logCtx = logCtx.Str("request_id", reqID)
	}
	log := logCtx.Logger()

	for _, loader := range p.loaders {
		entity := loader.Entity()
		start := time.Now()
		p.notify(ctx, log, Event{RunID: res.RunID, Kind: EventStageStarted, Entity: entity})

		affected, err := loader.Load(ctx)
		elapsed := utils.SinceMillis(start)
		if err != nil {
			res.FinishedAt = utils.UTCNow()
			p.notify(ctx, log, Event{RunID: res.RunID, Kind: EventStageFailed, Entity: entity, DurationMS: elapsed, Error: err.Error()})
			return res, &StageError{Entity: entity, Err: err}
		}

		res.Stages = append(res.Stages, StageResult{Entity: entity, Affected: affected, DurationMS: elapsed})
		res.TotalAffected += affected
		p.notify(ctx, log, Event{RunID: res.RunID, Kind: EventStageCompleted, Entity: entity, Affected: affected, DurationMS: elapsed})
	}

	res.FinishedAt = utils.UTCNow()
	p.notify(ctx, log, Event{
		RunID:      res.RunID,
		Kind:       EventRunCompleted,
		Affected:   res.TotalAffected,
		DurationMS: res.FinishedAt.Sub(res.StartedAt).Milliseconds(),
	})
	return res, nil
}

// notify never fails the run; a broken notifier is only logged
func (p *Pipeline) notify(ctx context.Context, log zerolog.Logger, e Event) {
	if isNilNotifier(p.notifier) {
		return
	}
	e.At = utils.UTCNow()
	if err := p.notifier.Notify(ctx, e); err != nil {
		log.Warn().Err(err).Str("event", string(e.Kind)).Msg("seed event notification failed")
	}
}
