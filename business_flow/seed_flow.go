package businessflow

import (
	"context"
	"io"
	"time"

	"github.com/Luisr26/ExpertSoft/seeder"
	"github.com/rs/zerolog"
)

// SeedRunner loads the seed sources into the database
type SeedRunner interface {
	Run(ctx context.Context) (*seeder.Result, error)
}

// SeedVerifier reports what the database holds
type SeedVerifier interface {
	Verify(ctx context.Context) (*seeder.Report, error)
}

// SeedFlow drives database initialisation and verification
type SeedFlow interface {
	InitDB(ctx context.Context) (*seeder.Result, error)
	VerifyDB(ctx context.Context) (*seeder.Report, error)
	VerifyWorkbook(ctx context.Context, w io.Writer) error
}

// SeedFlowImpl implements SeedFlow
type SeedFlowImpl struct {
	runner   SeedRunner
	verifier SeedVerifier
	locker   SeedLocker
	timeout  time.Duration
	log      zerolog.Logger
}

func NewSeedFlow(runner SeedRunner, verifier SeedVerifier, locker SeedLocker, timeout time.Duration, log zerolog.Logger) SeedFlow {
	if locker == nil {
		locker = &LocalSeedLocker{}
	}
	return &SeedFlowImpl{
		runner:   runner,
		verifier: verifier,
		locker:   locker,
		timeout:  timeout,
		log:      log,
	}
}

// InitDB runs the seed pipeline once at a time. On failure the partial
// result is returned with the error.
func (f *SeedFlowImpl) InitDB(ctx context.Context) (*seeder.Result, error) {
	token, ok, err := f.locker.TryLock(ctx)
	if err != nil {
		return nil, NewBusinessError("SEED_LOCK_FAILED", "Failed to acquire seed lock", err)
	}
	if !ok {
		return nil, NewBusinessError("SEED_IN_PROGRESS", "Database initialization already in progress", ErrSeedInProgress)
	}
	defer func() {
		if err := f.locker.Unlock(context.Background(), token); err != nil {
			f.log.Warn().Err(err).Msg("failed to release seed lock")
		}
	}()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	res, err := f.runner.Run(ctx)
	if err != nil {
		stage, _ := seeder.FailedStage(err)
		return res, NewBusinessErrorf("SEED_FAILED", "Database initialization failed at %s", err, stage)
	}
	return res, nil
}

func (f *SeedFlowImpl) VerifyDB(ctx context.Context) (*seeder.Report, error) {
	report, err := f.verifier.Verify(ctx)
	if err != nil {
		return nil, NewBusinessError("SEED_VERIFY_FAILED", "Database verification failed", err)
	}
	return report, nil
}

// VerifyWorkbook writes the verification report as an xlsx workbook
func (f *SeedFlowImpl) VerifyWorkbook(ctx context.Context, w io.Writer) error {
	report, err := f.VerifyDB(ctx)
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(w); err != nil {
		return NewBusinessError("SEED_REPORT_FAILED", "Failed to render verification workbook", err)
	}
	return nil
}
