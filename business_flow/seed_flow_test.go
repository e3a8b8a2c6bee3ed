package businessflow

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Luisr26/ExpertSoft/seeder"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	res     *seeder.Result
	err     error
	started chan struct{}
	release chan struct{}
}

func (r *stubRunner) Run(ctx context.Context) (*seeder.Result, error) {
	if r.started != nil {
		close(r.started)
		<-r.release
	}
	return r.res, r.err
}

type stubVerifier struct {
	report *seeder.Report
	err    error
}

func (v stubVerifier) Verify(context.Context) (*seeder.Report, error) {
	return v.report, v.err
}

func TestSeedFlowInitDB(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsRunResult", func(t *testing.T) {
		runner := &stubRunner{res: &seeder.Result{RunID: "r1", TotalAffected: 4}}
		flow := NewSeedFlow(runner, stubVerifier{}, nil, time.Minute, zerolog.Nop())

		res, err := flow.InitDB(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), res.TotalAffected)

		// the lock was released
		_, err = flow.InitDB(ctx)
		assert.NoError(t, err)
	})

	t.Run("FailureKeepsPartialResult", func(t *testing.T) {
		runner := &stubRunner{
			res: &seeder.Result{Stages: []seeder.StageResult{{Entity: seeder.EntityPlatforms, Affected: 1}}},
			err: &seeder.StageError{Entity: seeder.EntityClients, Err: errors.New("boom")},
		}
		flow := NewSeedFlow(runner, stubVerifier{}, nil, 0, zerolog.Nop())

		res, err := flow.InitDB(ctx)
		require.Error(t, err)
		assert.Len(t, res.Stages, 1)
		assert.Contains(t, err.Error(), "clients")
	})

	t.Run("ConcurrentRunIsRejected", func(t *testing.T) {
		runner := &stubRunner{res: &seeder.Result{}, started: make(chan struct{}), release: make(chan struct{})}
		flow := NewSeedFlow(runner, stubVerifier{}, &LocalSeedLocker{}, 0, zerolog.Nop())

		done := make(chan error, 1)
		go func() {
			_, err := flow.InitDB(ctx)
			done <- err
		}()
		<-runner.started

		_, err := flow.InitDB(ctx)
		assert.True(t, IsSeedInProgress(err))

		close(runner.release)
		assert.NoError(t, <-done)
	})
}

func TestSeedFlowVerify(t *testing.T) {
	ctx := context.Background()
	flow := NewSeedFlow(&stubRunner{}, stubVerifier{report: &seeder.Report{Platforms: 1, Transactions: 1}}, nil, 0, zerolog.Nop())

	report, err := flow.VerifyDB(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Transactions)

	var buf bytes.Buffer
	require.NoError(t, flow.VerifyWorkbook(ctx, &buf))
	assert.NotZero(t, buf.Len())

	failing := NewSeedFlow(&stubRunner{}, stubVerifier{err: errors.New("db down")}, nil, 0, zerolog.Nop())
	_, err = failing.VerifyDB(ctx)
	assert.Error(t, err)
}
