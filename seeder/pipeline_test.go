package seeder

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/Luisr26/ExpertSoft/config"
	"github.com/Luisr26/ExpertSoft/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySources serves seed files from memory, keyed by path
func memorySources(files map[string]string) Opener {
	return func(_ context.Context, path string) (io.ReadCloser, error) {
		content, ok := files[path]
		if !ok {
			return nil, &IOError{Path: path, Err: errors.New("not found")}
		}
		return io.NopCloser(strings.NewReader(content)), nil
	}
}

type fakeUpserter[R any] struct {
	mu      sync.Mutex
	name    string
	calls   *[]string
	batches [][]R
	err     error
}

func (f *fakeUpserter[R]) UpsertRows(_ context.Context, rows []R) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*f.calls = append(*f.calls, f.name)
	if f.err != nil {
		return 0, f.err
	}
	f.batches = append(f.batches, rows)
	return int64(len(rows)), nil
}

type recordingNotifier struct {
	events []Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, e Event) error {
	n.events = append(n.events, e)
	return n.err
}

type seedFixture struct {
	calls        []string
	platforms    *fakeUpserter[models.PlatformRow]
	clients      *fakeUpserter[models.ClientRow]
	invoices     *fakeUpserter[models.InvoiceRow]
	transactions *fakeUpserter[models.TransactionRow]
	files        map[string]string
	paths        config.SeedPaths
}

func newSeedFixture() *seedFixture {
	f := &seedFixture{
		paths: config.SeedPaths{
			Platforms:    "platforms.csv",
			Clients:      "clients.csv",
			Invoices:     "invoices.csv",
			Transactions: "transactions.csv",
		},
	}
	f.platforms = &fakeUpserter[models.PlatformRow]{name: EntityPlatforms, calls: &f.calls}
	f.clients = &fakeUpserter[models.ClientRow]{name: EntityClients, calls: &f.calls}
	f.invoices = &fakeUpserter[models.InvoiceRow]{name: EntityInvoices, calls: &f.calls}
	f.transactions = &fakeUpserter[models.TransactionRow]{name: EntityTransactions, calls: &f.calls}
	f.files = map[string]string{
		"platforms.csv": "id_plataforma,nombre_plataforma\n1,Netflix\n",
		"clients.csv": "id_cliente,nombre_cliente,numero_identificacion,direccion,telefono,correo_electronico\n" +
			"1,Alice,100,Main St,555,alice@example.com\n",
		"invoices.csv": "id_factura,numero_factura,periodo_facturacion,monto_facturado,monto_pagado\n" +
			"1,INV-1,2024-06,10.00,10.00\n",
		"transactions.csv": "id_transaccion,id_cliente,id_plataforma,id_factura,fecha_hora_transaccion,monto_transaccion,estado_transaccion,tipo_transaccion\n" +
			"T1,1,1,1,2024-06-01 10:00:00,10.00,Completada,Pago de Factura\n",
	}
	return f
}

func (f *seedFixture) pipeline(notifier Notifier) *Pipeline {
	repos := Repositories{
		Platforms:    f.platforms,
		Clients:      f.clients,
		Invoices:     f.invoices,
		Transactions: f.transactions,
	}
	return NewSeedPipeline(repos, f.paths, memorySources(f.files), notifier, zerolog.Nop())
}

func TestPipelineRun(t *testing.T) {
	t.Run("LoadsInDependencyOrder", func(t *testing.T) {
		f := newSeedFixture()
		notifier := &recordingNotifier{}

		res, err := f.pipeline(notifier).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{EntityPlatforms, EntityClients, EntityInvoices, EntityTransactions}, f.calls)
		require.Len(t, res.Stages, 4)
		assert.Equal(t, int64(4), res.TotalAffected)
		assert.NotEmpty(t, res.RunID)
		assert.False(t, res.FinishedAt.Before(res.StartedAt))

		require.Len(t, f.transactions.batches, 1)
		tx := f.transactions.batches[0][0]
		assert.Equal(t, "T1", tx.ID)
		assert.Equal(t, "2024-06-01 10:00:00", tx.OccurredAt)
		assert.Equal(t, "Pago de Factura", tx.Type)

		require.Len(t, notifier.events, 9)
		assert.Equal(t, EventStageStarted, notifier.events[0].Kind)
		assert.Equal(t, EventRunCompleted, notifier.events[8].Kind)
		assert.Equal(t, int64(4), notifier.events[8].Affected)
	})

	t.Run("StopsAtFirstFailure", func(t *testing.T) {
		f := newSeedFixture()
		f.invoices.err = errors.New("connection reset")
		notifier := &recordingNotifier{}

		res, err := f.pipeline(notifier).Run(context.Background())
		require.Error(t, err)

		entity, ok := FailedStage(err)
		require.True(t, ok)
		assert.Equal(t, EntityInvoices, entity)
		assert.Contains(t, err.Error(), "connection reset")

		assert.Equal(t, []string{EntityPlatforms, EntityClients, EntityInvoices}, f.calls)
		require.Len(t, res.Stages, 2)
		assert.Equal(t, int64(2), res.TotalAffected)

		last := notifier.events[len(notifier.events)-1]
		assert.Equal(t, EventStageFailed, last.Kind)
		assert.Equal(t, EntityInvoices, last.Entity)
	})

	t.Run("MalformedSourceSkipsUpsert", func(t *testing.T) {
		f := newSeedFixture()
		f.files["clients.csv"] = "id_cliente,nombre_cliente\n1,Alice\n"

		_, err := f.pipeline(nil).Run(context.Background())
		require.Error(t, err)
		assert.True(t, IsMalformedRow(err))
		assert.Equal(t, []string{EntityPlatforms}, f.calls)
	})

	t.Run("MissingSourceIsIOError", func(t *testing.T) {
		f := newSeedFixture()
		delete(f.files, "platforms.csv")

		_, err := f.pipeline(nil).Run(context.Background())
		require.Error(t, err)
		assert.True(t, IsIOError(err))
		assert.Empty(t, f.calls)
	})

	t.Run("HeaderOnlySourceAffectsNothing", func(t *testing.T) {
		f := newSeedFixture()
		f.files["platforms.csv"] = "id_plataforma,nombre_plataforma\n"

		res, err := f.pipeline(nil).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.Stages[0].Affected)
		assert.NotContains(t, f.calls, EntityPlatforms)
	})

	t.Run("RepeatedKeyKeepsLastRow", func(t *testing.T) {
		f := newSeedFixture()
		f.files["platforms.csv"] = "id_plataforma,nombre_plataforma\n1,Nequi\n2,Daviplata\n1,Netflix\n"

		res, err := f.pipeline(nil).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.Stages[0].Affected)

		require.Len(t, f.platforms.batches, 1)
		assert.Equal(t, []models.PlatformRow{{ID: "1", Name: "Netflix"}, {ID: "2", Name: "Daviplata"}}, f.platforms.batches[0])
	})

	t.Run("NotifierFailureDoesNotFailRun", func(t *testing.T) {
		f := newSeedFixture()
		notifier := &recordingNotifier{err: errors.New("broker down")}

		res, err := f.pipeline(notifier).Run(context.Background())
		require.NoError(t, err)
		assert.Len(t, res.Stages, 4)
	})
}

func TestNotifiersFanOut(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{err: errors.New("b failed")}
	c := &recordingNotifier{}

	err := Notifiers{a, nil, b, c}.Notify(context.Background(), Event{Kind: EventRunCompleted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b failed")
	assert.Len(t, a.events, 1)
	assert.Len(t, c.events, 1)
}

func TestNotifiersSkipTypedNil(t *testing.T) {
	var publisher *AMQPPublisher
	rec := &recordingNotifier{}

	require.NotPanics(t, func() {
		err := Notifiers{publisher, rec}.Notify(context.Background(), Event{Kind: EventRunCompleted})
		require.NoError(t, err)
	})
	assert.Len(t, rec.events, 1)

	t.Run("pipeline with a nil publisher", func(t *testing.T) {
		f := newSeedFixture()
		res, err := f.pipeline(publisher).Run(context.Background())
		require.NoError(t, err)
		assert.Len(t, res.Stages, 4)
	})
}

func TestMetricsNotifierAcceptsEveryKind(t *testing.T) {
	var m MetricsNotifier
	for _, kind := range []EventKind{EventStageStarted, EventStageCompleted, EventStageFailed, EventRunCompleted} {
		assert.NoError(t, m.Notify(context.Background(), Event{Kind: kind, Entity: EntityPlatforms, Affected: 1, DurationMS: 5}))
	}
}
