package seeder

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/rs/zerolog"
)

type EventKind string

const (
	EventStageStarted   EventKind = "stage_started"
	EventStageCompleted EventKind = "stage_completed"
	EventStageFailed    EventKind = "stage_failed"
	EventRunCompleted   EventKind = "run_completed"
)

// Event reports pipeline progress
type Event struct {
	RunID      string    `json:"run_id"`
	Kind       EventKind `json:"kind"`
	Entity     string    `json:"entity,omitempty"`
	Affected   int64     `json:"affected"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

// Notifier receives pipeline events
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Notifiers fans an event out to every notifier
type Notifiers []Notifier

func (n Notifiers) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, notifier := range n {
		if isNilNotifier(notifier) {
			continue
		}
		if err := notifier.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// isNilNotifier also catches a nil pointer stored in the interface,
// such as a publisher that was never connected.
func isNilNotifier(n Notifier) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// LogNotifier writes every event to a structured logger
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, e Event) error {
	var ev *zerolog.Event
	switch e.Kind {
	case EventStageFailed:
		ev = n.log.Error().Str("error", e.Error)
	default:
		ev = n.log.Info()
	}
	ev.Str("run_id", e.RunID).
		Str("event", string(e.Kind)).
		Int64("duration_ms", e.DurationMS)
	if e.Entity != "" {
		ev.Str("entity", e.Entity)
	}
	if e.Kind == EventStageCompleted || e.Kind == EventRunCompleted {
		ev.Int64("affected", e.Affected)
	}
	ev.Msg("seed " + string(e.Kind))
	return nil
}
