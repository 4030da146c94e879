// Package audit records plugin administration and PAN check events.
//
// Emission is best-effort. The Recorder logs sink failures and never returns
// them to the caller, so a broken audit sink cannot fail a request.
package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Publisher delivers a single event to a sink.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// ErrActionRequired is returned by sinks for events without an action.
var ErrActionRequired = errors.New("audit event requires action")

// LogPublisher writes each event as a structured log line.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Emit(ctx context.Context, event Event) error {
	if event.Action == "" {
		return ErrActionRequired
	}
	p.logger.InfoContext(ctx, "audit event",
		"action", string(event.Action),
		"actor", event.Actor,
		"request_id", event.RequestID,
		"plugin_uid", event.PluginUID,
		"service", event.Service,
		"provider", event.Provider,
		"pan_hash", event.PANHash,
		"outcome", event.Outcome,
		"cached", event.Cached,
		"timestamp", event.Timestamp,
	)
	return nil
}

// Recorder stamps events and forwards them to a Publisher, swallowing errors.
type Recorder struct {
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// RecorderOption configures the Recorder.
type RecorderOption func(*Recorder)

// WithLogger sets the logger used to report sink failures.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

func NewRecorder(publisher Publisher, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		publisher: publisher,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record emits event. A nil Recorder is a no-op.
func (r *Recorder) Record(ctx context.Context, event Event) {
	if r == nil || r.publisher == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = r.now()
	}
	if err := r.publisher.Emit(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", string(event.Action),
			"plugin_uid", event.PluginUID,
			"error", err,
		)
	}
}

type fanout []Publisher

// Fanout emits each event to every publisher and joins their errors.
func Fanout(publishers ...Publisher) Publisher {
	return fanout(publishers)
}

func (f fanout) Emit(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
