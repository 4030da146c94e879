package audit

import (
	"context"
	"errors"
	"log/slog"
)

// ErrQueueFull is returned by AsyncPublisher when its buffer has no room.
var ErrQueueFull = errors.New("audit queue full")

// AsyncPublisher queues events on a bounded channel and delivers them to a
// slower sink (Kafka) from a background worker, keeping request latency
// independent of the broker. When the queue is full the event is dropped.
type AsyncPublisher struct {
	sink   Publisher
	inbox  chan Event
	logger *slog.Logger
	done   chan struct{}
}

func NewAsyncPublisher(sink Publisher, capacity int, logger *slog.Logger) *AsyncPublisher {
	if capacity <= 0 {
		capacity = 1024
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AsyncPublisher{
		sink:   sink,
		inbox:  make(chan Event, capacity),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Emit enqueues event without blocking.
func (p *AsyncPublisher) Emit(_ context.Context, event Event) error {
	if event.Action == "" {
		return ErrActionRequired
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run delivers queued events until ctx is cancelled, then drains what is left
// with a fresh context and returns.
func (p *AsyncPublisher) Run(ctx context.Context) {
	defer close(p.done)
	for {
		select {
		case <-ctx.Done():
			p.drain()
			return
		case event := <-p.inbox:
			p.deliver(ctx, event)
		}
	}
}

// Wait blocks until Run has returned.
func (p *AsyncPublisher) Wait() {
	<-p.done
}

func (p *AsyncPublisher) drain() {
	ctx := context.Background()
	for {
		select {
		case event := <-p.inbox:
			p.deliver(ctx, event)
		default:
			return
		}
	}
}

func (p *AsyncPublisher) deliver(ctx context.Context, event Event) {
	if err := p.sink.Emit(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "failed to deliver audit event",
			"action", string(event.Action),
			"plugin_uid", event.PluginUID,
			"error", err,
		)
	}
}
