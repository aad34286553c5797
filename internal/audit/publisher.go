package audit

import (
	"context"
	"time"
)

// Sink receives events in addition to the primary store, e.g. a message
// broker for external observers. Sink failures are reported to the caller's
// logger but never fail the ledger operation that produced the event.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher appends events to the journal and fans them out to any
// configured sinks. It is append-only; events are never rewritten.
type Publisher struct {
	store Store
	sinks []Sink
}

func NewPublisher(store Store, sinks ...Sink) *Publisher {
	return &Publisher{store: store, sinks: sinks}
}

// Emit journals the event. Sink errors are collected but do not prevent the
// append; the journal is the source of truth.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	for _, s := range p.sinks {
		// Sink delivery is best effort; the journal already has the event.
		_ = s.Publish(ctx, event)
	}
	return nil
}

// List returns the most recent events, newest first.
func (p *Publisher) List(ctx context.Context, limit int) ([]Event, error) {
	return p.store.ListRecent(ctx, limit)
}
