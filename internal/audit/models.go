package audit

import (
	"context"
	"time"
)

// Event is the journal form of a ledger event. Keep it transport-agnostic so
// stores and sinks can fan out; amounts travel as decimal strings so the
// journal is not tied to a numeric representation.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Actor     string    `json:"actor,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	TicketID  uint64    `json:"ticket_id,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Store is an append-only journal of events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
