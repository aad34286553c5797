// Package app hosts the execution-environment adapter around the ledger
// core: it serializes operations, supplies the clock, and fans out events,
// metrics, and logs. The core itself stays pure and lock-free.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"ticketd/internal/audit"
	"ticketd/internal/ledger"
	"ticketd/internal/ledger/metrics"
	"ticketd/internal/platform/clock"
	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

// Service is the single writer over the ledger. All operations, reads
// included, take the mutex so every caller observes a consistent snapshot;
// the total order the core assumes is exactly the lock acquisition order.
type Service struct {
	mu      sync.Mutex
	ledger  *ledger.Ledger
	clock   clock.Clock
	events  chan<- audit.Event
	metrics *metrics.Metrics
	log     *slog.Logger
	tracer  trace.Tracer
}

// New wires the service. events may be nil when no journal is configured;
// metrics may be nil in tests.
func New(l *ledger.Ledger, clk clock.Clock, events chan<- audit.Event, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		ledger:  l,
		clock:   clk,
		events:  events,
		metrics: m,
		log:     log,
		tracer:  otel.Tracer("ticketd/app"),
	}
}

// BuyTickets purchases count tickets for the buyer with the attached
// payment. Returns the new ticket id and the refund the environment owes the
// buyer.
func (s *Service) BuyTickets(ctx context.Context, buyer domain.Address, count int64, paid decimal.Decimal) (ledger.PurchaseResult, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.buy_tickets")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	now := s.clock.Now()

	result, events, err := s.ledger.BuyTickets(buyer, count, paid, now)
	s.finish(ctx, "buy_tickets", start, now, buyer, events, err)
	if err != nil {
		return ledger.PurchaseResult{}, err
	}
	s.metrics.AddTicketsSold(count)
	s.metrics.SetTreasuryBalance(s.ledger.TreasuryBalance().InexactFloat64())
	return result, nil
}

// Transfer moves amount from the caller to another holder against a ticket's
// validity window.
func (s *Service) Transfer(ctx context.Context, from, to domain.Address, amount decimal.Decimal, ticketID domain.TicketID) error {
	ctx, span := s.tracer.Start(ctx, "ledger.transfer")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	now := s.clock.Now()

	events, err := s.ledger.Transfer(from, to, amount, ticketID, now)
	s.finish(ctx, "transfer", start, now, from, events, err)
	return err
}

// TransferToVendor settles amount from the caller to the primary venue.
func (s *Service) TransferToVendor(ctx context.Context, from domain.Address, amount decimal.Decimal, ticketID domain.TicketID) error {
	ctx, span := s.tracer.Start(ctx, "ledger.transfer_to_vendor")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	now := s.clock.Now()

	events, err := s.ledger.TransferToVendor(from, amount, ticketID, now)
	s.finish(ctx, "transfer_to_vendor", start, now, from, events, err)
	return err
}

// BurnExpiredTicket forfeits whatever remains of an expired ticket.
func (s *Service) BurnExpiredTicket(ctx context.Context, caller domain.Address, ticketID domain.TicketID) error {
	ctx, span := s.tracer.Start(ctx, "ledger.burn_expired_ticket")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	now := s.clock.Now()

	events, err := s.ledger.BurnExpiredTicket(ticketID, now)
	s.finish(ctx, "burn_expired_ticket", start, now, caller, events, err)
	return err
}

// Mint credits `to` directly, without a ticket record. Venue only.
func (s *Service) Mint(ctx context.Context, caller, to domain.Address, amount decimal.Decimal) error {
	ctx, span := s.tracer.Start(ctx, "ledger.mint")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	now := s.clock.Now()

	events, err := s.ledger.Mint(caller, to, amount)
	s.finish(ctx, "mint", start, now, caller, events, err)
	return err
}

// GrantVenueRole adds identity to the venue role set. Owner only.
func (s *Service) GrantVenueRole(ctx context.Context, caller, identity domain.Address) error {
	ctx, span := s.tracer.Start(ctx, "ledger.grant_venue_role")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	now := s.clock.Now()

	events, err := s.ledger.GrantVenueRole(caller, identity)
	s.finish(ctx, "grant_venue_role", start, now, caller, events, err)
	return err
}

// Pause engages the pause gate. Owner only.
func (s *Service) Pause(ctx context.Context, caller domain.Address) error {
	ctx, span := s.tracer.Start(ctx, "ledger.pause")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	now := s.clock.Now()

	events, err := s.ledger.Pause(caller)
	s.finish(ctx, "pause", start, now, caller, events, err)
	if err == nil {
		s.metrics.SetPaused(true)
	}
	return err
}

// Unpause releases the pause gate. Owner only.
func (s *Service) Unpause(ctx context.Context, caller domain.Address) error {
	ctx, span := s.tracer.Start(ctx, "ledger.unpause")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	now := s.clock.Now()

	events, err := s.ledger.Unpause(caller)
	s.finish(ctx, "unpause", start, now, caller, events, err)
	if err == nil {
		s.metrics.SetPaused(false)
	}
	return err
}

// Withdraw drains the treasury to the caller. Venue only; allowed while
// paused.
func (s *Service) Withdraw(ctx context.Context, caller domain.Address) (decimal.Decimal, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.withdraw")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	now := s.clock.Now()

	amount, events, err := s.ledger.Withdraw(caller)
	s.finish(ctx, "withdraw", start, now, caller, events, err)
	if err != nil {
		return decimal.Zero, err
	}
	s.metrics.SetTreasuryBalance(s.ledger.TreasuryBalance().InexactFloat64())
	return amount, nil
}

// BalanceOf returns the holder's balance under the same lock as mutations so
// reads never observe a half-applied operation.
func (s *Service) BalanceOf(ctx context.Context, holder domain.Address) decimal.Decimal {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.BalanceOf(holder)
}

// Ticket returns the record for the given id.
func (s *Service) Ticket(ctx context.Context, id domain.TicketID) (ledger.TicketRecord, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Ticket(id)
}

// TreasuryBalance returns the accumulated payment total.
func (s *Service) TreasuryBalance(ctx context.Context) decimal.Decimal {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.TreasuryBalance()
}

// IsPaused reports the pause gate state.
func (s *Service) IsPaused(ctx context.Context) bool {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.IsPaused()
}

// HasRole reports whether identity holds role.
func (s *Service) HasRole(ctx context.Context, identity domain.Address, role domain.Role) bool {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.HasRole(identity, role)
}

// finish records metrics, logs the outcome, and queues events for the
// journal worker. Called with the lock held.
func (s *Service) finish(ctx context.Context, op string, start, now time.Time, caller domain.Address, events []ledger.Event, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
	}
	s.metrics.ObserveOperation(op, outcome, time.Since(start))

	if err != nil {
		s.log.WarnContext(ctx, "ledger operation rejected",
			"operation", op,
			"caller", caller.String(),
			"outcome", outcome,
			"error", err,
		)
		return
	}
	s.log.InfoContext(ctx, "ledger operation applied",
		"operation", op,
		"caller", caller.String(),
		"events", len(events),
	)
	if s.events == nil {
		return
	}
	for _, e := range events {
		entry := toAuditEvent(e, caller, now)
		select {
		case s.events <- entry:
		default:
			// Journal backpressure must not block the ledger.
			s.log.WarnContext(ctx, "audit inbox full, dropping event", "kind", entry.Kind)
		}
	}
}

// toAuditEvent flattens a typed ledger event into its journal form.
func toAuditEvent(e ledger.Event, caller domain.Address, now time.Time) audit.Event {
	entry := audit.Event{
		Timestamp: now,
		Kind:      e.Kind(),
		Actor:     caller.String(),
	}
	switch ev := e.(type) {
	case ledger.RoleGranted:
		entry.Subject = ev.Identity.String()
		entry.Detail = ev.Role.String()
	case ledger.TicketPurchased:
		entry.Subject = ev.Buyer.String()
		entry.TicketID = uint64(ev.TicketID)
		entry.Amount = decimal.NewFromInt(ev.Count).String()
	case ledger.TicketTransferred:
		entry.Subject = ev.To.String()
		entry.TicketID = uint64(ev.TicketID)
		entry.Amount = ev.Amount.String()
	case ledger.TicketBurned:
		entry.TicketID = uint64(ev.TicketID)
	case ledger.Withdrawn:
		entry.Subject = ev.To.String()
		entry.Amount = ev.Amount.String()
	}
	return entry
}
