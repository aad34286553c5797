package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists the journal in PostgreSQL via database/sql. The
// schema is a single append-only table:
//
//	CREATE TABLE IF NOT EXISTS audit_events (
//	    id         BIGSERIAL PRIMARY KEY,
//	    ts         TIMESTAMPTZ NOT NULL,
//	    kind       TEXT NOT NULL,
//	    actor      TEXT NOT NULL DEFAULT '',
//	    subject    TEXT NOT NULL DEFAULT '',
//	    ticket_id  BIGINT NOT NULL DEFAULT 0,
//	    amount     TEXT NOT NULL DEFAULT '',
//	    detail     TEXT NOT NULL DEFAULT ''
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the journal table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS audit_events (
			id         BIGSERIAL PRIMARY KEY,
			ts         TIMESTAMPTZ NOT NULL,
			kind       TEXT NOT NULL,
			actor      TEXT NOT NULL DEFAULT '',
			subject    TEXT NOT NULL DEFAULT '',
			ticket_id  BIGINT NOT NULL DEFAULT 0,
			amount     TEXT NOT NULL DEFAULT '',
			detail     TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (ts, kind, actor, subject, ticket_id, amount, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.Timestamp, event.Kind, event.Actor, event.Subject, int64(event.TicketID), event.Amount, event.Detail,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, kind, actor, subject, ticket_id, amount, detail
		FROM audit_events
		ORDER BY id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var ticketID int64
		if err := rows.Scan(&e.Timestamp, &e.Kind, &e.Actor, &e.Subject, &ticketID, &e.Amount, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.TicketID = uint64(ticketID)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
