package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo appends call events to the call_events table.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO call_events (id, call_id, type, booking_id, message, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.CallID,
		string(e.Type),
		e.BookingID,
		e.Message,
		e.Metadata,
		e.CreatedAt,
	)
	return err
}
