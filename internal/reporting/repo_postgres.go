package reporting

import (
	"context"
	"database/sql"
	"time"

	"studio-voice-backend/internal/booking"
)

// PostgresRepo reads booking rows for aggregation.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) ListBookingsInRange(ctx context.Context, from, to time.Time) ([]booking.ConfirmedBooking, error) {
	const q = `
SELECT id, call_id, artist_name, studio, date, time, duration_hours,
       currency, total_cost_minor, deposit_amount_minor, status, contact_phone, created_at
FROM bookings
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at ASC
`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.ConfirmedBooking
	for rows.Next() {
		var b booking.ConfirmedBooking
		if err := rows.Scan(
			&b.ID,
			&b.CallID,
			&b.ArtistName,
			&b.Studio,
			&b.Date,
			&b.Time,
			&b.DurationHours,
			&b.Currency,
			&b.TotalCostMinor,
			&b.DepositAmountMinor,
			&b.Status,
			&b.ContactPhone,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
