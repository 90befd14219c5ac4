package booking

import (
	"context"
	"database/sql"
	"errors"

	"studio-voice-backend/pkg/utils"
)

var (
	ErrNotFound        = errors.New("booking not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Repository is the persistence contract for confirmed bookings.
//
// Create must be all-or-nothing: a failed insert leaves no partial record.
// Records are immutable from this service's point of view; status updates
// after payment belong to the billing side.
type Repository interface {
	Create(ctx context.Context, b ConfirmedBooking) error
	GetByID(ctx context.Context, id string) (ConfirmedBooking, error)
	List(ctx context.Context, limit int) ([]ConfirmedBooking, error)
}

// PostgresRepo stores bookings in the bookings table.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, b ConfirmedBooking) error {
	if b.ID == "" || b.CallID == "" {
		return ErrInvalidArgument
	}
	const q = `
INSERT INTO bookings
  (id, call_id, artist_name, studio, date, time, duration_hours,
   currency, total_cost_minor, deposit_amount_minor, status, contact_phone, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, q,
			b.ID,
			b.CallID,
			b.ArtistName,
			string(b.Studio),
			b.Date,
			b.Time,
			b.DurationHours,
			b.Currency,
			b.TotalCostMinor,
			b.DepositAmountMinor,
			string(b.Status),
			b.ContactPhone,
			b.CreatedAt,
		)
		return err
	})
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (ConfirmedBooking, error) {
	const q = `
SELECT id, call_id, artist_name, studio, date, time, duration_hours,
       currency, total_cost_minor, deposit_amount_minor, status, contact_phone, created_at
FROM bookings
WHERE id = $1
`
	var b ConfirmedBooking
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
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
		if errors.Is(err, sql.ErrNoRows) {
			return ConfirmedBooking{}, ErrNotFound
		}
		return ConfirmedBooking{}, err
	}
	return b, nil
}

func (r *PostgresRepo) List(ctx context.Context, limit int) ([]ConfirmedBooking, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const q = `
SELECT id, call_id, artist_name, studio, date, time, duration_hours,
       currency, total_cost_minor, deposit_amount_minor, status, contact_phone, created_at
FROM bookings
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConfirmedBooking
	for rows.Next() {
		var b ConfirmedBooking
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
