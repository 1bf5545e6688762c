package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "movi/internal/db"
	"movi/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
	tx *sql.Tx
}

// WithTx returns a copy of the repository that runs on tx.
func (r BookingRepository) WithTx(tx *sql.Tx) BookingRepository {
	r.tx = tx
	return r
}

// CountConfirmed counts confirmed bookings of a trip.
func (r BookingRepository) CountConfirmed(ctx context.Context, tripID int64) (int, error) {
	q, err := conn(r.tx, r.DB)
	if err != nil {
		return 0, err
	}
	var n int
	err = q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE trip_id=? AND status=?`,
		tripID, models.BookingConfirmed,
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// CancelConfirmed moves every confirmed booking of a trip to cancelled and
// returns how many rows changed. Running it again returns 0.
func (r BookingRepository) CancelConfirmed(ctx context.Context, tripID int64) (int64, error) {
	q, err := conn(r.tx, r.DB)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx,
		`UPDATE bookings SET status=? WHERE trip_id=? AND status=?`,
		models.BookingCancelled, tripID, models.BookingConfirmed,
	)
	if err != nil {
		return 0, err
	}
	return intdb.RowsAffected(res), nil
}

// ListConfirmed returns the confirmed bookings of a trip, oldest first.
func (r BookingRepository) ListConfirmed(ctx context.Context, tripID int64) ([]models.Booking, error) {
	q, err := conn(r.tx, r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `
		SELECT booking_id, trip_id, passenger_name, status, created_at
		FROM bookings
		WHERE trip_id=? AND status=?
		ORDER BY booking_id ASC
	`, tripID, models.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var (
			b         models.Booking
			createdAt sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.TripID, &b.PassengerName, &b.Status, &createdAt); err != nil {
			return out, err
		}
		if createdAt.Valid {
			b.CreatedAt = createdAt.Time
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create inserts a confirmed booking and returns its id.
func (r BookingRepository) Create(ctx context.Context, in models.BookingInput) (int64, error) {
	name := strings.TrimSpace(in.PassengerName)
	if in.TripID <= 0 || name == "" {
		return 0, fmt.Errorf("trip_id dan passenger_name wajib diisi")
	}
	q, err := conn(r.tx, r.DB)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx,
		`INSERT INTO bookings (trip_id, passenger_name, status) VALUES (?, ?, ?)`,
		in.TripID, name, models.BookingConfirmed,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
