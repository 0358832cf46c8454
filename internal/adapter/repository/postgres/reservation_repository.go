package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/casamar/booking-api/internal/core/domain"
)

type ReservationRepository struct {
	db *sqlx.DB
}

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create commits the reservation with an atomic check-and-reserve: a
// per-property advisory lock serializes concurrent attempts and the insert
// is guarded by an overlap predicate. Zero rows inserted means another
// reservation won the race.
func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, reservation.PropertyID.String())
	if err != nil {
		return fmt.Errorf("failed to take property lock: %w", err)
	}

	query := `
	INSERT INTO reservations (
		id, property_id, check_in, check_out,
		adults, children, infants,
		first_name, last_name, email, phone,
		address, city, country, postal_code, special_requests,
		total_cents, status, created_at
	)
	SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
	WHERE NOT EXISTS (
		SELECT 1 FROM reservations
		WHERE property_id = $2
		  AND status = 'CONFIRMED'
		  AND check_in < $4
		  AND $3 < check_out
	)
	`

	result, err := tx.ExecContext(ctx, query,
		reservation.ID,
		reservation.PropertyID,
		reservation.Range.Start,
		reservation.Range.End,
		reservation.Guests.Adults,
		reservation.Guests.Children,
		reservation.Guests.Infants,
		reservation.Customer.FirstName,
		reservation.Customer.LastName,
		reservation.Customer.Email,
		reservation.Customer.Phone,
		reservation.Customer.Address,
		reservation.Customer.City,
		reservation.Customer.Country,
		reservation.Customer.PostalCode,
		reservation.Customer.SpecialRequests,
		reservation.TotalCents,
		reservation.Status,
		reservation.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrConflict
	}

	return tx.Commit()
}

func (r *ReservationRepository) OccupiedRanges(ctx context.Context, until time.Time) (map[uuid.UUID][]domain.OccupiedRange, error) {
	query := `
	SELECT id, property_id, check_in, check_out
	FROM reservations
	WHERE status = 'CONFIRMED' AND check_in < $1 AND check_out > NOW()::date
	`

	rows, err := r.db.QueryContext(ctx, query, until)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	occupied := make(map[uuid.UUID][]domain.OccupiedRange)
	for rows.Next() {
		var o domain.OccupiedRange
		var start, end time.Time
		if err := rows.Scan(&o.ReservationID, &o.PropertyID, &start, &end); err != nil {
			return nil, err
		}

		o.Range = domain.DateRange{Start: domain.Day(start), End: domain.Day(end)}
		occupied[o.PropertyID] = append(occupied[o.PropertyID], o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return occupied, nil
}
