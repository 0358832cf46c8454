package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/casamar/booking-api/internal/core/domain"
)

type PropertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	query := `
	SELECT id, name, price_per_night_cents, cleaning_fee_cents, currency, max_guests
	FROM properties
	ORDER BY name
	`

	var properties []domain.Property
	if err := r.db.SelectContext(ctx, &properties, query); err != nil {
		return nil, err
	}

	return properties, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, propertyID uuid.UUID) (*domain.Property, error) {
	query := `
	SELECT id, name, price_per_night_cents, cleaning_fee_cents, currency, max_guests
	FROM properties
	WHERE id = $1
	`

	var property domain.Property
	if err := r.db.GetContext(ctx, &property, query, propertyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}

	return &property, nil
}
