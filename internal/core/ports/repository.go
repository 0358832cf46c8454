package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/casamar/booking-api/internal/core/domain"
)

type PropertyRepository interface {
	List(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, propertyID uuid.UUID) (*domain.Property, error)
}

type ReservationRepository interface {
	// Create performs the atomic check-and-reserve: within one transaction it
	// rejects with domain.ErrConflict if the range overlaps a reservation
	// committed in the meantime.
	Create(ctx context.Context, reservation *domain.Reservation) error

	// OccupiedRanges returns, per property, the confirmed ranges up to the
	// given horizon.
	OccupiedRanges(ctx context.Context, until time.Time) (map[uuid.UUID][]domain.OccupiedRange, error)
}

// ChangePublisher pushes availability changes to other booking sessions.
type ChangePublisher interface {
	Publish(ctx context.Context, change domain.AvailabilityChange) error
}

// Notifier sends the out-of-band confirmation. Fire-and-forget: a failure is
// logged, never rolled back into the reservation.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, reservation *domain.Reservation) error
}
