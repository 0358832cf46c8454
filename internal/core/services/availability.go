package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/casamar/booking-api/internal/core/domain"
	"github.com/casamar/booking-api/internal/core/ports"
)

// AvailabilityStore holds, per property, the confirmed occupied ranges. It is
// the client-side source of truth for the calendar: loaded once at session
// start and kept fresh through ApplyChange, either locally after an accepted
// submission or from the change feed.
//
// Invariant: ranges for the same property never mutually overlap.
type AvailabilityStore struct {
	mu     sync.RWMutex
	loaded bool

	// propertyID -> reservationID -> range. Keying by reservation id is what
	// makes duplicate change-feed delivery a no-op.
	byProperty map[uuid.UUID]map[uuid.UUID]domain.OccupiedRange
}

func NewAvailabilityStore() *AvailabilityStore {
	return &AvailabilityStore{
		byProperty: make(map[uuid.UUID]map[uuid.UUID]domain.OccupiedRange),
	}
}

// Load replaces the cache with a fresh snapshot from the repository. On
// failure the previous contents are kept and the error wraps
// domain.ErrDataUnavailable: callers must offer a retry, never treat the
// store as empty.
func (s *AvailabilityStore) Load(ctx context.Context, repo ports.ReservationRepository, until time.Time) error {
	ranges, err := repo.OccupiedRanges(ctx, until)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}

	fresh := make(map[uuid.UUID]map[uuid.UUID]domain.OccupiedRange, len(ranges))
	for propertyID, occupied := range ranges {
		byReservation := make(map[uuid.UUID]domain.OccupiedRange, len(occupied))
		for _, o := range occupied {
			byReservation[o.ReservationID] = o
		}
		fresh[propertyID] = byReservation
	}

	s.mu.Lock()
	s.byProperty = fresh
	s.loaded = true
	s.mu.Unlock()

	return nil
}

func (s *AvailabilityStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// IsDateOccupied reports whether day falls within [start, end) of any
// occupied range of the property. A range's check-out day is not occupied
// (turnover day).
func (s *AvailabilityStore) IsDateOccupied(propertyID uuid.UUID, day time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.byProperty[propertyID] {
		if o.Range.ContainsDay(day) {
			return true
		}
	}
	return false
}

// IsRangeAvailable reports whether no occupied range of the property
// overlaps the candidate.
func (s *AvailabilityStore) IsRangeAvailable(propertyID uuid.UUID, candidate domain.DateRange) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.byProperty[propertyID] {
		if o.Range.Overlaps(candidate) {
			return false
		}
	}
	return true
}

// ApplyChange merges one externally pushed change. Idempotent under
// duplicate delivery: an add for a reservation id already present and a
// remove for an absent one are no-ops. An add whose range overlaps a
// different reservation violates the store invariant and is rejected.
func (s *AvailabilityStore) ApplyChange(change domain.AvailabilityChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	occupied := s.byProperty[change.PropertyID]

	switch change.Op {
	case domain.ChangeAdd:
		if _, ok := occupied[change.ReservationID]; ok {
			return nil
		}
		for id, o := range occupied {
			if o.Range.Overlaps(change.Range) {
				return fmt.Errorf("change for reservation %s overlaps reservation %s on property %s",
					change.ReservationID, id, change.PropertyID)
			}
		}
		if occupied == nil {
			occupied = make(map[uuid.UUID]domain.OccupiedRange)
			s.byProperty[change.PropertyID] = occupied
		}
		occupied[change.ReservationID] = domain.OccupiedRange{
			ReservationID: change.ReservationID,
			PropertyID:    change.PropertyID,
			Range:         change.Range,
		}
		return nil

	case domain.ChangeRemove:
		delete(occupied, change.ReservationID)
		return nil

	default:
		return fmt.Errorf("unknown change op %q", change.Op)
	}
}

// OccupiedRanges returns a copy of the property's occupied ranges.
func (s *AvailabilityStore) OccupiedRanges(propertyID uuid.UUID) []domain.OccupiedRange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	occupied := s.byProperty[propertyID]
	out := make([]domain.OccupiedRange, 0, len(occupied))
	for _, o := range occupied {
		out = append(out, o)
	}
	return out
}
