package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/casamar/booking-api/internal/core/domain"
	"github.com/casamar/booking-api/internal/core/services"
)

func TestPick_RejectsPastDates(t *testing.T) {
	store := loadedStore(t, map[uuid.UUID][]domain.OccupiedRange{})
	sel := services.NewCalendarSelection(store, uuid.New())

	err := sel.Pick(time.Now().AddDate(0, 0, -1))

	assert.ErrorIs(t, err, services.ErrPastDate)
	assert.Equal(t, services.SelectionEmpty, sel.State())
}

func TestPick_RejectsOccupiedCheckIn(t *testing.T) {
	propertyID := uuid.New()
	store := loadedStore(t, map[uuid.UUID][]domain.OccupiedRange{
		propertyID: {{
			ReservationID: uuid.New(),
			PropertyID:    propertyID,
			Range:         mustRange(t, date(2030, 7, 10), date(2030, 7, 15)),
		}},
	})

	sel := services.NewCalendarSelection(store, propertyID)

	assert.ErrorIs(t, sel.Pick(date(2030, 7, 12)), services.ErrDateOccupied)
	assert.Equal(t, services.SelectionEmpty, sel.State())

	// The check-out day of the existing reservation is a turnover day.
	assert.NoError(t, sel.Pick(date(2030, 7, 15)))
	assert.Equal(t, services.SelectionAwaitingCheckout, sel.State())
}

func TestPick_TwoStepCompletesSelection(t *testing.T) {
	store := loadedStore(t, map[uuid.UUID][]domain.OccupiedRange{})
	sel := services.NewCalendarSelection(store, uuid.New())

	assert.NoError(t, sel.Pick(date(2030, 7, 5)))
	assert.Equal(t, services.SelectionAwaitingCheckout, sel.State())

	assert.NoError(t, sel.Pick(date(2030, 7, 9)))
	assert.Equal(t, services.SelectionComplete, sel.State())

	r, ok := sel.Range()
	assert.True(t, ok)
	assert.Equal(t, date(2030, 7, 5), r.Start)
	assert.Equal(t, date(2030, 7, 9), r.End)
	assert.Equal(t, 4, r.Nights())
}

func TestPick_EarlierOrEqualDateRestartsRange(t *testing.T) {
	store := loadedStore(t, map[uuid.UUID][]domain.OccupiedRange{})
	sel := services.NewCalendarSelection(store, uuid.New())

	assert.NoError(t, sel.Pick(date(2030, 7, 10)))

	// Same day: never a zero-night selection.
	assert.NoError(t, sel.Pick(date(2030, 7, 10)))
	assert.Equal(t, services.SelectionAwaitingCheckout, sel.State())

	// Earlier day restarts at the new date.
	assert.NoError(t, sel.Pick(date(2030, 7, 3)))
	assert.Equal(t, services.SelectionAwaitingCheckout, sel.State())
	assert.Equal(t, date(2030, 7, 3), sel.Selection().CheckIn)

	_, ok := sel.Range()
	assert.False(t, ok)
}

func TestPick_RejectsSpanCrossingOccupiedRange(t *testing.T) {
	propertyID := uuid.New()
	store := loadedStore(t, map[uuid.UUID][]domain.OccupiedRange{
		propertyID: {{
			ReservationID: uuid.New(),
			PropertyID:    propertyID,
			Range:         mustRange(t, date(2030, 7, 10), date(2030, 7, 15)),
		}},
	})

	sel := services.NewCalendarSelection(store, propertyID)

	assert.NoError(t, sel.Pick(date(2030, 7, 5)))
	err := sel.Pick(date(2030, 7, 12))

	// Rejected outright, never silently truncated.
	assert.ErrorIs(t, err, services.ErrRangeUnavailable)
	assert.Equal(t, services.SelectionAwaitingCheckout, sel.State())
	assert.Equal(t, date(2030, 7, 5), sel.Selection().CheckIn)

	// A span ending on the occupied check-in is fine (turnover).
	assert.NoError(t, sel.Pick(date(2030, 7, 10)))
	assert.Equal(t, services.SelectionComplete, sel.State())
}

func TestPick_NewClickAfterCompleteRestartsCycle(t *testing.T) {
	store := loadedStore(t, map[uuid.UUID][]domain.OccupiedRange{})
	sel := services.NewCalendarSelection(store, uuid.New())

	assert.NoError(t, sel.Pick(date(2030, 7, 5)))
	assert.NoError(t, sel.Pick(date(2030, 7, 9)))
	assert.Equal(t, services.SelectionComplete, sel.State())

	assert.NoError(t, sel.Pick(date(2030, 7, 20)))
	assert.Equal(t, services.SelectionAwaitingCheckout, sel.State())
	assert.Equal(t, date(2030, 7, 20), sel.Selection().CheckIn)
}

func TestSetProperty_ResetsSelection(t *testing.T) {
	store := loadedStore(t, map[uuid.UUID][]domain.OccupiedRange{})
	sel := services.NewCalendarSelection(store, uuid.New())
	sel.SetGuests(domain.GuestCounts{Adults: 2, Children: 1})

	assert.NoError(t, sel.Pick(date(2030, 7, 5)))

	next := uuid.New()
	sel.SetProperty(next)

	assert.Equal(t, services.SelectionEmpty, sel.State())
	assert.Equal(t, next, sel.Selection().PropertyID)
	assert.True(t, sel.Selection().CheckIn.IsZero())
	assert.Equal(t, 3, sel.Selection().Guests.Total(), "guest counts survive a property switch")
}
