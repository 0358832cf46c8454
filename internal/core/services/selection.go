package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/casamar/booking-api/internal/core/domain"
)

type SelectionState int

const (
	SelectionEmpty SelectionState = iota
	SelectionAwaitingCheckout
	SelectionComplete
)

func (s SelectionState) String() string {
	switch s {
	case SelectionEmpty:
		return "empty"
	case SelectionAwaitingCheckout:
		return "awaiting_checkout"
	case SelectionComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	ErrPastDate         = errors.New("date is in the past")
	ErrDateOccupied     = errors.New("date is already reserved")
	ErrRangeUnavailable = errors.New("selected range crosses a reserved date")
)

// Selection is the transient state of one booking attempt. It is only
// meaningful relative to a single property's occupancy and is mutated
// exclusively by CalendarSelection.
type Selection struct {
	PropertyID uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     domain.GuestCounts
}

// CalendarSelection drives the two-step date pick: first click sets the
// check-in, second the check-out. A click at or before the current check-in
// restarts the range instead of producing a zero-night stay.
type CalendarSelection struct {
	store *AvailabilityStore
	now   func() time.Time

	state SelectionState
	sel   Selection
}

func NewCalendarSelection(store *AvailabilityStore, propertyID uuid.UUID) *CalendarSelection {
	return &CalendarSelection{
		store: store,
		now:   time.Now,
		sel:   Selection{PropertyID: propertyID},
	}
}

func (c *CalendarSelection) State() SelectionState { return c.state }

func (c *CalendarSelection) Selection() Selection { return c.sel }

func (c *CalendarSelection) SetGuests(g domain.GuestCounts) { c.sel.Guests = g }

// SetProperty switches the selection to another property and resets the
// in-progress pick.
func (c *CalendarSelection) SetProperty(propertyID uuid.UUID) {
	guests := c.sel.Guests
	c.state = SelectionEmpty
	c.sel = Selection{PropertyID: propertyID, Guests: guests}
}

func (c *CalendarSelection) Reset() {
	c.SetProperty(c.sel.PropertyID)
}

// Range returns the completed range, if any.
func (c *CalendarSelection) Range() (domain.DateRange, bool) {
	if c.state != SelectionComplete {
		return domain.DateRange{}, false
	}
	r, err := domain.NewDateRange(c.sel.CheckIn, c.sel.CheckOut)
	if err != nil {
		return domain.DateRange{}, false
	}
	return r, true
}

// Pick handles one calendar click. Past dates are always rejected. From a
// completed selection a new click re-enters the cycle with the clicked date
// as the new check-in.
func (c *CalendarSelection) Pick(date time.Time) error {
	day := domain.Day(date)
	if day.Before(domain.Day(c.now())) {
		return ErrPastDate
	}

	if c.state == SelectionAwaitingCheckout && day.After(c.sel.CheckIn) {
		candidate := domain.DateRange{Start: c.sel.CheckIn, End: day}
		if !c.store.IsRangeAvailable(c.sel.PropertyID, candidate) {
			// Reject rather than clamp; the caller tells the user and the
			// check-in stays where it was.
			return ErrRangeUnavailable
		}
		c.sel.CheckOut = day
		c.state = SelectionComplete
		return nil
	}

	// Fresh check-in: from Empty, from Complete, or restarting an
	// in-progress range with an earlier date.
	if c.store.IsDateOccupied(c.sel.PropertyID, day) {
		return ErrDateOccupied
	}
	c.sel.CheckIn = day
	c.sel.CheckOut = time.Time{}
	c.state = SelectionAwaitingCheckout
	return nil
}
