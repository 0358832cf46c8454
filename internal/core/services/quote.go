package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/casamar/booking-api/internal/core/domain"
)

type QuoteRequest struct {
	PropertyID string             `json:"propertyId"`
	CheckIn    string             `json:"checkIn"`
	CheckOut   string             `json:"checkOut"`
	Guests     domain.GuestCounts `json:"guests"`
}

// Quote runs the candidate dates through the same two-step selection rules
// the calendar enforces, then prices the result. Field problems come back as
// domain.FieldErrors; a span crossing a reserved date comes back as
// domain.ErrConflict.
func (s *BookingService) Quote(ctx context.Context, req QuoteRequest) (*domain.Quote, error) {
	if !s.store.Loaded() {
		return nil, domain.ErrDataUnavailable
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, domain.FieldErrors{"propertyId": "must be a valid property id"}
	}

	checkIn, err := domain.ParseDate(req.CheckIn)
	if err != nil {
		return nil, domain.FieldErrors{"checkIn": "must be a valid date (YYYY-MM-DD)"}
	}
	checkOut, err := domain.ParseDate(req.CheckOut)
	if err != nil {
		return nil, domain.FieldErrors{"checkOut": "must be a valid date (YYYY-MM-DD)"}
	}

	if req.Guests.HasNegative() {
		return nil, domain.FieldErrors{"guests": "guest counts must not be negative"}
	}

	selection := NewCalendarSelection(s.store, propertyID)

	if err := selection.Pick(checkIn); err != nil {
		return nil, domain.FieldErrors{"checkIn": err.Error()}
	}
	if err := selection.Pick(checkOut); err != nil {
		if errors.Is(err, ErrRangeUnavailable) {
			return nil, fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return nil, domain.FieldErrors{"checkOut": err.Error()}
	}

	dateRange, ok := selection.Range()
	if !ok {
		// A second pick at or before the first restarts the range instead of
		// completing it.
		return nil, domain.FieldErrors{"checkOut": "must be after the check-in date"}
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}

	if err := CheckCapacity(property, req.Guests); err != nil {
		return nil, err
	}

	quote := BuildQuote(property, dateRange)
	return &quote, nil
}
