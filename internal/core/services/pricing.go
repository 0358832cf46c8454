package services

import (
	"github.com/casamar/booking-api/internal/core/domain"
)

// BuildQuote derives the price breakdown for a validated range. Pure: no
// rounding can occur since money is integer cents and nights are whole days.
// The cleaning fee is flat per reservation, not per night.
func BuildQuote(p *domain.Property, r domain.DateRange) domain.Quote {
	nights := r.Nights()
	subtotal := int64(nights) * p.PricePerNightCents

	return domain.Quote{
		Nights:        nights,
		SubtotalCents: subtotal,
		FixedFeeCents: p.CleaningFeeCents,
		TotalCents:    subtotal + p.CleaningFeeCents,
		Currency:      p.Currency,
	}
}

// CheckCapacity is the precondition for showing a quote as bookable.
func CheckCapacity(p *domain.Property, g domain.GuestCounts) error {
	if g.Total() > p.MaxGuests {
		return domain.ErrCapacityExceeded
	}
	return nil
}
