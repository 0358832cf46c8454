package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/casamar/booking-api/internal/core/domain"
	"github.com/casamar/booking-api/internal/core/services"
)

func TestBuildQuote(t *testing.T) {
	property := &domain.Property{
		ID:                 uuid.New(),
		Name:               "Casa Mar",
		PricePerNightCents: 1000,
		CleaningFeeCents:   500,
		Currency:           "EUR",
		MaxGuests:          6,
	}

	quote := services.BuildQuote(property, mustRange(t, date(2030, 7, 5), date(2030, 7, 8)))

	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, int64(3000), quote.SubtotalCents)
	assert.Equal(t, int64(500), quote.FixedFeeCents)
	assert.Equal(t, int64(3500), quote.TotalCents)
	assert.Equal(t, "EUR", quote.Currency)
}

func TestBuildQuote_FeeIsPerReservationNotPerNight(t *testing.T) {
	property := &domain.Property{PricePerNightCents: 120000, CleaningFeeCents: 7500, Currency: "EUR"}

	short := services.BuildQuote(property, mustRange(t, date(2030, 7, 5), date(2030, 7, 6)))
	long := services.BuildQuote(property, mustRange(t, date(2030, 7, 5), date(2030, 7, 15)))

	assert.Equal(t, short.FixedFeeCents, long.FixedFeeCents)
	assert.Equal(t, int64(120000+7500), short.TotalCents)
	assert.Equal(t, int64(10*120000+7500), long.TotalCents)
}

func TestCheckCapacity(t *testing.T) {
	property := &domain.Property{MaxGuests: 4}

	assert.NoError(t, services.CheckCapacity(property, domain.GuestCounts{Adults: 2, Children: 2}))
	assert.ErrorIs(t,
		services.CheckCapacity(property, domain.GuestCounts{Adults: 2, Children: 2, Infants: 1}),
		domain.ErrCapacityExceeded,
	)
}
