package domain

import "github.com/google/uuid"

// Property is a rentable unit from the catalog. Immutable for the duration
// of a session. All money fields are integer minor units (cents).
type Property struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	PricePerNightCents int64     `json:"pricePerNightCents" db:"price_per_night_cents"`
	CleaningFeeCents   int64     `json:"cleaningFeeCents" db:"cleaning_fee_cents"`
	Currency           string    `json:"currency" db:"currency"`
	MaxGuests          int       `json:"maxGuests" db:"max_guests"`
}

type GuestCounts struct {
	Adults   int `json:"adults" db:"adults"`
	Children int `json:"children" db:"children"`
	Infants  int `json:"infants" db:"infants"`
}

func (g GuestCounts) Total() int {
	return g.Adults + g.Children + g.Infants
}

// HasNegative reports whether any individual count is below zero; a negative
// count could otherwise cancel out another in Total.
func (g GuestCounts) HasNegative() bool {
	return g.Adults < 0 || g.Children < 0 || g.Infants < 0
}
