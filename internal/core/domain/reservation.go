package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

type Customer struct {
	FirstName       string `json:"firstName" db:"first_name" validate:"required"`
	LastName        string `json:"lastName" db:"last_name" validate:"required"`
	Email           string `json:"email" db:"email" validate:"required,email"`
	Phone           string `json:"phone" db:"phone" validate:"required"`
	Address         string `json:"address,omitempty" db:"address"`
	City            string `json:"city,omitempty" db:"city"`
	Country         string `json:"country,omitempty" db:"country"`
	PostalCode      string `json:"postalCode,omitempty" db:"postal_code"`
	SpecialRequests string `json:"specialRequests,omitempty" db:"special_requests"`
}

// Reservation is owned by the backing store once accepted; the client never
// mutates it after submission.
type Reservation struct {
	ID         uuid.UUID         `json:"id"`
	PropertyID uuid.UUID         `json:"propertyId"`
	Range      DateRange         `json:"range"`
	Guests     GuestCounts       `json:"guests"`
	Customer   Customer          `json:"customer"`
	TotalCents int64             `json:"totalCents"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// OccupiedRange is a confirmed reservation's footprint on a property's
// calendar. The reservation id is what makes change-feed delivery idempotent.
type OccupiedRange struct {
	ReservationID uuid.UUID `json:"reservationId"`
	PropertyID    uuid.UUID `json:"propertyId"`
	Range         DateRange `json:"range"`
}

type ChangeOp string

const (
	ChangeAdd    ChangeOp = "add"
	ChangeRemove ChangeOp = "remove"
)

// AvailabilityChange is one change-feed message. Delivery is at-least-once;
// consumers must tolerate duplicates.
type AvailabilityChange struct {
	ReservationID uuid.UUID `json:"reservationId"`
	PropertyID    uuid.UUID `json:"propertyId"`
	Range         DateRange `json:"range"`
	Op            ChangeOp  `json:"op"`
}
