package notifier

import (
	"context"
	"log"

	"github.com/casamar/booking-api/internal/core/domain"
)

// LogNotifier records confirmations in the server log. The site's contact
// mailer picks reservations up out-of-band; a missed notification never
// affects the reservation itself.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) ReservationConfirmed(ctx context.Context, reservation *domain.Reservation) error {
	log.Printf("reservation %s confirmed for %s %s <%s>, property %s, %s",
		reservation.ID,
		reservation.Customer.FirstName,
		reservation.Customer.LastName,
		reservation.Customer.Email,
		reservation.PropertyID,
		reservation.Range,
	)
	return nil
}
