package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/casamar/booking-api/internal/core/domain"
	"github.com/casamar/booking-api/internal/core/ports"
)

type SubmissionState int

const (
	SubmissionIdle SubmissionState = iota
	SubmissionValidating
	SubmissionSubmitting
	SubmissionConfirmed
	SubmissionFailed
)

func (s SubmissionState) String() string {
	switch s {
	case SubmissionIdle:
		return "idle"
	case SubmissionValidating:
		return "validating"
	case SubmissionSubmitting:
		return "submitting"
	case SubmissionConfirmed:
		return "confirmed"
	case SubmissionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type FailureReason string

const (
	ReasonValidation FailureReason = "validation_error"
	ReasonCapacity   FailureReason = "capacity_exceeded"
	ReasonConflict   FailureReason = "conflict"
	ReasonNetwork    FailureReason = "network_error"
)

type SubmitRequest struct {
	// SessionID identifies the booking screen submitting the request, so a
	// double-click resubmits into the same workflow and is suppressed while
	// the first attempt is in flight. Unrelated sessions never block each
	// other.
	SessionID  string             `json:"sessionId"`
	PropertyID string             `json:"propertyId"`
	CheckIn    string             `json:"checkIn"`
	CheckOut   string             `json:"checkOut"`
	Guests     domain.GuestCounts `json:"guests"`
	Customer   domain.Customer    `json:"customer"`
}

type SubmitResponse struct {
	Accepted      bool               `json:"accepted"`
	ReservationID string             `json:"reservationId,omitempty"`
	Message       string             `json:"message"`
	Reason        FailureReason      `json:"reason,omitempty"`
	Fields        domain.FieldErrors `json:"fields,omitempty"`
}

// Cached copy of the default-horizon availability snapshot; dropped whenever
// a reservation is accepted so the next read is fresh.
const occupiedRangesCacheKey = "occupied_ranges"

const occupiedRangesCacheTTL = 5 * time.Minute

// BookingService runs the reservation submission workflow:
// Idle -> Validating -> Submitting -> Confirmed | Failed. Validation and the
// availability re-check happen before any submission attempt; the backing
// store's atomic check-and-reserve is the actual authority.
//
// Workflow state is tracked per session id, one entry per booking screen.
type BookingService struct {
	properties   ports.PropertyRepository
	reservations ports.ReservationRepository
	store        *AvailabilityStore
	publisher    ports.ChangePublisher
	notifier     ports.Notifier
	cache        *redis.Client
	validate     *validator.Validate

	mu     sync.Mutex
	states map[string]SubmissionState
}

func NewBookingService(
	properties ports.PropertyRepository,
	reservations ports.ReservationRepository,
	store *AvailabilityStore,
	publisher ports.ChangePublisher,
	notifier ports.Notifier,
	cache *redis.Client,
) *BookingService {
	return &BookingService{
		properties:   properties,
		reservations: reservations,
		store:        store,
		publisher:    publisher,
		notifier:     notifier,
		cache:        cache,
		validate:     validator.New(),
		states:       make(map[string]SubmissionState),
	}
}

// State reports the workflow state of one session. Unknown sessions are Idle.
func (s *BookingService) State(sessionID string) SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[sessionID]
}

// Cancel discards the session's workflow outcome and returns it to Idle. Not
// permitted while its submission is in flight: the request must resolve
// first.
func (s *BookingService) Cancel(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[sessionID] == SubmissionSubmitting {
		return domain.ErrSubmissionInFlight
	}
	delete(s.states, sessionID)
	return nil
}

// Submit runs one submission attempt. Business rejections come back as a
// response with Accepted=false and a Reason; the error return is reserved
// for re-entry (ErrSubmissionInFlight) and an unloaded availability store.
func (s *BookingService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	session := req.SessionID

	// Without a session id there is no identity to suppress re-submission
	// for; the request still runs its own full workflow.
	if session != "" {
		s.mu.Lock()
		if s.states[session] == SubmissionSubmitting {
			s.mu.Unlock()
			return nil, domain.ErrSubmissionInFlight
		}
		s.states[session] = SubmissionValidating
		s.mu.Unlock()
	}

	if !s.store.Loaded() {
		s.setState(session, SubmissionFailed)
		return nil, domain.ErrDataUnavailable
	}

	propertyID, dateRange, fields := s.validateRequest(req)
	if len(fields) > 0 {
		s.setState(session, SubmissionFailed)
		return &SubmitResponse{
			Accepted: false,
			Message:  "reservation request is invalid",
			Reason:   ReasonValidation,
			Fields:   fields,
		}, nil
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		s.setState(session, SubmissionFailed)
		if errors.Is(err, domain.ErrPropertyNotFound) {
			return &SubmitResponse{
				Accepted: false,
				Message:  "unknown property",
				Reason:   ReasonValidation,
				Fields:   domain.FieldErrors{"propertyId": "unknown property"},
			}, nil
		}
		return &SubmitResponse{
			Accepted: false,
			Message:  "could not load property details, please retry",
			Reason:   ReasonNetwork,
		}, nil
	}

	if err := CheckCapacity(property, req.Guests); err != nil {
		s.setState(session, SubmissionFailed)
		return &SubmitResponse{
			Accepted: false,
			Message:  "guest count exceeds the maximum for this property",
			Reason:   ReasonCapacity,
		}, nil
	}

	// Re-validate against the latest snapshot before going to the wire; the
	// snapshot may predate a reservation committed by another client.
	if !s.store.IsRangeAvailable(propertyID, dateRange) {
		s.setState(session, SubmissionFailed)
		return &SubmitResponse{
			Accepted: false,
			Message:  "the selected dates are no longer available",
			Reason:   ReasonConflict,
		}, nil
	}

	quote := BuildQuote(property, dateRange)

	reservation := &domain.Reservation{
		ID:         uuid.New(),
		PropertyID: propertyID,
		Range:      dateRange,
		Guests:     req.Guests,
		Customer:   req.Customer,
		TotalCents: quote.TotalCents,
		Status:     domain.ReservationConfirmed,
		CreatedAt:  time.Now().UTC(),
	}

	s.setState(session, SubmissionSubmitting)

	if err := s.reservations.Create(ctx, reservation); err != nil {
		s.setState(session, SubmissionFailed)

		if errors.Is(err, domain.ErrConflict) {
			// Another client won the race. Refresh so no stale "available"
			// date survives client-side.
			s.refreshStore(ctx)
			return &SubmitResponse{
				Accepted: false,
				Message:  "the selected dates were just reserved by someone else",
				Reason:   ReasonConflict,
			}, nil
		}
		return &SubmitResponse{
			Accepted: false,
			Message:  "submission failed, please try again",
			Reason:   ReasonNetwork,
		}, nil
	}

	s.afterAccepted(ctx, reservation)
	s.setState(session, SubmissionConfirmed)

	return &SubmitResponse{
		Accepted:      true,
		ReservationID: reservation.ID.String(),
		Message:       "reservation confirmed",
	}, nil
}

// Properties returns the read-only catalog of rentable units.
func (s *BookingService) Properties(ctx context.Context) ([]domain.Property, error) {
	return s.properties.List(ctx)
}

// Availability returns occupied ranges per property up to the horizon. The
// default horizon (zero until) is served through the Redis cache.
func (s *BookingService) Availability(ctx context.Context, until time.Time) (map[uuid.UUID][]domain.OccupiedRange, error) {
	cached := until.IsZero()
	if cached {
		until = DefaultHorizon()

		if payload, err := s.cache.Get(ctx, occupiedRangesCacheKey).Result(); err == nil {
			var out map[uuid.UUID][]domain.OccupiedRange
			unmarshalErr := json.Unmarshal([]byte(payload), &out)
			if unmarshalErr == nil {
				return out, nil
			}
			log.Printf("discarding corrupt availability cache entry: %v", unmarshalErr)
		}
	}

	ranges, err := s.reservations.OccupiedRanges(ctx, until)
	if err != nil {
		return nil, err
	}

	if cached {
		if payload, err := json.Marshal(ranges); err == nil {
			if err := s.cache.Set(ctx, occupiedRangesCacheKey, payload, occupiedRangesCacheTTL).Err(); err != nil {
				log.Printf("failed to cache availability: %v", err)
			}
		}
	}

	return ranges, nil
}

// DefaultHorizon bounds availability queries to one year ahead.
func DefaultHorizon() time.Time {
	return domain.Day(time.Now()).AddDate(1, 0, 0)
}

func (s *BookingService) setState(sessionID string, state SubmissionState) {
	if sessionID == "" {
		return
	}
	s.mu.Lock()
	s.states[sessionID] = state
	s.mu.Unlock()
}

func (s *BookingService) validateRequest(req SubmitRequest) (uuid.UUID, domain.DateRange, domain.FieldErrors) {
	fields := domain.FieldErrors{}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		fields["propertyId"] = "must be a valid property id"
	}

	var dateRange domain.DateRange
	checkIn, inErr := domain.ParseDate(req.CheckIn)
	if inErr != nil {
		fields["checkIn"] = "must be a valid date (YYYY-MM-DD)"
	}
	checkOut, outErr := domain.ParseDate(req.CheckOut)
	if outErr != nil {
		fields["checkOut"] = "must be a valid date (YYYY-MM-DD)"
	}
	if inErr == nil && outErr == nil {
		dateRange, err = domain.NewDateRange(checkIn, checkOut)
		if err != nil {
			fields["checkOut"] = "must be after the check-in date"
		} else if dateRange.Start.Before(domain.Day(time.Now())) {
			fields["checkIn"] = "must not be in the past"
		}
	}

	if req.Guests.HasNegative() {
		fields["guests"] = "guest counts must not be negative"
	} else if req.Guests.Total() < 1 {
		fields["guests"] = "at least one guest is required"
	}

	if err := s.validate.Struct(req.Customer); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[lowerFirst(fe.Field())] = validationMessage(fe)
			}
		} else {
			fields["customer"] = "invalid customer details"
		}
	}

	return propertyID, dateRange, fields
}

func (s *BookingService) refreshStore(ctx context.Context) {
	if err := s.store.Load(ctx, s.reservations, DefaultHorizon()); err != nil {
		log.Printf("failed to refresh availability after conflict: %v", err)
	}
}

// afterAccepted reconciles the accepted reservation into local state and
// fans it out. None of these steps can fail the reservation itself.
func (s *BookingService) afterAccepted(ctx context.Context, reservation *domain.Reservation) {
	change := domain.AvailabilityChange{
		ReservationID: reservation.ID,
		PropertyID:    reservation.PropertyID,
		Range:         reservation.Range,
		Op:            domain.ChangeAdd,
	}

	if err := s.store.ApplyChange(change); err != nil {
		log.Printf("failed to apply local availability change: %v", err)
	}

	if err := s.cache.Del(ctx, occupiedRangesCacheKey).Err(); err != nil {
		log.Printf("failed to invalidate availability cache: %v", err)
	}

	if err := s.publisher.Publish(ctx, change); err != nil {
		log.Printf("failed to publish availability change: %v", err)
	}

	if err := s.notifier.ReservationConfirmed(ctx, reservation); err != nil {
		log.Printf("confirmation notification failed for %s: %v", reservation.ID, err)
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
