package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/casamar/booking-api/internal/core/domain"
	"github.com/casamar/booking-api/internal/core/services"
)

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) GetProperties(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	properties, err := h.svc.Properties(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "catalog unavailable, please retry")
		return
	}

	writeJSON(w, http.StatusOK, properties)
}

func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var until time.Time
	if raw := r.URL.Query().Get("until"); raw != "" {
		parsed, err := domain.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		until = parsed
	}

	ranges, err := h.svc.Availability(r.Context(), until)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "availability unavailable, please retry")
		return
	}

	writeJSON(w, http.StatusOK, ranges)
}

func (h *BookingHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req services.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	quote, err := h.svc.Quote(r.Context(), req)
	if err != nil {
		var fields domain.FieldErrors
		switch {
		case errors.As(err, &fields):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "quote request is invalid",
				"fields":  fields,
			})
		case errors.Is(err, domain.ErrConflict):
			writeError(w, http.StatusConflict, "the selected dates are not available")
		case errors.Is(err, domain.ErrCapacityExceeded):
			writeError(w, http.StatusUnprocessableEntity, "guest count exceeds the maximum for this property")
		case errors.Is(err, domain.ErrPropertyNotFound):
			writeError(w, http.StatusNotFound, "property not found")
		case errors.Is(err, domain.ErrDataUnavailable):
			writeError(w, http.StatusServiceUnavailable, "availability unavailable, please retry")
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

func (h *BookingHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req services.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	resp, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSubmissionInFlight):
			writeError(w, http.StatusTooManyRequests, "a submission is already in progress")
		case errors.Is(err, domain.ErrDataUnavailable):
			writeError(w, http.StatusServiceUnavailable, "availability unavailable, please retry")
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, statusForResponse(resp), resp)
}

func statusForResponse(resp *services.SubmitResponse) int {
	if resp.Accepted {
		return http.StatusCreated
	}

	switch resp.Reason {
	case services.ReasonConflict:
		return http.StatusConflict
	case services.ReasonNetwork:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already out; nothing left to report to the client.
		return
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
