package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sderosiaux/reservo-sub001/internal/app"
	"github.com/sderosiaux/reservo-sub001/internal/domain"
	"github.com/sderosiaux/reservo-sub001/internal/obs"
)

// ReservationService is the minimal interface needed by the reservation
// endpoints.
type ReservationService interface {
	CreateReservation(ctx context.Context, in app.CreateReservationInput) (domain.Reservation, error)
	GetReservation(ctx context.Context, id string) (domain.Reservation, error)
	ConfirmReservation(ctx context.Context, id string) (domain.Reservation, error)
	RejectReservation(ctx context.Context, id string, reason domain.RejectionReason) (domain.Reservation, error)
	CancelReservation(ctx context.Context, id string) (domain.Reservation, error)
	ExpireReservation(ctx context.Context, id string) (domain.Reservation, error)
	ListReservationsByResource(ctx context.Context, resourceID string) ([]domain.Reservation, error)
}

// HandleReservations returns an HTTP handler for creating reservations and
// listing them per resource. New reservations always start out pending.
func HandleReservations(svc ReservationService, metrics *obs.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			resourceID := r.URL.Query().Get("resource_id")
			if resourceID == "" {
				writeError(w, http.StatusBadRequest, codeValidationFailed, "resource_id query parameter is required")
				return
			}
			reservations, err := svc.ListReservationsByResource(r.Context(), resourceID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			resp := make([]reservationResponse, 0, len(reservations))
			for _, rsv := range reservations {
				resp = append(resp, toReservationResponse(rsv))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createReservationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		rsv, err := svc.CreateReservation(r.Context(), app.CreateReservationInput{
			ID:         req.ID,
			ResourceID: req.ResourceID,
			ClientID:   req.ClientID,
			Quantity:   req.Quantity,
		})
		if err != nil {
			metrics.ObserveReservation("create", resultLabel(err))
			writeServiceError(w, err)
			return
		}
		metrics.ObserveReservation("create", "ok")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toReservationResponse(rsv))
	}
}

// HandleReservationByID returns an HTTP handler for reservation lookup and
// the confirm/reject/cancel/expire transitions.
func HandleReservationByID(svc ReservationService, metrics *obs.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := parseReservationPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if action == "" {
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			rsv, err := svc.GetReservation(r.Context(), id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toReservationResponse(rsv))
			return
		}

		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var rsv domain.Reservation
		var err error
		switch action {
		case "confirm":
			rsv, err = svc.ConfirmReservation(r.Context(), id)
		case "reject":
			var req rejectReservationRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if decErr := dec.Decode(&req); decErr != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			reason := domain.RejectionReason(req.Reason)
			if !reason.IsValid() {
				writeError(w, http.StatusBadRequest, codeInvalidReason, "unknown rejection reason")
				return
			}
			rsv, err = svc.RejectReservation(r.Context(), id, reason)
		case "cancel":
			rsv, err = svc.CancelReservation(r.Context(), id)
		case "expire":
			rsv, err = svc.ExpireReservation(r.Context(), id)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if err != nil {
			metrics.ObserveReservation(action, resultLabel(err))
			// A confirm attempt that hits a full or closed resource still
			// rejects the reservation; return it alongside the conflict.
			if action == "confirm" &&
				(errors.Is(err, domain.ErrCapacityExceeded) || errors.Is(err, domain.ErrResourceClosed)) {
				writeConflictWithReservation(w, err, rsv)
				return
			}
			writeServiceError(w, err)
			return
		}
		metrics.ObserveReservation(action, "ok")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toReservationResponse(rsv))
	}
}

func writeConflictWithReservation(w http.ResponseWriter, err error, rsv domain.Reservation) {
	code := codeCapacityExceeded
	if errors.Is(err, domain.ErrResourceClosed) {
		code = codeResourceClosed
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)
	_ = json.NewEncoder(w).Encode(struct {
		Error       string              `json:"error"`
		Code        string              `json:"code"`
		Reservation reservationResponse `json:"reservation"`
	}{
		Error:       err.Error(),
		Code:        code,
		Reservation: toReservationResponse(rsv),
	})
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrResourceClosed),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrReservationExists):
		return "conflict"
	default:
		return "error"
	}
}

// parseReservationPath extracts the reservation id and optional action from
// /reservations/{id} or /reservations/{id}/{action}.
func parseReservationPath(path string) (id, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 {
		return "", "", false
	}
	if parts[0] != "reservations" || parts[1] == "" {
		return "", "", false
	}
	if len(parts) == 3 {
		if parts[2] == "" {
			return "", "", false
		}
		return parts[1], parts[2], true
	}
	return parts[1], "", true
}

type createReservationRequest struct {
	ID         string `json:"id,omitempty"`
	ResourceID string `json:"resource_id"`
	ClientID   string `json:"client_id"`
	Quantity   int    `json:"quantity"`
}

type rejectReservationRequest struct {
	Reason string `json:"reason"`
}

type reservationResponse struct {
	ID              string    `json:"id"`
	ResourceID      string    `json:"resource_id"`
	ClientID        string    `json:"client_id"`
	Quantity        int       `json:"quantity"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	ServerTimestamp time.Time `json:"server_ts"`
	CreatedAt       time.Time `json:"created_at"`
}

func toReservationResponse(rsv domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:              rsv.ID.String(),
		ResourceID:      rsv.ResourceID.String(),
		ClientID:        rsv.ClientID.String(),
		Quantity:        rsv.Quantity.Int(),
		Status:          string(rsv.Status),
		RejectionReason: string(rsv.RejectionReason),
		ServerTimestamp: rsv.ServerTimestamp,
		CreatedAt:       rsv.CreatedAt,
	}
}
