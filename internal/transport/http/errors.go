package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sderosiaux/reservo-sub001/internal/app"
	"github.com/sderosiaux/reservo-sub001/internal/domain"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeValidationFailed    = "validation_failed"
	codeInvalidReason       = "invalid_rejection_reason"
	codeResourceNotFound    = "resource_not_found"
	codeReservationNotFound = "reservation_not_found"
	codeResourceExists      = "resource_already_exists"
	codeReservationExists   = "reservation_already_exists"
	codeCapacityExceeded    = "capacity_exceeded"
	codeResourceClosed      = "resource_closed"
	codeInvalidTransition   = "invalid_transition"
	codeMaintenanceMode     = "maintenance_mode"
	codeForbidden           = "forbidden"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeServiceError maps service errors onto the JSON error envelope.
// Validation failures wrap domain.ErrValidation, so matching uses errors.Is.
func writeServiceError(w http.ResponseWriter, err error) {
	var maintenance *app.MaintenanceError
	if errors.As(err, &maintenance) {
		msg := maintenance.Message
		if msg == "" {
			msg = "service temporarily unavailable"
		}
		writeError(w, http.StatusServiceUnavailable, codeMaintenanceMode, msg)
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
	case errors.Is(err, domain.ErrResourceNotFound):
		writeError(w, http.StatusNotFound, codeResourceNotFound, err.Error())
	case errors.Is(err, domain.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, codeReservationNotFound, err.Error())
	case errors.Is(err, domain.ErrResourceExists):
		writeError(w, http.StatusConflict, codeResourceExists, err.Error())
	case errors.Is(err, domain.ErrReservationExists):
		writeError(w, http.StatusConflict, codeReservationExists, err.Error())
	case errors.Is(err, domain.ErrCapacityExceeded):
		writeError(w, http.StatusConflict, codeCapacityExceeded, err.Error())
	case errors.Is(err, domain.ErrResourceClosed):
		writeError(w, http.StatusConflict, codeResourceClosed, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, codeInvalidTransition, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
