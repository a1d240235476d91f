package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/errs"
	"streamhouse/api/internal/i18n"
	"streamhouse/api/internal/logging"
	"streamhouse/api/internal/models/dtos"
)

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	}

	writeJSON(w, code, response)
}

// RespondList sends a success response carrying the unpaged total.
func RespondList(w http.ResponseWriter, initTime time.Time, message string, data any, total int64) {
	response := dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
		Total:        &total,
	}

	writeJSON(w, http.StatusOK, response)
}

// RespondError sends a standardized JSON error response.
func RespondError(w http.ResponseWriter, initTime time.Time, err error, message string, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	msg := message
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      msg,
		ResponseTime: GetResponseTime(initTime),
	}

	writeJSON(w, code, response)
}

// RespondAppError maps a service error onto its status. Unrecognised errors
// are logged and answered with a generic localized 500.
func RespondAppError(ctx context.Context, w http.ResponseWriter, initTime time.Time, err error) {
	code := errs.StatusOf(err)

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		ResponseTime: GetResponseTime(initTime),
	}

	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Message = ve.Message
		response.Errors = ve.Fields
	case code == http.StatusInternalServerError:
		logging.Error("Unhandled service error", "error", err)
		response.Message = i18n.Tc(ctx, "errors.internal")
	default:
		response.Message = err.Error()
	}

	writeJSON(w, code, response)
}

// writeJSON marshals data and writes it to the HTTP response.
func writeJSON(w http.ResponseWriter, code int, body dtos.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err)
	}
}
