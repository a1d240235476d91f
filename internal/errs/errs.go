package errs

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

// ResponseError is a domain error that carries the HTTP status it maps to.
// Message is already localized when it reaches the handler.
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string { return e.Message }

func NotFound(message string) *ResponseError {
	return &ResponseError{Status: http.StatusNotFound, Message: message}
}

func BadRequest(message string) *ResponseError {
	return &ResponseError{Status: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *ResponseError {
	return &ResponseError{Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *ResponseError {
	return &ResponseError{Status: http.StatusForbidden, Message: message}
}

// ValidationError reports schema failures keyed by json field name.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	if len(parts) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(parts, ", ")
}

// StatusOf returns the HTTP status for err, 500 for anything unrecognised.
func StatusOf(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Status
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
