package gateway

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jrsteele09/billing-console/internal/utils"
)

const networkErrorPrefix = "Network error: "

// APIError is returned for every failed gateway call: non-2xx responses carry the HTTP status
// and the decoded error body, transport failures carry neither.
type APIError struct {
	Message string
	Status  *int
	Payload any   // decoded JSON error body, nil when absent or not JSON
	Cause   error // transport failure, if any
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

func (e *APIError) HasStatus() bool {
	return e.Status != nil
}

// StatusCode returns the HTTP status, or 0 for transport failures.
func (e *APIError) StatusCode() int {
	return utils.ValueOr(e.Status, 0)
}

// PayloadMessage returns the "message" field of the error body when it is a non-empty string.
func (e *APIError) PayloadMessage() (string, bool) {
	body, ok := e.Payload.(map[string]any)
	if !ok {
		return "", false
	}
	msg, ok := body["message"].(string)
	return msg, ok && msg != ""
}

// IsNetworkError reports whether err is a gateway transport failure.
func IsNetworkError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && !apiErr.HasStatus() && strings.HasPrefix(apiErr.Message, networkErrorPrefix)
}

// IsUnauthorized reports whether err is a gateway 401.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// StatusOf returns the HTTP status carried by a gateway error, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode()
	}
	return 0
}

func networkError(err error) *APIError {
	msg := "Unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &APIError{Message: networkErrorPrefix + msg, Cause: err}
}
