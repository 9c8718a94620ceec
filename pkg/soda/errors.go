package soda

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error categories. Every error returned by this module wraps exactly one of them.
var (
	// ErrConfiguration marks caller misuse detected before any request is sent.
	ErrConfiguration = errors.New("configuration error")
	// ErrTransport marks a non-success HTTP status.
	ErrTransport = errors.New("transport error")
	// ErrDecode marks a body that could not be decoded per its content type.
	ErrDecode = errors.New("decode error")
	// ErrPagination marks a paging invariant violated by the server.
	ErrPagination = errors.New("pagination error")
)

// Configuration errors.
var (
	ErrConfigRequired      = fmt.Errorf("%w: config is required", ErrConfiguration)
	ErrDomainRequired      = fmt.Errorf("%w: a domain is required", ErrConfiguration)
	ErrInvalidTimeout      = fmt.Errorf("%w: timeout must be a non-negative duration", ErrConfiguration)
	ErrBasicAuthIncomplete = fmt.Errorf("%w: basic authentication requires a username AND password", ErrConfiguration)
	ErrConflictingAuth     = fmt.Errorf("%w: cannot use both basic authentication and OAuth 2.0, please use only one authentication method", ErrConfiguration)
	ErrMissingResource     = fmt.Errorf("%w: resource request is missing a dataset id or content type", ErrConfiguration)
	ErrUnsupportedPayload  = fmt.Errorf("%w: unrecognized payload, only maps, lists, structs and readers are supported", ErrConfiguration)
	ErrUnknownFilter       = fmt.Errorf("%w: unexpected discovery filter", ErrConfiguration)
	ErrInvalidFilterValue  = fmt.Errorf("%w: discovery filter accepts exactly one value", ErrConfiguration)
	ErrInvalidPageSize     = fmt.Errorf("%w: page size must be positive", ErrConfiguration)
	ErrUnsupportedMethod   = fmt.Errorf("%w: unknown request type, supported request types are GET, POST, PUT, DELETE", ErrConfiguration)
	ErrMissingFile         = fmt.Errorf("%w: a file with content is required", ErrConfiguration)
	ErrRequestRequired     = fmt.Errorf("%w: request is required", ErrConfiguration)
)

// Decode errors.
var (
	ErrUnknownResponseFormat = fmt.Errorf("%w: unknown response format", ErrDecode)
	ErrNotJSONList           = fmt.Errorf("%w: response is not a JSON list", ErrDecode)
	ErrNotJSONObject         = fmt.Errorf("%w: response is not a JSON object", ErrDecode)
	ErrUnsafeFilename        = fmt.Errorf("%w: attachment file name is not a plain file name", ErrDecode)
)

// Pagination errors.
var (
	ErrUnexpectedResultCount = fmt.Errorf("%w: unexpected number of results returned from endpoint", ErrPagination)
	ErrUnexpectedPage        = fmt.Errorf("%w: page did not decode to a list of rows", ErrPagination)
	ErrNoMoreItems           = errors.New("no more items")
)

// HTTPError is returned for responses whose status falls in the client or server
// error bands.
type HTTPError struct {
	StatusCode int    `json:"status_code"`
	Reason     string `json:"reason"`
	// Message is the server supplied detail, set only when it differs from Reason.
	Message string `json:"message,omitempty"`
	Body    []byte `json:"-"`
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	kind := "Client Error"
	if e.StatusCode >= http.StatusInternalServerError {
		kind = "Server Error"
	}

	msg := fmt.Sprintf("%d %s: %s", e.StatusCode, kind, e.Reason)
	if e.Message != "" {
		msg += ".\n\t" + e.Message
	}

	return msg
}

// Unwrap lets errors.Is match ErrTransport.
func (e *HTTPError) Unwrap() error {
	return ErrTransport
}

// CheckStatus applies the error policy to a response status. Codes in [400,500)
// and [500,600) produce an *HTTPError; every other code passes through.
func CheckStatus(statusCode int, reason string, body []byte) error {
	if statusCode < http.StatusBadRequest || statusCode >= 600 {
		return nil
	}

	httpErr := &HTTPError{
		StatusCode: statusCode,
		Reason:     reason,
		Body:       body,
	}

	if message := errorMessage(body); message != "" && !strings.EqualFold(message, reason) {
		httpErr.Message = message
	}

	return httpErr
}

// errorMessage extracts the "message" field of a JSON error body, if any.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}

	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return ""
	}

	return payload.Message
}

func statusIs(err error, code int) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}

	return false
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return statusIs(err, http.StatusForbidden)
}

// IsThrottled checks if the error is a 429 response.
func IsThrottled(err error) bool {
	return statusIs(err, http.StatusTooManyRequests)
}
