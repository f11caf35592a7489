package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotAuthenticated is returned for protected calls made without a session.
	ErrNotAuthenticated = errors.New("Not authenticated")
	ErrTransport        = errors.New("network error")
)

// Error is a non-2xx response. Message is the server's detail when it sent one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// TransportError wraps connection-level failures (no response received).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() error {
	return ErrTransport
}

// StatusCode extracts the HTTP status of err, or 0 when err is not an *Error.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) || StatusCode(err) == http.StatusUnauthorized
}

// newError picks the message the way the dashboard did: server detail first,
// generic HTTP status text otherwise.
func newError(status int, body []byte) *Error {
	msg := detailMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return &Error{StatusCode: status, Message: msg}
}

func detailMessage(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		// request validation failures arrive as a list of {loc, msg}
		var items []struct {
			Loc []interface{} `json:"loc"`
			Msg string        `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 {
			parts := make([]string, 0, len(items))
			for _, it := range items {
				if len(it.Loc) > 0 {
					parts = append(parts, fmt.Sprintf("%v: %s", it.Loc[len(it.Loc)-1], it.Msg))
				} else {
					parts = append(parts, it.Msg)
				}
			}
			return strings.Join(parts, "; ")
		}
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
