package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Messages shown to the user for each failure class.
const (
	FallbackMessage  = "An error occurred."
	TransportMessage = "An unexpected error occurred. Please try again."
	NoTokenMessage   = "You must be logged in to access this feature."
)

// ErrNoToken is returned before any request is sent when a call needs a
// bearer token and none is held.
var ErrNoToken = errors.New("no access token")

// RejectedError is a non-2xx answer from the backend.
type RejectedError struct {
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend rejected request: status %d", e.Status)
	}
	return fmt.Sprintf("backend rejected request: status %d: %s", e.Status, e.Detail)
}

// TransportError means the request did not complete or its answer could
// not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage maps an error from this package to the text a screen shows.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoToken) {
		return NoTokenMessage
	}
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		if rejected.Detail != "" {
			return rejected.Detail
		}
		return FallbackMessage
	}
	return TransportMessage
}

// parseDetail extracts the "detail" member of an error body. FastAPI sends
// either a string or a list of validation errors carrying "msg".
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, item := range list {
			if m := strings.TrimSpace(item.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
