package apihttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// StatusError carries a non-success HTTP status together with the structured
// body the server returned.
type StatusError struct {
	Status int
	Body   json.RawMessage
}

func (e *StatusError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("transport failure: %s", string(e.Body))
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Status, string(e.Body))
}

// IsConflict reports whether err is a 409 response, which reconciliation
// treats as "already exists" rather than a failure.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsTransportFailure reports whether err represents no response at all
// (DNS failure, connection refused, timeout).
func IsTransportFailure(err error) bool {
	return hasStatus(err, 0)
}

func hasStatus(err error, status int) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status == status
	}
	return false
}
