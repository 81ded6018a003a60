package remote

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthorized marks a 401/403 response. Callers treat it specially:
// the session is invalidated and the user is redirected to re-authenticate.
var ErrUnauthorized = errors.New("remote: unauthorized")

// StatusError is a reachable server answering with a non-2xx status.
// The response body is kept so it can be surfaced in a notification.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("remote returned status %d", e.Status)
	}
	return fmt.Sprintf("remote returned status %d: %s", e.Status, body)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match auth rejections.
func (e *StatusError) Unwrap() error {
	if e.Status == 401 || e.Status == 403 {
		return ErrUnauthorized
	}
	return nil
}

// IsStatus reports whether err is a response from a reachable server.
// A false return for a non-nil error means the network itself failed,
// which is the only case where the demo-credential fallback may engage.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
