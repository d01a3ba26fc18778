package blogger

import (
	"errors"
	"fmt"
)

// The error classes callers need to tell apart.  Match with errors.Is
// against a *StatusError returned by the request layer.
var (
	ErrNotFound    = errors.New("blogger: not found")
	ErrRateLimited = errors.New("blogger: rate limited")
	ErrServer      = errors.New("blogger: server error")
	ErrAuth        = errors.New("blogger: authentication failed")
)

// StatusError is a non-2xx HTTP response from the publishing endpoint.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("blogger: unexpected HTTP response %s: %s", e.Status, e.URL)
}

// Is maps HTTP status codes onto the error classes, so
// errors.Is(err, ErrNotFound) works on anything the client returns.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == 404 || e.StatusCode == 410
	case ErrRateLimited:
		return e.StatusCode == 429
	case ErrAuth:
		return e.StatusCode == 401 || e.StatusCode == 403
	case ErrServer:
		return e.StatusCode >= 500
	}
	return false
}
