package botapi

import (
	"errors"
	"fmt"
)

// APIError is returned for non-2xx responses and for 2xx responses that
// report ok:false.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
	NotOK      bool
}

func (e *APIError) Error() string {
	if e.NotOK {
		if e.Body == "" {
			return fmt.Sprintf("%s reported failure", e.Endpoint)
		}
		return fmt.Sprintf("%s reported failure: %s", e.Endpoint, e.Body)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsNotOK reports whether err came from an ok:false payload.
func IsNotOK(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotOK
}
