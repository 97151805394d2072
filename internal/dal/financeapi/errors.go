package financeapi

import (
	"errors"
	"fmt"
)

// ErrDataShape marks upstream payloads that decoded but failed shape
// validation (missing embedded Item or Waiter, negative amounts).
var ErrDataShape = errors.New("unexpected upstream payload shape")

// HTTPError is a non-2xx response from the upstream API.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned %s", e.Status)
}
