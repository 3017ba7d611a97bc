package errors

import (
	"fmt"
)

var (
	ErrNotFound      = fmt.Errorf("not found")
	ErrInvalidInput  = fmt.Errorf("invalid input")
	ErrInvalidStatus = fmt.Errorf("invalid status")
	ErrNetwork       = fmt.Errorf("network error")
	ErrFounderLookup = fmt.Errorf("founder lookup failed")
)

// NetworkError reports a failed company list fetch. StatusCode is zero when
// the transport itself failed.
type NetworkError struct {
	StatusCode int
	Err        error
}

func (n *NetworkError) Error() string {
	if n.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", ErrNetwork, n.StatusCode)
	}
	return fmt.Sprintf("%s: %v", ErrNetwork, n.Err)
}

func (n *NetworkError) Unwrap() []error {
	if n.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, n.Err}
}
