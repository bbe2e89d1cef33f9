package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks transport failures: refused connections, resets, DNS.
	ErrNetwork = errors.New("assistant backend unreachable")
	// ErrServer marks non-2xx responses and bodies that cannot be decoded.
	ErrServer = errors.New("assistant backend error")
)

// RequestError describes a failed round trip to one endpoint.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func networkError(op string, cause error) error {
	return &RequestError{Op: op, Err: fmt.Errorf("%w: %v", ErrNetwork, cause)}
}

func serverError(op string, status int, detail string) error {
	if detail == "" {
		return &RequestError{Op: op, StatusCode: status, Err: ErrServer}
	}
	return &RequestError{Op: op, StatusCode: status, Err: fmt.Errorf("%w: %s", ErrServer, detail)}
}
