package loader

import (
	"errors"
	"fmt"
)

// LoadError reports a resource that could not be fetched or parsed.
// It is the only error kind the data layer produces.
type LoadError struct {
	// Path is the resource path relative to the data root.
	Path string
	// Status is the transport status code when the source reported one, else 0.
	Status int
	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to load %s: status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is, or wraps, a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// StatusError is returned by sources whose transport reports a non-success status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

func newLoadError(path string, err error) *LoadError {
	le := &LoadError{Path: path, Err: err}
	var se *StatusError
	if errors.As(err, &se) {
		le.Status = se.Code
	}
	return le
}
