package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
	// ErrUnauthorized will throw if the caller is not authenticated
	ErrUnauthorized = errors.New("user not authenticated")
	// ErrForbidden will throw if the caller may not touch the item
	ErrForbidden = errors.New("forbidden")
	// ErrCacheMiss is returned by cache implementations when the key is absent
	ErrCacheMiss = errors.New("cache miss")
)

// ValidationError reports an input field that failed a rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InternalError wraps an unexpected persistence or runtime fault so that the
// transport layer can answer with a uniform shape while keeping the cause.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrInternalServerError) match any InternalError.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternalServerError
}

// Internal wraps err unless it already belongs to the client-facing taxonomy.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var ie *InternalError
	switch {
	case errors.As(err, &ve), errors.As(err, &ie):
		return err
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrBadParamInput),
		errors.Is(err, ErrForbidden):
		return err
	}
	return &InternalError{Err: err}
}
