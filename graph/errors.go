package graph

import (
	"errors"

	"github.com/moviegraph/moviegraph/library"
)

const (
	ErrorCodeNotFound = "NOT_FOUND"
	ErrorCodeInternal = "INTERNAL"
)

// notFoundMessages is the text clients see for each lookup failure.
var notFoundMessages = []struct {
	err     error
	message string
}{
	{library.ErrMovieNotFound, "Movie not found"},
	{library.ErrHeroNotFound, "Hero not found"},
}

// resolverError carries the GraphQL error extensions of a failed field.
type resolverError struct {
	error
	code    string
	message string
}

func (e *resolverError) Error() string {
	if e.message != "" {
		return e.message
	}

	return e.error.Error()
}

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": e.code,
	}
}

func (e *resolverError) Unwrap() error {
	return e.error
}

func wrapError(err error) error {
	if !errors.Is(err, library.ErrNotFound) {
		return &resolverError{error: err, code: ErrorCodeInternal}
	}

	for _, m := range notFoundMessages {
		if errors.Is(err, m.err) {
			return &resolverError{error: err, code: ErrorCodeNotFound, message: m.message}
		}
	}

	return &resolverError{error: err, code: ErrorCodeNotFound}
}
