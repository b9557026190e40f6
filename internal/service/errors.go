package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrScenarioNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "scenario")
}

// ErrBackendUnavailable reports a storage failure. The operation may be retried.
type ErrBackendUnavailable struct {
	error
	cause error
}

func NewErrBackendUnavailable(operation string, cause error) *ErrBackendUnavailable {
	return &ErrBackendUnavailable{
		error: fmt.Errorf("storage backend unavailable during %s: %w", operation, cause),
		cause: cause,
	}
}

func (e *ErrBackendUnavailable) Unwrap() error {
	return e.cause
}

type ErrUnsupportedFormat struct {
	error
}

func NewErrUnsupportedFormat(format string) *ErrUnsupportedFormat {
	return &ErrUnsupportedFormat{fmt.Errorf("unsupported export format: %s", format)}
}
