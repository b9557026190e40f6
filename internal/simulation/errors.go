package simulation

import (
	"fmt"
	"strings"
)

// ErrInvalidInput carries the json names of every offending field.
type ErrInvalidInput struct {
	error
	Fields []string
}

func NewErrInvalidInput(fields []string, reason string) *ErrInvalidInput {
	return &ErrInvalidInput{
		error:  fmt.Errorf("invalid input: %s: %s", strings.Join(fields, ", "), reason),
		Fields: fields,
	}
}

type ErrUndefinedMetric struct {
	error
	Metric string
}

func NewErrUndefinedMetric(metric, reason string) *ErrUndefinedMetric {
	return &ErrUndefinedMetric{
		error:  fmt.Errorf("%s is undefined: %s", metric, reason),
		Metric: metric,
	}
}
