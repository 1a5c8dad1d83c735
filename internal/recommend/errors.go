package recommend

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidData      = errors.New("invalid data")
)

// NotFoundKind names what a lookup failed to find
type NotFoundKind string

const (
	KindMovie NotFoundKind = "movie"
	KindUser  NotFoundKind = "user"
)

// NotFoundError reports a seed movie missing from the catalog or a user
// missing from the rating table
type NotFoundError struct {
	Kind NotFoundKind
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InsufficientDataError reports a rating table with too few users to pick a neighbor
type InsufficientDataError struct {
	Users int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least 2 users to find a similar user, have %d", e.Users)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// ValidationError reports catalog or rating input that cannot be scored
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidData
}
