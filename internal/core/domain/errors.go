package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNoValidFields = errors.New("no valid fields to update")

// ValidationError aggregates every failing field of a payload so a client
// sees all format problems in one round trip, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + joinFields(e.Fields)
}

// ConflictError carries the fields that violate a uniqueness invariant.
type ConflictError struct {
	Fields map[string]string
}

func (e *ConflictError) Error() string {
	return "conflict: " + joinFields(e.Fields)
}

func joinFields(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
