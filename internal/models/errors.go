package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fakturabok/billing/internal/validation"
)

// ValidationError reports malformed input to entity construction or
// mutation: required fields, formats, or range violations.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for field, reason := range e.Violations {
		parts = append(parts, field+": "+reason)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, ", ")
}

// NotFoundError indicates a referenced identifier does not resolve.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// PreconditionError indicates required singleton configuration is absent.
// The operation failed before any state was mutated.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

// StateConflictError indicates an operation that would violate an
// ownership or lifecycle invariant, e.g. deleting a client that still
// owns projects or editing a settled earning.
type StateConflictError struct {
	Msg string
}

func (e *StateConflictError) Error() string { return e.Msg }

// SettlementError reports a failed settlement transition. Partial tells
// the caller whether any record was durably changed: when false nothing
// was persisted and retry is safe.
type SettlementError struct {
	Partial bool
	Err     error
}

func (e *SettlementError) Error() string {
	if e.Partial {
		return fmt.Sprintf("settlement partially applied: %v", e.Err)
	}
	return fmt.Sprintf("settlement failed, nothing changed: %v", e.Err)
}

func (e *SettlementError) Unwrap() error { return e.Err }
