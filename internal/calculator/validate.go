package calculator

import (
	"errors"
	"strings"
)

// ValidationResult is the outcome of the pre-commit item gate. It is a
// value, never a panic: the gate runs on every keystroke-driven
// recalculation and must not abort anything.
type ValidationResult int

const (
	// Valid means at least one fully-populated item exists and no row is
	// half filled in.
	Valid ValidationResult = iota

	// IncompleteRow means some row has exactly one of name and price
	// populated. Takes priority over every other outcome.
	IncompleteRow

	// NoValidItems means zero rows are fully populated. An all-blank list
	// lands here too.
	NoValidItems
)

// OK reports whether totals over the item set may be treated as final.
func (r ValidationResult) OK() bool {
	return r == Valid
}

// Message returns the user-facing validation message, empty when valid.
// The presentation layer displays it verbatim; it does not invent its own
// validation.
func (r ValidationResult) Message() string {
	switch r {
	case IncompleteRow:
		return "Each item needs both a name and a price."
	case NoValidItems:
		return "Add at least one item with a name and a price."
	default:
		return ""
	}
}

func (r ValidationResult) String() string {
	switch r {
	case Valid:
		return "valid"
	case IncompleteRow:
		return "incomplete_row"
	case NoValidItems:
		return "no_valid_items"
	default:
		return "unknown"
	}
}

// ValidateItems classifies an item set before its totals are committed.
// Precedence: any half-filled row wins over everything, then the
// no-valid-items check, then valid. Blank placeholder rows are skipped.
func ValidateItems(items []Item) ValidationResult {
	valid := 0
	for _, it := range items {
		if it.IsIncomplete() {
			return IncompleteRow
		}
		if it.IsComplete() {
			valid++
		}
	}
	if valid == 0 {
		return NoValidItems
	}
	return Valid
}

var (
	// ErrTooFewParticipants is returned when fewer than two distinct names
	// are entered; splitting a bill alone is meaningless.
	ErrTooFewParticipants = errors.New("at least two participants are required")

	// ErrEmptyParticipant is returned for a blank or whitespace-only name.
	ErrEmptyParticipant = errors.New("participant names cannot be empty")

	// ErrDuplicateParticipant is returned when the same name appears twice.
	// Matching is exact and case-sensitive.
	ErrDuplicateParticipant = errors.New("participant names must be unique")
)

// ValidateParticipants checks the session's participant set: every name
// non-empty after trimming, no exact duplicates, and at least two members.
func ValidateParticipants(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return ErrEmptyParticipant
		}
		if seen[trimmed] {
			return ErrDuplicateParticipant
		}
		seen[trimmed] = true
	}
	if len(seen) < 2 {
		return ErrTooFewParticipants
	}
	return nil
}
