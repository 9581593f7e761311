// Package precond evaluates HTTP conditional request headers against a
// resource validator. Evaluation is a pure function of the current tag
// and the client preconditions; it never touches request bodies and it
// assumes the caller has already resolved resource existence.
package precond

import (
	"errors"
	"strings"
)

// Outcome classifies what should happen to a conditional request.
type Outcome int

const (
	// Proceed means no precondition blocks the request.
	Proceed Outcome = iota
	// NotModified means If-None-Match matched the current validator.
	// Reads answer 304 Not Modified; writes treat this as a failed
	// precondition.
	NotModified
	// Failed means If-Match did not match the current validator.
	Failed
)

// ErrConflictingPreconditions is returned when a request carries both
// If-Match and If-None-Match. The combination is never meaningful here
// and is rejected before anything else is looked at.
var ErrConflictingPreconditions = errors.New("if-match and if-none-match are mutually exclusive")

// Normalize strips a weak-validator prefix and surrounding quotes from
// a client-supplied tag, so comparisons are strong regardless of how
// the client quoted the value.
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "W/")
	return strings.Trim(tag, `"`)
}

// Evaluate decides the outcome for a request addressing a resource
// whose validator is currentTag. Empty ifMatch or ifNoneMatch means
// the header was absent.
func Evaluate(currentTag, ifMatch, ifNoneMatch string) (Outcome, error) {
	if ifMatch != "" && ifNoneMatch != "" {
		return Proceed, ErrConflictingPreconditions
	}
	switch {
	case ifMatch != "":
		if Normalize(ifMatch) == currentTag {
			return Proceed, nil
		}
		return Failed, nil
	case ifNoneMatch != "":
		if Normalize(ifNoneMatch) == currentTag {
			return NotModified, nil
		}
		return Proceed, nil
	default:
		return Proceed, nil
	}
}
