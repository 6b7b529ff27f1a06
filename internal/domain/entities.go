package domain

import (
	"regexp"
	"strings"
)

// Credit identifies the photographer an image is attributed to.
type Credit struct {
	DisplayName string // Photographer display name
	ProfileLink string // Photographer profile URL
}

// ImageRecord is one normalized result from an image source.
// Immutable once produced; only the Reference survives assignment.
type ImageRecord struct {
	Reference string  // Image URL (opaque to the core)
	Credit    *Credit // nil when the source carries no attribution
}

// IsZero reports whether the record carries no image.
func (r ImageRecord) IsZero() bool {
	return r.Reference == ""
}

// Assignment is one recipient group: the ordered references assigned to it.
// References are unique within a group, oldest-first.
type Assignment struct {
	Recipient  string
	References []string
}

// AssignOutcome distinguishes a fresh assignment from a duplicate.
type AssignOutcome int

const (
	// OutcomeAssigned means the reference was appended and persisted.
	OutcomeAssigned AssignOutcome = iota
	// OutcomeAlreadyAssigned means the recipient already held the
	// reference; nothing was mutated. Informational, not an error.
	OutcomeAlreadyAssigned
)

// String returns a human-readable representation of the outcome.
func (o AssignOutcome) String() string {
	switch o {
	case OutcomeAssigned:
		return "assigned"
	case OutcomeAlreadyAssigned:
		return "already assigned"
	default:
		return "unknown"
	}
}

// recipientPattern checks syntactic email shape only (local "@" domain "." tld).
// Deliverability is out of scope.
var recipientPattern = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// NormalizeRecipient canonicalizes a recipient identifier. Two spellings
// that differ only in case or surrounding whitespace map to one key.
func NormalizeRecipient(recipient string) string {
	return strings.ToLower(strings.TrimSpace(recipient))
}

// ValidRecipient reports whether the normalized form of recipient is
// email-shaped.
func ValidRecipient(recipient string) bool {
	return recipientPattern.MatchString(NormalizeRecipient(recipient))
}
