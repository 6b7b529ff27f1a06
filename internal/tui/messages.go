package tui

import "github.com/mfreeman/picbind/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ImageReadyMsg signals that the next image has been taken from the cache.
// Record is the zero record when the cache was empty; the view substitutes
// the placeholder.
type ImageReadyMsg struct {
	Record      domain.ImageRecord
	Placeholder bool
}

// AssignDoneMsg signals the result of an assign operation
type AssignDoneMsg struct {
	Recipient string
	Outcome   domain.AssignOutcome
}

// RemoveDoneMsg signals that a reference was removed from a group
type RemoveDoneMsg struct {
	Recipient string
}

// ClearedMsg signals that all assignments were discarded
type ClearedMsg struct{}

// ClearStatusMsg clears the transient status line
type ClearStatusMsg struct{}
