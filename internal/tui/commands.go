package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfreeman/picbind/internal/domain"
	"github.com/mfreeman/picbind/internal/service"
)

// Command factories for async operations

// statusTTL is how long a transient status message stays visible
const statusTTL = 4 * time.Second

// TakeNextCmd pulls the next image from the prefetch cache. An empty cache
// is not an error: the view substitutes the placeholder.
func TakeNextCmd(pf *service.Prefetcher) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		rec, err := pf.TakeNext(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNoImageAvailable) {
				return ImageReadyMsg{Placeholder: true}
			}
			return ErrMsg{Err: err, Context: "loading image"}
		}
		return ImageReadyMsg{Record: rec}
	}
}

// AssignCmd assigns reference to recipient
func AssignCmd(svc *service.AssignmentService, recipient, reference string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := svc.Assign(recipient, reference)
		if err != nil {
			return ErrMsg{Err: err, Context: "assigning image"}
		}
		return AssignDoneMsg{Recipient: domain.NormalizeRecipient(recipient), Outcome: outcome}
	}
}

// RemoveCmd removes the reference at position from recipient's group.
// Position must come from a fresh enumeration.
func RemoveCmd(svc *service.AssignmentService, recipient string, position int) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Remove(recipient, position); err != nil {
			return ErrMsg{Err: err, Context: "removing image"}
		}
		return RemoveDoneMsg{Recipient: recipient}
	}
}

// ClearAllCmd discards every assignment. Only issued after the operator
// confirms.
func ClearAllCmd(svc *service.AssignmentService) tea.Cmd {
	return func() tea.Msg {
		if err := svc.ClearAll(); err != nil {
			return ErrMsg{Err: err, Context: "clearing assignments"}
		}
		return ClearedMsg{}
	}
}

// ClearStatusCmd schedules the status line to clear
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
