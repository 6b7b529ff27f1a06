package service

import (
	"fmt"

	"github.com/mfreeman/picbind/internal/domain"
)

// Viewer is the full-screen sequential image viewer: a fixed ordered
// sequence of references traversed cyclically. Ephemeral; every Open
// replaces the previous session.
type Viewer struct {
	sequence []string
	position int
	open     bool
}

// NewViewer creates a closed viewer.
func NewViewer() *Viewer {
	return &Viewer{}
}

// Open starts a session over sequence at start. Re-opening while open
// simply retargets the session. An empty sequence or out-of-bounds start
// yields ErrInvalidStart.
func (v *Viewer) Open(sequence []string, start int) error {
	if len(sequence) == 0 {
		return fmt.Errorf("empty sequence: %w", domain.ErrInvalidStart)
	}
	if start < 0 || start >= len(sequence) {
		return fmt.Errorf("start %d of %d: %w", start, len(sequence), domain.ErrInvalidStart)
	}

	v.sequence = make([]string, len(sequence))
	copy(v.sequence, sequence)
	v.position = start
	v.open = true
	return nil
}

// Next advances one position, wrapping from the end to the start.
func (v *Viewer) Next() error {
	if !v.open {
		return domain.ErrViewerClosed
	}
	v.position = (v.position + 1) % len(v.sequence)
	return nil
}

// Prev steps back one position, wrapping from the start to the end.
func (v *Viewer) Prev() error {
	if !v.open {
		return domain.ErrViewerClosed
	}
	v.position = (v.position - 1 + len(v.sequence)) % len(v.sequence)
	return nil
}

// Current returns the displayed reference, recomputed from the live
// position. The second return is false when the viewer is closed.
func (v *Viewer) Current() (string, bool) {
	if !v.open {
		return "", false
	}
	return v.sequence[v.position], true
}

// Position returns the current index and sequence length for the "n of m"
// indicator. Zeroes when closed.
func (v *Viewer) Position() (int, int) {
	if !v.open {
		return 0, 0
	}
	return v.position, len(v.sequence)
}

// IsOpen reports whether a session is active.
func (v *Viewer) IsOpen() bool {
	return v.open
}

// Close discards the session. Closing a closed viewer is a no-op.
func (v *Viewer) Close() {
	v.sequence = nil
	v.position = 0
	v.open = false
}
