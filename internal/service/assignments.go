package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/mfreeman/picbind/internal/domain"
)

// StorageKey is the fixed key the whole assignment mapping is persisted
// under. Bump the suffix on breaking format changes.
const StorageKey = "assignments.v1"

// storedAssignments is the persisted JSON shape: recipient -> ordered refs.
type storedAssignments struct {
	Recipients map[string][]string `json:"recipients"`
}

// AssignmentService is the authoritative recipient->images mapping. Every
// mutation re-reads the persisted state, applies the change and writes the
// whole mapping back under one mutex, so overlapping calls cannot lose
// updates.
type AssignmentService struct {
	kv     domain.KVStore
	logger *slog.Logger

	mu sync.Mutex // Serializes read-modify-write cycles
}

// NewAssignmentService creates an assignment service backed by kv.
func NewAssignmentService(kv domain.KVStore, logger *slog.Logger) *AssignmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssignmentService{kv: kv, logger: logger}
}

// load reads the persisted mapping. An absent key means a genuinely empty
// store; an unparsable value is logged and treated as empty, never fatal.
func (s *AssignmentService) load() map[string][]string {
	raw, ok := s.kv.Read(StorageKey)
	if !ok {
		return make(map[string][]string)
	}

	var stored storedAssignments
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("persisted assignments unparsable, starting empty", "error", err)
		return make(map[string][]string)
	}
	if stored.Recipients == nil {
		return make(map[string][]string)
	}
	return stored.Recipients
}

// save persists the full mapping.
func (s *AssignmentService) save(recipients map[string][]string) error {
	data, err := json.Marshal(storedAssignments{Recipients: recipients})
	if err != nil {
		return fmt.Errorf("failed to encode assignments: %w", err)
	}
	return s.kv.Write(StorageKey, string(data))
}

// Assign records reference against the normalized recipient. A reference a
// recipient already holds is reported as OutcomeAlreadyAssigned with no
// mutation; otherwise it is appended (preserving assignment order) and the
// whole mapping is persisted.
func (s *AssignmentService) Assign(recipient, reference string) (domain.AssignOutcome, error) {
	key := domain.NormalizeRecipient(recipient)

	s.mu.Lock()
	defer s.mu.Unlock()

	recipients := s.load()
	for _, ref := range recipients[key] {
		if ref == reference {
			s.logger.Debug("duplicate assignment ignored", "recipient", key, "reference", reference)
			return domain.OutcomeAlreadyAssigned, nil
		}
	}

	recipients[key] = append(recipients[key], reference)
	if err := s.save(recipients); err != nil {
		return 0, err
	}

	s.logger.Info("image assigned", "recipient", key, "count", len(recipients[key]))
	return domain.OutcomeAssigned, nil
}

// Remove deletes the reference at position within the recipient's sequence.
// Positions are recipient-scoped and unstable across removals; callers must
// re-derive them from a fresh ListAll. An absent recipient or out-of-range
// position yields ErrNotFound. Removing the last reference removes the
// recipient key entirely.
func (s *AssignmentService) Remove(recipient string, position int) error {
	key := domain.NormalizeRecipient(recipient)

	s.mu.Lock()
	defer s.mu.Unlock()

	recipients := s.load()
	refs, ok := recipients[key]
	if !ok {
		return fmt.Errorf("recipient %q: %w", key, domain.ErrNotFound)
	}
	if position < 0 || position >= len(refs) {
		return fmt.Errorf("position %d of %d for %q: %w", position, len(refs), key, domain.ErrNotFound)
	}

	refs = append(refs[:position], refs[position+1:]...)
	if len(refs) == 0 {
		delete(recipients, key)
	} else {
		recipients[key] = refs
	}

	if err := s.save(recipients); err != nil {
		return err
	}

	s.logger.Info("image removed", "recipient", key, "remaining", len(refs))
	return nil
}

// ListAll enumerates the mapping as recipient groups, recipients sorted
// lexicographically so the order is stable for one snapshot.
func (s *AssignmentService) ListAll() []domain.Assignment {
	s.mu.Lock()
	recipients := s.load()
	s.mu.Unlock()

	keys := make([]string, 0, len(recipients))
	for key := range recipients {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]domain.Assignment, 0, len(keys))
	for _, key := range keys {
		refs := make([]string, len(recipients[key]))
		copy(refs, recipients[key])
		groups = append(groups, domain.Assignment{Recipient: key, References: refs})
	}
	return groups
}

// ClearAll discards the entire mapping. Irreversible; the presentation
// layer is responsible for confirming with the operator first.
func (s *AssignmentService) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(StorageKey); err != nil {
		return err
	}
	s.logger.Info("all assignments cleared")
	return nil
}
