package service

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreeman/picbind/internal/domain"
	"github.com/mfreeman/picbind/internal/log"
)

// fakeKV is an in-memory domain.KVStore for service tests.
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

var _ domain.KVStore = (*fakeKV)(nil)

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Read(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeKV) Write(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeKV) Close() error { return nil }

func newTestAssignments(t *testing.T) (*AssignmentService, *fakeKV) {
	t.Helper()
	kv := newFakeKV()
	return NewAssignmentService(kv, log.NullLogger()), kv
}

func TestAssignmentService_Scenario(t *testing.T) {
	svc, _ := newTestAssignments(t)

	require.Empty(t, svc.ListAll())

	outcome, err := svc.Assign("Bob@Example.com", "img1")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAssigned, outcome)

	groups := svc.ListAll()
	require.Len(t, groups, 1)
	assert.Equal(t, "bob@example.com", groups[0].Recipient)
	assert.Equal(t, []string{"img1"}, groups[0].References)

	outcome, err = svc.Assign("bob@example.com", "img2")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAssigned, outcome)

	groups = svc.ListAll()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"img1", "img2"}, groups[0].References)

	require.NoError(t, svc.Remove("bob@example.com", 0))
	groups = svc.ListAll()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"img2"}, groups[0].References)

	require.NoError(t, svc.Remove("bob@example.com", 0))
	assert.Empty(t, svc.ListAll(), "removing the last reference must drop the recipient")
}

func TestAssignmentService_DuplicateReference(t *testing.T) {
	svc, _ := newTestAssignments(t)

	outcome, err := svc.Assign("a@x.com", "img1")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAssigned, outcome)

	outcome, err = svc.Assign("a@x.com", "img1")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyAssigned, outcome)

	groups := svc.ListAll()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"img1"}, groups[0].References, "duplicate must not mutate")
}

func TestAssignmentService_CaseNormalization(t *testing.T) {
	svc, _ := newTestAssignments(t)

	_, err := svc.Assign("A@x.com", "img1")
	require.NoError(t, err)
	_, err = svc.Assign("  a@X.COM ", "img2")
	require.NoError(t, err)

	groups := svc.ListAll()
	require.Len(t, groups, 1, "case variants must collide on one key")
	assert.Equal(t, "a@x.com", groups[0].Recipient)
	assert.Equal(t, []string{"img1", "img2"}, groups[0].References)
}

func TestAssignmentService_RemoveNotFound(t *testing.T) {
	svc, _ := newTestAssignments(t)

	err := svc.Remove("missing@x.com", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Assign("a@x.com", "img1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove("a@x.com", 1), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Remove("a@x.com", -1), domain.ErrNotFound)
}

func TestAssignmentService_RemovePreservesOrder(t *testing.T) {
	svc, _ := newTestAssignments(t)

	for _, ref := range []string{"img1", "img2", "img3"} {
		_, err := svc.Assign("a@x.com", ref)
		require.NoError(t, err)
	}

	require.NoError(t, svc.Remove("a@x.com", 1))

	groups := svc.ListAll()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"img1", "img3"}, groups[0].References)
}

func TestAssignmentService_DrainByFreshEnumeration(t *testing.T) {
	svc, _ := newTestAssignments(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Assign("a@x.com", fmt.Sprintf("img%d", i))
		require.NoError(t, err)
	}

	// Always remove position 0 of a fresh enumeration
	for {
		groups := svc.ListAll()
		if len(groups) == 0 {
			break
		}
		require.NoError(t, svc.Remove(groups[0].Recipient, 0))
	}

	assert.Empty(t, svc.ListAll())
}

func TestAssignmentService_ClearAll(t *testing.T) {
	svc, kv := newTestAssignments(t)

	_, err := svc.Assign("a@x.com", "img1")
	require.NoError(t, err)
	_, err = svc.Assign("b@x.com", "img2")
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll())
	assert.Empty(t, svc.ListAll())

	_, ok := kv.Read(StorageKey)
	assert.False(t, ok, "persisted key must be gone")
}

func TestAssignmentService_CorruptPersistenceStartsEmpty(t *testing.T) {
	kv := newFakeKV()
	require.NoError(t, kv.Write(StorageKey, "{not json"))

	svc := NewAssignmentService(kv, log.NullLogger())
	assert.Empty(t, svc.ListAll(), "unparsable state must read as empty, not fail")

	// The store recovers on the next mutation
	_, err := svc.Assign("a@x.com", "img1")
	require.NoError(t, err)
	require.Len(t, svc.ListAll(), 1)
}

func TestAssignmentService_PersistsFullMappingPerMutation(t *testing.T) {
	svc, kv := newTestAssignments(t)

	_, err := svc.Assign("a@x.com", "img1")
	require.NoError(t, err)
	_, err = svc.Assign("b@x.com", "img2")
	require.NoError(t, err)

	raw, ok := kv.Read(StorageKey)
	require.True(t, ok)

	var stored struct {
		Recipients map[string][]string `json:"recipients"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, map[string][]string{
		"a@x.com": {"img1"},
		"b@x.com": {"img2"},
	}, stored.Recipients)
}

func TestAssignmentService_ListAllDeterministicOrder(t *testing.T) {
	svc, _ := newTestAssignments(t)

	for _, r := range []string{"c@x.com", "a@x.com", "b@x.com"} {
		_, err := svc.Assign(r, "img-"+r)
		require.NoError(t, err)
	}

	groups := svc.ListAll()
	require.Len(t, groups, 3)
	assert.Equal(t, "a@x.com", groups[0].Recipient)
	assert.Equal(t, "b@x.com", groups[1].Recipient)
	assert.Equal(t, "c@x.com", groups[2].Recipient)
}

func TestAssignmentService_ConcurrentAssignsNoLostUpdate(t *testing.T) {
	svc, _ := newTestAssignments(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Assign("a@x.com", fmt.Sprintf("img%d", i))
			if err != nil {
				t.Errorf("assign: %v", err)
			}
		}()
	}
	wg.Wait()

	groups := svc.ListAll()
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].References, n, "every concurrent append must survive")
}
