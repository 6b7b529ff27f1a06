// Package picsum provides an offline image source that synthesizes
// picsum.photos references from a counter. It needs no credentials and
// never fails, which makes it the default demo source.
package picsum

import (
	"context"
	"fmt"
	"sync"

	"github.com/mfreeman/picbind/internal/domain"
)

const (
	defaultWidth  = 600
	defaultHeight = 400
)

// Source implements domain.ImageSource without network access. Each call
// hands out the next run of seeded picsum URLs; seeds never repeat, so
// references stay unique across batches.
type Source struct {
	mu   sync.Mutex
	next int
}

// NewSource creates a picsum source starting at seed 1.
func NewSource() *Source {
	return &Source{next: 1}
}

// Search returns perPage synthesized references. The query is ignored;
// picsum serves random photos only.
func (s *Source) Search(_ context.Context, _ string, perPage int) ([]domain.ImageRecord, error) {
	if perPage <= 0 {
		return nil, nil
	}

	s.mu.Lock()
	start := s.next
	s.next += perPage
	s.mu.Unlock()

	records := make([]domain.ImageRecord, 0, perPage)
	for i := 0; i < perPage; i++ {
		records = append(records, domain.ImageRecord{
			Reference: fmt.Sprintf("https://picsum.photos/%d/%d?random=%d", defaultWidth, defaultHeight, start+i),
		})
	}
	return records, nil
}
