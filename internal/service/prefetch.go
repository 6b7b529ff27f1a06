package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mfreeman/picbind/internal/domain"
)

const (
	// DefaultPageSize is the batch size for one remote search request.
	// Batching keeps the app inside the source's rate limits.
	DefaultPageSize = 20

	// DefaultLowWater is the cache level below which a refill is issued.
	DefaultLowWater = 6
)

// PlaceholderReference is shown when the cache is empty after a refill
// attempt.
const PlaceholderReference = "https://placehold.co/600x400?text=No+Image"

// PlaceholderCaption accompanies PlaceholderReference.
const PlaceholderCaption = "Temporary placeholder image"

// Prefetcher keeps a FIFO buffer of image records hydrated from an
// ImageSource so that showing the next image almost never waits on the
// network. At most one batched fetch is outstanding at a time.
type Prefetcher struct {
	source domain.ImageSource
	logger *slog.Logger

	query    string
	pageSize int
	lowWater int

	mu       sync.Mutex
	queue    []domain.ImageRecord
	fetching bool // In-flight latch; cleared unconditionally after each fetch
}

// NewPrefetcher creates a prefetch cache over source. pageSize and lowWater
// fall back to the defaults when non-positive.
func NewPrefetcher(source domain.ImageSource, query string, pageSize, lowWater int, logger *slog.Logger) *Prefetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if lowWater <= 0 {
		lowWater = DefaultLowWater
	}
	return &Prefetcher{
		source:   source,
		logger:   logger,
		query:    query,
		pageSize: pageSize,
		lowWater: lowWater,
	}
}

// Refill fetches one batch from the source and appends it to the cache.
// Redundant calls are cheap: it is a no-op while a fetch is in flight or
// while the cache still holds at least lowWater records. Fetch failures are
// logged and absorbed; the cache is left at its prior size and the next
// TakeNext will try again.
func (p *Prefetcher) Refill(ctx context.Context) {
	p.mu.Lock()
	if p.fetching || len(p.queue) >= p.lowWater {
		p.mu.Unlock()
		return
	}
	p.fetching = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.fetching = false
		p.mu.Unlock()
	}()

	p.logger.Debug("refilling image cache", "query", p.query, "pageSize", p.pageSize)

	records, err := p.source.Search(ctx, p.query, p.pageSize)
	if err != nil {
		p.logger.Warn("batch fetch failed", "error", err)
		return
	}

	p.mu.Lock()
	p.queue = append(p.queue, records...)
	size := len(p.queue)
	p.mu.Unlock()

	p.logger.Debug("image cache refilled", "added", len(records), "size", size)
}

// TakeNext removes and returns the oldest cached record. The cache first
// attempts to hydrate itself, so an empty result means the source genuinely
// produced nothing; that case is reported as ErrNoImageAvailable and the
// caller substitutes PlaceholderReference. After a successful take, another
// refill is kicked off in the background so the cache trends back to full.
func (p *Prefetcher) TakeNext(ctx context.Context) (domain.ImageRecord, error) {
	p.Refill(ctx)

	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		p.logger.Warn("image cache empty after refill attempt")
		return domain.ImageRecord{}, domain.ErrNoImageAvailable
	}
	next := p.queue[0]
	p.queue = p.queue[1:]
	p.mu.Unlock()

	// Keep filling proactively; the caller does not wait on this.
	go p.Refill(context.WithoutCancel(ctx))

	return next, nil
}

// Len returns the current cache size.
func (p *Prefetcher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// AttributionText renders the caption for a record: photographer credit for
// sourced images, the placeholder caption for the zero record.
func AttributionText(rec domain.ImageRecord) string {
	if rec.IsZero() {
		return PlaceholderCaption
	}
	if rec.Credit == nil || rec.Credit.DisplayName == "" {
		return ""
	}
	return "Photo by " + rec.Credit.DisplayName + " on Unsplash"
}
