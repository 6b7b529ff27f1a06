package service

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mfreeman/picbind/internal/domain"
)

// GalleryGroup is one renderable gallery row: a recipient, its image count
// and its ordered references.
type GalleryGroup struct {
	Recipient  string
	ImageCount int
	References []string
}

// ProjectGallery derives the grouped gallery view from a store snapshot.
// Pure projection: no state, recomputed after every mutation. Empty groups
// never occur (the store drops empty recipients). An empty result means the
// caller should render the "no assignments yet" affordance.
func ProjectGallery(snapshot []domain.Assignment) []GalleryGroup {
	groups := make([]GalleryGroup, 0, len(snapshot))
	for _, a := range snapshot {
		groups = append(groups, GalleryGroup{
			Recipient:  a.Recipient,
			ImageCount: len(a.References),
			References: a.References,
		})
	}
	return groups
}

// galleryIndex implements fuzzy.Source over group recipients.
type galleryIndex []GalleryGroup

func (g galleryIndex) String(i int) string { return g[i].Recipient }
func (g galleryIndex) Len() int            { return len(g) }

// FilterGallery narrows groups to those whose recipient fuzzy-matches
// query, best match first. An empty query returns groups unchanged.
func FilterGallery(groups []GalleryGroup, query string) []GalleryGroup {
	query = strings.TrimSpace(query)
	if query == "" {
		return groups
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), galleryIndex(groups))
	filtered := make([]GalleryGroup, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, groups[m.Index])
	}
	return filtered
}
