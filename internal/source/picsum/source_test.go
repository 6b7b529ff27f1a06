package picsum

import (
	"context"
	"strings"
	"testing"
)

func TestSource_UniqueReferencesAcrossBatches(t *testing.T) {
	s := NewSource()

	seen := make(map[string]bool)
	for batch := 0; batch < 3; batch++ {
		records, err := s.Search(context.Background(), "ignored", 10)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(records) != 10 {
			t.Fatalf("expected 10 records, got %d", len(records))
		}
		for _, rec := range records {
			if seen[rec.Reference] {
				t.Fatalf("duplicate reference across batches: %s", rec.Reference)
			}
			seen[rec.Reference] = true
			if !strings.HasPrefix(rec.Reference, "https://picsum.photos/") {
				t.Fatalf("unexpected reference shape: %s", rec.Reference)
			}
			if rec.Credit != nil {
				t.Fatal("picsum records carry no attribution")
			}
		}
	}
}

func TestSource_NonPositivePageSize(t *testing.T) {
	s := NewSource()
	records, err := s.Search(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
