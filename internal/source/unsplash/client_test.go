package unsplash

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mfreeman/picbind/internal/domain"
	"github.com/mfreeman/picbind/internal/log"
)

const searchFixture = `{
  "total": 2,
  "total_pages": 1,
  "results": [
    {
      "id": "abc",
      "urls": {"regular": "https://images.unsplash.com/photo-1?w=1080"},
      "user": {"name": "Jane Doe", "links": {"html": "https://unsplash.com/@jane"}}
    },
    {
      "id": "def",
      "urls": {"regular": "https://images.unsplash.com/photo-2?w=1080"},
      "user": {"name": "John Roe", "links": {"html": "https://unsplash.com/@john"}}
    }
  ]
}`

func TestClient_Search(t *testing.T) {
	var gotAuth, gotQuery, gotPerPage, gotOrientation string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/photos" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		gotPerPage = r.URL.Query().Get("per_page")
		gotOrientation = r.URL.Query().Get("orientation")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key", log.NullLogger())
	records, err := c.Search(context.Background(), "nature", 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if gotAuth != "Client-ID test-key" {
		t.Errorf("expected Client-ID auth header, got %q", gotAuth)
	}
	if gotQuery != "nature" || gotPerPage != "20" || gotOrientation != "landscape" {
		t.Errorf("unexpected query params: query=%q per_page=%q orientation=%q", gotQuery, gotPerPage, gotOrientation)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Reference != "https://images.unsplash.com/photo-1?w=1080" {
		t.Errorf("unexpected reference: %q", records[0].Reference)
	}
	if records[0].Credit == nil || records[0].Credit.DisplayName != "Jane Doe" {
		t.Errorf("unexpected credit: %+v", records[0].Credit)
	}
	wantLink := "https://unsplash.com/@jane?utm_source=Picbind&utm_medium=referral"
	if records[0].Credit.ProfileLink != wantLink {
		t.Errorf("expected referral link %q, got %q", wantLink, records[0].Credit.ProfileLink)
	}
}

func TestClient_SearchEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"total":0,"total_pages":0,"results":[]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key", log.NullLogger())
	records, err := c.Search(context.Background(), "nothing", 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected zero records, got %d", len(records))
	}
}

func TestClient_SearchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"errors":["Rate Limit Exceeded"]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key", log.NullLogger())
	if _, err := c.Search(context.Background(), "nature", 20); !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestClient_SearchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	c := NewClient(server.URL, "test-key", log.NullLogger())
	if _, err := c.Search(context.Background(), "nature", 20); !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestMapPhotos_DropsMissingURL(t *testing.T) {
	records := MapPhotos([]photo{
		{URLs: photoURLs{Regular: "https://images.unsplash.com/photo-1"}, User: photoUser{Name: "A"}},
		{URLs: photoURLs{}, User: photoUser{Name: "B"}},
	})
	if len(records) != 1 {
		t.Fatalf("expected the URL-less photo dropped, got %d records", len(records))
	}
}
