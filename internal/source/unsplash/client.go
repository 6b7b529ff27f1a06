package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mfreeman/picbind/internal/domain"
)

const (
	// DefaultBaseURL is the public Unsplash API endpoint
	DefaultBaseURL = "https://api.unsplash.com"

	defaultTimeout = 30 * time.Second
	userAgent      = "Picbind/1.0"
)

// Client implements domain.ImageSource against the Unsplash search API
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Unsplash API client. baseURL is overridable for
// tests; pass DefaultBaseURL in production.
func NewClient(baseURL, accessKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:   baseURL,
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Search fetches one page of landscape photos for the query and normalizes
// them into image records.
func (c *Client) Search(ctx context.Context, query string, perPage int) ([]domain.ImageRecord, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("orientation", "landscape")
	params.Set("per_page", strconv.Itoa(perPage))

	reqURL := fmt.Sprintf("%s/search/photos?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("unsplash request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("unsplash request failed", "error", err)
		return nil, domain.ErrSourceUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unsplash request error", "status", resp.StatusCode, "body", string(body))
		return nil, domain.ErrSourceUnavailable
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapPhotos(parsed.Results), nil
}
