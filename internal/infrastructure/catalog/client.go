package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/scoopscore/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client fetches scraped catalog snapshots over HTTP. One snapshot per
// category, served as a JSON array of raw product records.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	paths       map[domain.Category]string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new catalog client. paths maps each category to its
// snapshot path under baseURL, e.g. "/catalogs/protein.json".
func NewClient(baseURL string, paths map[domain.Category]string) *Client {
	// The snapshot host is a static file origin; one request per second with
	// a small burst is plenty for cache-miss refreshes.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		paths:       paths,
		rateLimiter: limiter,
	}
}

// SetDebug enables request/response logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// FetchCatalog downloads and decodes the raw product snapshot for a
// category. Individual malformed records decode tolerantly; only a payload
// that is not a JSON array at all fails.
func (c *Client) FetchCatalog(ctx context.Context, category domain.Category) ([]domain.RawProduct, error) {
	path, ok := c.paths[category]
	if !ok {
		return nil, domain.ErrInvalidCategory
	}
	reqURL := c.baseURL + path

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[CATALOG] status %d for %s (attempt %d)", resp.StatusCode, reqURL, attempt)
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			if resp.StatusCode == http.StatusNotFound {
				catalogFetches.WithLabelValues(string(category), "error").Inc()
				return nil, lastErr
			}
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var products []domain.RawProduct
		if err := json.Unmarshal(body, &products); err != nil {
			catalogFetches.WithLabelValues(string(category), "decode_error").Inc()
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}

		if c.debug {
			log.Printf("[CATALOG] fetched %d %s records", len(products), category)
		}
		catalogFetches.WithLabelValues(string(category), "success").Inc()
		return products, nil
	}

	catalogFetches.WithLabelValues(string(category), "error").Inc()
	return nil, lastErr
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ScoopScore/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// exponentialBackoff returns the wait before retry n: 500ms, 1s, 2s.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}
