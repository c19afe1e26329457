// Package tmdb is the catalog and artwork client for The Movie Database.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/palette"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultImageWidth   = "w500"

	defaultTimeout           = 15 * time.Second
	defaultRequestsPerSecond = 20
	maxRetries               = 3
	baseRetryDelay           = 500 * time.Millisecond

	// Consecutive failed requests before the circuit opens
	breakerTripThreshold = 5
	breakerOpenTimeout   = 30 * time.Second
)

// Options configures a Client. Zero values use the defaults above.
type Options struct {
	BaseURL           string
	ImageBaseURL      string
	ImageWidth        string
	Timeout           time.Duration
	RequestsPerSecond float64
	RetryDelay        time.Duration
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// Client implements domain.CatalogRepository and domain.ArtworkRepository
type Client struct {
	baseURL      string
	imageBaseURL string
	imageWidth   string
	apiKey       string
	retryDelay   time.Duration
	httpClient   *http.Client
	limiter      *rate.Limiter
	breaker      *gobreaker.CircuitBreaker[[]byte]
	logger       *slog.Logger
}

// NewClient creates a new TMDB API client
func NewClient(apiKey string, opts Options) *Client {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = DefaultImageBaseURL
	}
	if opts.ImageWidth == "" {
		opts.ImageWidth = DefaultImageWidth
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaultRequestsPerSecond
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = baseRetryDelay
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	logger := opts.Logger
	c := &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(opts.ImageBaseURL, "/"),
		imageWidth:   strings.Trim(opts.ImageWidth, "/"),
		apiKey:       apiKey,
		retryDelay:   opts.RetryDelay,
		httpClient:   opts.HTTPClient,
		limiter:      rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), int(opts.RequestsPerSecond)+1),
		logger:       logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "tmdb-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripThreshold
		},
		// A rejected key or an abandoned request says nothing about API health
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrUnauthorized) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return c
}

// doRequest performs a GET against the TMDB API through the circuit breaker.
// Includes retry logic with exponential backoff for 5xx and 429 responses.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doRequestWithRetry(ctx, path, query)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	return body, err
}

func (c *Client) doRequestWithRetry(ctx context.Context, path string, query url.Values) ([]byte, error) {
	// logQuery never carries the api key
	logQuery := query.Encode()

	signed := url.Values{}
	for k, v := range query {
		signed[k] = v
	}
	signed.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, signed.Encode())

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// Wait before retry (exponential backoff)
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1))
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "path", path)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		c.logger.Debug("tmdb request", "path", path, "query", logQuery, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Error("tmdb request failed", "path", path, "error", redact(err.Error(), c.apiKey))
			return nil, fmt.Errorf("%w: %s", domain.ErrCatalogUnavailable, redact(err.Error(), c.apiKey))
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return nil, domain.ErrUnauthorized
		}

		if resp.StatusCode == http.StatusTooManyRequests || (resp.StatusCode >= 500 && resp.StatusCode < 600) {
			lastErr = fmt.Errorf("%w: server error: %d - %s", domain.ErrCatalogUnavailable, resp.StatusCode, statusMessage(body))
			c.logger.Warn("tmdb server error, will retry",
				"status", resp.StatusCode,
				"attempt", attempt,
				"maxRetries", maxRetries,
				"path", path,
				"query", logQuery,
			)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			c.logger.Error("tmdb request error", "status", resp.StatusCode, "path", path, "message", statusMessage(body))
			return nil, fmt.Errorf("unexpected status code: %d - %s", resp.StatusCode, statusMessage(body))
		}

		return body, nil
	}

	c.logger.Error("tmdb request failed after retries",
		"error", lastErr,
		"path", path,
		"query", logQuery,
	)
	return nil, lastErr
}

// Discover returns one page of movies for the query
func (c *Client) Discover(ctx context.Context, q domain.DiscoverQuery) ([]domain.CatalogItem, error) {
	if q.Page < 1 {
		return nil, fmt.Errorf("invalid page %d: pages start at 1", q.Page)
	}

	query := url.Values{}
	if genres := q.Criteria.Genres(); len(genres) > 0 {
		ids := make([]string, len(genres))
		for i, g := range genres {
			ids[i] = strconv.Itoa(g)
		}
		query.Set("with_genres", strings.Join(ids, ","))
	}
	if q.Criteria.CompanyID > 0 {
		query.Set("with_companies", strconv.Itoa(q.Criteria.CompanyID))
	}
	if q.Criteria.ReleaseDateLTE != "" {
		query.Set("primary_release_date.lte", q.Criteria.ReleaseDateLTE)
	}
	query.Set("include_adult", "false")
	sort := q.Sort
	if sort == "" {
		sort = domain.DefaultSortOrder
	}
	query.Set("sort_by", string(sort))
	query.Set("page", strconv.Itoa(q.Page))

	return c.getPage(ctx, "/discover/movie", query)
}

// Popular returns the catalog's popular movies (first page)
func (c *Client) Popular(ctx context.Context) ([]domain.CatalogItem, error) {
	query := url.Values{}
	query.Set("include_adult", "false")
	return c.getPage(ctx, "/movie/popular", query)
}

func (c *Client) getPage(ctx context.Context, path string, query url.Values) ([]domain.CatalogItem, error) {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var resp PageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	return MapMovies(resp.Results), nil
}

// ArtworkURL builds the CDN url for an artwork path
func (c *Client) ArtworkURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s/%s%s", c.imageBaseURL, c.imageWidth, path)
}

// FetchArtwork downloads and decodes the image at the given artwork path.
// Load and decode failures wrap domain.ErrArtworkDecode.
func (c *Client) FetchArtwork(ctx context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, domain.ErrNoArtwork
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ArtworkURL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %w", domain.ErrArtworkDecode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: artwork status %d", domain.ErrArtworkDecode, resp.StatusCode)
	}

	return palette.Decode(resp.Body)
}

// statusMessage extracts TMDB's status_message from an error body
func statusMessage(body []byte) string {
	var status StatusResponse
	if err := json.Unmarshal(body, &status); err == nil && status.StatusMessage != "" {
		return status.StatusMessage
	}
	const maxLen = 200
	if len(body) > maxLen {
		return string(body[:maxLen])
	}
	return string(body)
}

// redact strips the api key from messages that embed the request url
func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "REDACTED")
}
