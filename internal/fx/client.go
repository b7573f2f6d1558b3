package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/infrastructure/metrics"
)

const (
	defaultBaseURL = "https://v6.exchangerate-api.com/v6"

	// Upstream rates move slowly; cache them for the same window the
	// upstream recommends for free-tier polling.
	rateCacheTTL = 30 * time.Minute

	maxResponseSize = 1 << 20
)

// HTTPDoer makes HTTP requests. It exists so tests can run without network
// calls.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// RateCache stores fetched rates keyed by currency pair.
type RateCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Client fetches base-to-target exchange rates from an exchangerate-api
// compatible upstream.
type Client struct {
	apiKey  string
	baseURL string
	httpc   HTTPDoer
	cache   RateCache
	logger  zerolog.Logger
}

// ClientOptions configures a Client. HTTPClient and Cache are optional.
type ClientOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient HTTPDoer
	Cache      RateCache
	Timeout    time.Duration
	Logger     zerolog.Logger
}

// NewClient creates a rate client.
func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpc = &http.Client{Timeout: timeout}
	}
	return &Client{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
		cache:   opts.Cache,
		logger:  opts.Logger,
	}
}

type pairResponse struct {
	ConversionRate float64 `json:"conversion_rate"`
}

// PairRate returns the base-to-target rate. An identical pair short-circuits to
// 1 without a network call. A non-finite or non-positive upstream rate is
// rejected with domain.ErrRateUnavailable; callers fall back to 1 rather
// than letting a bad multiplier into financial output.
func (c *Client) PairRate(ctx context.Context, base, target string) (float64, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	target = strings.ToUpper(strings.TrimSpace(target))
	if base == target {
		return 1, nil
	}
	if c.apiKey == "" {
		return 0, domain.ErrRateNotConfigured
	}

	cacheKey := "fx:" + base + ":" + target
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
			var rate float64
			if _, err := fmt.Sscanf(cached, "%g", &rate); err == nil && rate > 0 {
				metrics.FXFetches.WithLabelValues("cache").Inc()
				return rate, nil
			}
		}
	}

	rate, err := c.fetchPair(ctx, base, target)
	if err != nil {
		metrics.FXFetches.WithLabelValues("error").Inc()
		return 0, err
	}
	metrics.FXFetches.WithLabelValues("ok").Inc()

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, fmt.Sprintf("%g", rate), rateCacheTTL); err != nil {
			c.logger.Warn().Err(err).Str("pair", base+"/"+target).Msg("failed to cache fx rate")
		}
	}
	return rate, nil
}

func (c *Client) fetchPair(ctx context.Context, base, target string) (float64, error) {
	reqURL := fmt.Sprintf("%s/%s/pair/%s/%s",
		c.baseURL, url.PathEscape(c.apiKey), url.PathEscape(base), url.PathEscape(target))

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.httpc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("upstream status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("upstream status %d", resp.StatusCode))
		}
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return err
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = 5 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}

	var payload pairResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}
	rate := payload.ConversionRate
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 0, domain.ErrRateUnavailable
	}
	return rate, nil
}
