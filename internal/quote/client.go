package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/infrastructure/metrics"
)

const (
	defaultBaseURL = "https://www.alphavantage.co"

	// Quotes are cached briefly so a page full of holdings does not burn
	// through the upstream rate limit.
	quoteCacheTTL = time.Minute

	maxResponseSize = 1 << 20
)

// HTTPDoer makes HTTP requests. It exists so tests can run without network
// calls.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// QuoteCache stores fetched quotes keyed by symbol.
type QuoteCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Quote is a resolved market quote for one symbol.
type Quote struct {
	Symbol        string           `json:"symbol"`
	Price         decimal.Decimal  `json:"price"`
	PreviousClose *decimal.Decimal `json:"previous_close"`
}

// Client fetches symbol quotes from an Alpha Vantage compatible upstream
// and normalizes its failure modes into domain errors:
//
//   - domain.ErrQuoteNotConfigured: no API key configured
//   - domain.ErrQuoteUnavailable: upstream degraded or rate limited
//   - domain.ErrUnknownSymbol: no usable price for the symbol
type Client struct {
	apiKey  string
	baseURL string
	httpc   HTTPDoer
	cache   QuoteCache
	logger  zerolog.Logger
}

// ClientOptions configures a Client. HTTPClient and Cache are optional.
type ClientOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient HTTPDoer
	Cache      QuoteCache
	Timeout    time.Duration
	Logger     zerolog.Logger
}

// NewClient creates a quote client.
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

// globalQuoteResponse is the upstream GLOBAL_QUOTE shape. A "Note" field
// instead of a quote means the API key is rate limited.
type globalQuoteResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
	Note        string            `json:"Note"`
	Information string            `json:"Information"`
}

// Lookup fetches the current quote for a symbol.
func (c *Client) Lookup(ctx context.Context, symbol string) (Quote, error) {
	symbol = domain.NormalizeSymbol(symbol)
	if symbol == "" {
		return Quote{}, domain.ErrInvalidSymbol
	}
	if c.apiKey == "" {
		return Quote{}, domain.ErrQuoteNotConfigured
	}

	cacheKey := "quote:" + symbol
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
			var q Quote
			if err := json.Unmarshal([]byte(cached), &q); err == nil && q.Price.IsPositive() {
				metrics.QuoteFetches.WithLabelValues("cache").Inc()
				return q, nil
			}
		}
	}

	q, err := c.fetchQuote(ctx, symbol)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownSymbol):
			metrics.QuoteFetches.WithLabelValues("unknown").Inc()
		case errors.Is(err, domain.ErrQuoteUnavailable):
			metrics.QuoteFetches.WithLabelValues("unavailable").Inc()
		default:
			metrics.QuoteFetches.WithLabelValues("error").Inc()
		}
		return Quote{}, err
	}
	metrics.QuoteFetches.WithLabelValues("ok").Inc()

	if c.cache != nil {
		if encoded, err := json.Marshal(q); err == nil {
			if err := c.cache.Set(ctx, cacheKey, string(encoded), quoteCacheTTL); err != nil {
				c.logger.Warn().Err(err).Str("symbol", symbol).Msg("failed to cache quote")
			}
		}
	}
	return q, nil
}

func (c *Client) fetchQuote(ctx context.Context, symbol string) (Quote, error) {
	reqURL := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))

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
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return backoff.Permanent(domain.ErrQuoteUnavailable)
		case resp.StatusCode >= 500:
			return fmt.Errorf("upstream status %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
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
		if errors.Is(err, domain.ErrQuoteUnavailable) {
			return Quote{}, domain.ErrQuoteUnavailable
		}
		return Quote{}, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
	}

	var payload globalQuoteResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Quote{}, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
	}
	if payload.Note != "" || payload.Information != "" {
		// The upstream answers 200 with a note when the key is throttled.
		return Quote{}, domain.ErrQuoteUnavailable
	}

	price, ok := parsePrice(payload.GlobalQuote["05. price"])
	if !ok {
		return Quote{}, domain.ErrUnknownSymbol
	}

	q := Quote{Symbol: symbol, Price: price}
	if prev, ok := parsePrice(payload.GlobalQuote["08. previous close"]); ok {
		q.PreviousClose = &prev
	}
	return q, nil
}

// parsePrice accepts only finite, positive prices. Anything else is treated
// as "no usable price".
func parsePrice(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return decimal.Decimal{}, false
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return price, true
}
