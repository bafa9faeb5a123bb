package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Tigraan/Teahouse-bot/internal/cache"
	"github.com/Tigraan/Teahouse-bot/internal/model"
	"github.com/Tigraan/Teahouse-bot/internal/util"
	"github.com/Tigraan/Teahouse-bot/internal/worker"
)

// apiSleepFunc is the sleep function used between retries (injectable for tests).
var apiSleepFunc = time.Sleep

// Client is a minimal MediaWiki Action API client covering what the bot
// needs: revision history, section lists, user and block info, wikitext
// and talk-page posting. All reads identify themselves with a descriptive
// User-Agent and are paced by a per-host rate limiter, per API etiquette.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	host         string
	userAgent    string
	authToken    string
	maxBytes     int64
	maxRetries   int
	maxContinues int
	limiter      *worker.Limiter
	cache        cache.Cache
	cacheTTL     time.Duration
}

// NewClient creates a client for the configured API endpoint. The cache
// may be nil to disable caching of immutable lookups.
func NewClient(cfg model.APIConfig, c cache.Cache, cacheTTL time.Duration) (*Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	maxContinues := cfg.MaxContinues
	if maxContinues < 0 {
		maxContinues = 0
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		endpoint:     cfg.Endpoint,
		host:         u.Host,
		userAgent:    cfg.UserAgent,
		maxBytes:     cfg.MaxBodyBytes,
		maxRetries:   maxRetries,
		maxContinues: maxContinues,
		limiter:      worker.NewLimiter(cfg.RatePerSec, cfg.Burst),
		cache:        c,
		cacheTTL:     cacheTTL,
	}, nil
}

// SetAuthToken installs an OAuth2 bearer token used for write operations.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// apiError is the error envelope the API returns with HTTP 200.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Info)
}

// get performs a GET API call with the given parameters, retrying
// transient failures with exponential backoff.
func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("format", "json")
	params.Set("formatversion", "2")
	reqURL := c.endpoint + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			apiSleepFunc(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		if err := c.limiter.Wait(ctx, c.host); err != nil {
			return nil, err
		}

		body, retryable, err := c.doOnce(ctx, http.MethodGet, reqURL, nil)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("api call failed after %d attempts: %w", c.maxRetries, lastErr)
}

// postForm performs a POST API call with form-encoded parameters. Writes
// are never retried: a timed-out edit may still have been saved.
func (c *Client) postForm(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	if err := c.limiter.Wait(ctx, c.host); err != nil {
		return nil, err
	}

	body, _, err := c.doOnce(ctx, http.MethodPost, c.endpoint, strings.NewReader(params.Encode()))
	return body, err
}

func (c *Client) doOnce(ctx context.Context, method, reqURL string, form io.Reader) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, form)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}

	// The API reports most failures inside a 200 response.
	var envelope struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}
	if envelope.Error != nil {
		// maxlag asks clients to back off and retry.
		return nil, envelope.Error.Code == "maxlag", envelope.Error
	}

	return body, false, nil
}

// cachedGet serves the request from the cache when possible. Only used for
// immutable lookups (sections of a fixed revision).
func (c *Client) cachedGet(ctx context.Context, key string, params url.Values) ([]byte, error) {
	if c.cache != nil {
		if body, found := c.cache.Get(key); found {
			return body, nil
		}
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(key, body, c.cacheTTL)
	}

	return body, nil
}
