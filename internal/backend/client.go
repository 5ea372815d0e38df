package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marketradar/internal/config"
)

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *pacer
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.BackendTimeout) * time.Millisecond},
		limiter:    newPacer(cfg.RateLimitRPS),
	}
}

type pacer struct {
	interval time.Duration
	last     time.Time
}

func newPacer(requestsPerSecond int) *pacer {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &pacer{interval: time.Second / time.Duration(requestsPerSecond)}
}

func (p *pacer) WaitTurn() {
	if wait := p.interval - time.Since(p.last); wait > 0 {
		time.Sleep(wait)
	}
	p.last = time.Now()
}

func (c *Client) SearchSold(ctx context.Context, query string) ([]byte, error) {
	return c.post(ctx, "/api/search", SoldSearchURL(c.cfg.EbayDomain, query))
}

func (c *Client) GenerateCSV(ctx context.Context, query string) ([]byte, error) {
	return c.post(ctx, "/generate-csv", SearchURL(c.cfg.AmazonDomain, query))
}

// A 404 means no export exists yet and is not an error.
func (c *Client) LoadCached(ctx context.Context) (blob []byte, found bool, err error) {
	target, err := c.endpoint(c.cfg.DataCSVPath)
	if err != nil {
		return nil, false, err
	}

	body, status, err := c.doWithRetry(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, err
	}
	if status == http.StatusNotFound {
		return nil, false, nil
	}
	if status < 200 || status >= 300 {
		return nil, false, fmt.Errorf("backend status %d: %s", status, backendError(body))
	}
	return body, true, nil
}

func (c *Client) post(ctx context.Context, endpoint, searchURL string) ([]byte, error) {
	target, err := c.endpoint(endpoint)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{"url": searchURL})
	if err != nil {
		return nil, err
	}

	body, status, err := c.doWithRetry(ctx, http.MethodPost, target, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("backend status %d: %s", status, backendError(body))
	}
	return body, nil
}

func (c *Client) endpoint(path string) (string, error) {
	base := strings.TrimRight(c.cfg.BackendBaseURL, "/")
	u, err := url.Parse(base + path)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (c *Client) doWithRetry(ctx context.Context, method, target string, payload []byte) ([]byte, int, error) {
	attempts := c.cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		c.limiter.WaitTurn()

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
		if err != nil {
			return nil, 0, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if isRetryableStatus(resp.StatusCode) && attempt < attempts {
			backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
			time.Sleep(backoff)
			lastErr = fmt.Errorf("backend status %d", resp.StatusCode)
			continue
		}

		return body, resp.StatusCode, nil
	}

	if lastErr == nil {
		lastErr = errors.New("backend request failed")
	}
	return nil, 0, lastErr
}

// A 500 carries the scrape error in its body and is an answer, not an
// outage.
func isRetryableStatus(status int) bool {
	switch status {
	case 429, 502, 503, 504:
		return true
	default:
		return false
	}
}

func backendError(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && strings.TrimSpace(er.Error) != "" {
		return er.Error
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "no response body"
	}
	return msg
}
