package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/af-corp/model-catalog/internal/config"
)

// ErrCircuitOpen is returned without a request when a host's breaker is open.
var ErrCircuitOpen = errors.New("scrape: circuit open")

const maxPageBytes = 16 << 20

// Fetcher downloads documentation pages, one circuit breaker per host.
type Fetcher struct {
	client   *http.Client
	breakers *breakerSet
}

func NewFetcher(cfg config.ScrapeConfig) *Fetcher {
	return NewFetcherWithClient(cfg, &http.Client{Timeout: cfg.Timeout})
}

func NewFetcherWithClient(cfg config.ScrapeConfig, client *http.Client) *Fetcher {
	return &Fetcher{
		client:   client,
		breakers: newBreakerSet(cfg.FailureThreshold, cfg.RecoveryProbeInterval),
	}
}

// Breaker exposes the breaker for host.
func (f *Fetcher) Breaker(host string) *Breaker {
	return f.breakers.get(host)
}

// Fetch returns the body of pageURL. Non-2xx responses count as failures.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	cb := f.breakers.get(u.Host)
	if !cb.Allow() {
		return nil, fmt.Errorf("fetch %s: %w", u.Host, ErrCircuitOpen)
	}

	start := time.Now()
	body, err := f.do(ctx, pageURL)
	if err != nil {
		cb.RecordFailure()
		slog.Warn("page fetch failed", "url", pageURL, "error", err, "breaker", cb.State().String())
		return nil, err
	}
	cb.RecordSuccess()
	slog.Info("page fetched", "url", pageURL, "bytes", len(body), "duration_ms", time.Since(start).Milliseconds())
	return body, nil
}

func (f *Fetcher) do(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", pageURL, err)
	}
	return body, nil
}
