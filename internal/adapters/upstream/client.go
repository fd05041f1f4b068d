// Package upstream es el HTTP client compartido por los adapters de protocolo:
// rate limiting por fuente, retries con backoff exponencial, cache de documentos
// y mapeo de fallos a *domain.UpstreamFetchError.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/rebalancer/internal/domain"
	"github.com/alejandrodnm/rebalancer/internal/metrics"
	"github.com/alejandrodnm/rebalancer/internal/ports"
)

const (
	// Ninguna de las APIs documenta límites; 5 req/s es conservador para todas.
	defaultRatePerSec = 5
	defaultBurst      = 5

	defaultMaxRetries    = 3
	defaultBaseRetryWait = 500 * time.Millisecond
	defaultTimeout       = 10 * time.Second

	// Máximo de body que se incluye en el error de un 4xx.
	maxErrorBody = 512
)

// Client es el HTTP client de una fuente upstream con rate limiting y retries.
type Client struct {
	http          *http.Client
	source        string
	base          string
	limiter       *rate.Limiter
	cache         ports.DocumentCache
	cacheTTL      time.Duration
	maxRetries    int
	baseRetryWait time.Duration
}

// Option configura un Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client por defecto.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRateLimit cambia el límite de requests por segundo.
func WithRateLimit(perSec float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSec), burst) }
}

// WithRetry cambia el número de retries y la espera base del backoff.
func WithRetry(maxRetries int, baseWait time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseRetryWait = baseWait
	}
}

// WithCache guarda los documentos exitosos en cache durante ttl.
// Con ttl <= 0 o cache nil no se cachea.
func WithCache(cache ports.DocumentCache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// NewClient crea un Client para la fuente dada. source es el nombre que
// aparece en errores, logs y métricas ("equilibria", "sushiswap"...).
func NewClient(source, baseURL string, opts ...Option) *Client {
	c := &Client{
		http:          &http.Client{Timeout: defaultTimeout},
		source:        source,
		base:          strings.TrimRight(baseURL, "/"),
		limiter:       rate.NewLimiter(defaultRatePerSec, defaultBurst),
		maxRetries:    defaultMaxRetries,
		baseRetryWait: defaultBaseRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source devuelve el nombre de la fuente.
func (c *Client) Source() string {
	return c.source
}

// GetJSON hace GET de path y decodifica el JSON en out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	raw, err := c.GetRaw(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.UpstreamFetchError{Source: c.source, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// GetRaw hace GET de path y devuelve el body. Pasa primero por el cache.
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	url := c.base + path

	if c.cacheEnabled() {
		if body, ok := c.cache.Get(ctx, url); ok {
			slog.Debug("upstream cache hit", "source", c.source, "url", url)
			return body, nil
		}
	}

	body, err := c.doWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}

	// Solo se cachean documentos JSON válidos
	if c.cacheEnabled() && json.Valid(body) {
		c.cache.Set(ctx, url, body, c.cacheTTL)
	}
	return body, nil
}

func (c *Client) cacheEnabled() bool {
	return c.cache != nil && c.cacheTTL > 0
}

// doWithRetry ejecuta el GET con backoff exponencial. Reintenta en 429, 5xx y
// fallos de transporte; un 4xx falla al momento.
func (c *Client) doWithRetry(ctx context.Context, url string) ([]byte, error) {
	var (
		lastStatus int
		lastErr    error
	)

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			metrics.UpstreamRetriesTotal.WithLabelValues(c.source).Inc()
			if err := c.sleep(ctx, attempt-1); err != nil {
				return nil, &domain.UpstreamFetchError{Source: c.source, Status: lastStatus, Err: err}
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &domain.UpstreamFetchError{Source: c.source, Err: fmt.Errorf("rate limiter: %w", err)}
		}

		start := time.Now()
		resp, err := c.get(ctx, url)
		if err != nil {
			metrics.ObserveUpstream(c.source, 0, time.Since(start))
			if ctx.Err() != nil {
				return nil, &domain.UpstreamFetchError{Source: c.source, Err: err}
			}
			slog.Debug("upstream request failed", "source", c.source, "attempt", attempt+1, "err", err)
			lastStatus, lastErr = 0, err
			continue
		}
		metrics.ObserveUpstream(c.source, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			resp.Body.Close()
			slog.Warn("rate limited by upstream", "source", c.source, "attempt", attempt+1)
			lastStatus, lastErr = resp.StatusCode, nil
			continue

		case resp.StatusCode >= 500:
			resp.Body.Close()
			slog.Debug("upstream server error", "source", c.source, "status", resp.StatusCode, "attempt", attempt+1)
			lastStatus, lastErr = resp.StatusCode, nil
			continue

		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			resp.Body.Close()
			fetchErr := &domain.UpstreamFetchError{Source: c.source, Status: resp.StatusCode}
			if msg := strings.TrimSpace(string(body)); msg != "" {
				fetchErr.Err = errors.New(msg)
			}
			return nil, fetchErr
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, &domain.UpstreamFetchError{Source: c.source, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
		}
		return body, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("exhausted %d retries", c.maxRetries)
	}
	return nil, &domain.UpstreamFetchError{Source: c.source, Status: lastStatus, Err: lastErr}
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.http.Do(req)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) error {
	wait := time.Duration(math.Pow(2, float64(attempt))) * c.baseRetryWait
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
