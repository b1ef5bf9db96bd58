// Package geomag is the HTTP adapter for the NOAA NCEI geomagnetic field
// calculator. It owns the transport mechanism; callers see only the
// pipeline.Fetcher contract and the raw tabular response text.
package geomag

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/alexKleider/declination/internal/config"
	"github.com/alexKleider/declination/internal/domain"
	"github.com/alexKleider/declination/internal/observability"
)

// TransportError reports a failed remote call: network failure, cancelled
// context, or a non-2xx status. It is attributable to one input line and
// never fatal to the batch unless fail-fast is selected.
type TransportError struct {
	// Status is the HTTP status code, or 0 when the request never
	// completed.
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("calculator returned status %d", e.Status)
	}
	return fmt.Sprintf("calculator request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client issues one synchronous GET per data line to the calculator.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a calculator client. A zero RequestRate disables
// throttling; any positive rate paces requests so long batches stay polite
// to the public service.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	var limiter *rate.Limiter
	if cfg.RequestRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestRate), 1)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.EndpointURL,
		limiter: limiter,
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch retrieves the raw tabular response for one request. Hemisphere
// flags are fixed North/West — the input format has no hemisphere field.
func (c *Client) Fetch(ctx context.Context, req domain.Request) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &TransportError{Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	params := url.Values{
		"lat1":           {formatCoord(req.Lat)},
		"lon1":           {formatCoord(req.Lon)},
		"lat1Hemisphere": {"N"},
		"lon1Hemisphere": {"W"},
		"resultFormat":   {"csv"},
		"grid":           {"on"},
		"startYear":      {req.Year},
		"startMonth":     {req.Month},
		"startDay":       {req.Day},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		c.logger.Warn("calculator rejected request",
			"status", resp.StatusCode,
			"lat", req.Lat,
			"lon", req.Lon,
			"body", string(snippet),
		)
		return "", &TransportError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	return string(body), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
