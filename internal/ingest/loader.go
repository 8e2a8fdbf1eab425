package ingest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/scootstats/scootstats/internal/ingest/resilience"
	"github.com/scootstats/scootstats/internal/ride"
)

// DefaultTimeout is the overall fetch budget per load.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps the response body read. A personal ride log is a few
// megabytes at most; anything larger is not the expected export.
const maxBodyBytes = 32 << 20

// HTTPDoer executes HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// LoaderConfig holds configuration for the Loader.
type LoaderConfig struct {
	// HTTPClient executes the fetch. If nil, a resilient client with
	// defaults is used.
	HTTPClient HTTPDoer

	// Timeout is the overall fetch budget (default: DefaultTimeout).
	Timeout time.Duration

	// Logger for load operations.
	Logger zerolog.Logger
}

// Loader fetches a published CSV export and produces the ordered ride
// collection, or a classified *Error.
type Loader struct {
	httpClient HTTPDoer
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewLoader creates a Loader.
func NewLoader(cfg LoaderConfig) *Loader {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig("ride-source")
		clientCfg.Timeout = timeout
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Loader{
		httpClient: httpClient,
		timeout:    timeout,
		logger:     cfg.Logger,
	}
}

// Load fetches the CSV at url and returns the normalized ride collection
// in source row order. Rows that fail normalization are dropped, never
// surfaced; every collection-level failure is a classified *Error.
func (l *Loader) Load(ctx context.Context, url string) ([]ride.Ride, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	body, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	rows, err := parseCSV(body)
	if err != nil {
		if looksLikeMarkup(body) {
			return nil, wrongFormatError()
		}
		return nil, processingError(err)
	}

	if len(rows) == 0 {
		if looksLikeMarkup(body) {
			return nil, wrongFormatError()
		}
		return nil, emptyDataError()
	}

	rides := make([]ride.Ride, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		r, err := ride.Normalize(row, i)
		if err != nil {
			dropped++
			l.logger.Warn().
				Int("row", i).
				Err(err).
				Msg("skipping malformed row")
			continue
		}
		rides = append(rides, r)
	}

	if dropped > 0 {
		l.logger.Info().
			Int("dropped", dropped).
			Int("kept", len(rides)).
			Msg("dropped malformed rows")
	}

	if len(rides) == 0 {
		if looksLikeMarkup(body) {
			return nil, wrongFormatError()
		}
		return nil, emptyDataError()
	}

	return rides, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{
			Code:    "BAD_URL",
			Message: "invalid data source URL",
			Err:     err,
		}
	}
	req.Header.Set("Accept", "text/csv, text/plain")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", timeoutError()
		}
		return "", &Error{
			Code:    "FETCH",
			Message: "failed to reach the data source",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", badStatusError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", timeoutError()
		}
		return "", processingError(err)
	}

	return string(raw), nil
}
