package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/apigen/internal/errors"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultAttempts = 3
	DefaultBackoff  = time.Second
)

// Fetcher retrieves the markup of one documentation page.
type Fetcher interface {
	Retrieve(ctx context.Context, location string) (string, error)
}

type Config struct {
	URL      string
	Path     string
	Timeout  time.Duration
	Attempts int
}

// Location is the file path when one is configured, the URL otherwise.
func (c Config) Location() string {
	if c.Path != "" {
		return c.Path
	}
	return c.URL
}

// New picks a FileFetcher when a local path is configured.
func New(cfg Config) Fetcher {
	if cfg.Path != "" {
		return FileFetcher{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: timeout},
		Attempts: cfg.Attempts,
		Backoff:  DefaultBackoff,
	}
}

type HTTPFetcher struct {
	Client   *http.Client
	Attempts int
	// Backoff is multiplied by the attempt number between retries.
	Backoff time.Duration
}

// Retrieve GETs location. Transport errors and 5xx responses are retried;
// any other non-200 status fails immediately.
func (f *HTTPFetcher) Retrieve(ctx context.Context, location string) (string, error) {
	attempts := f.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", errors.Wrap(ctx.Err(), errors.KindInput, "retrieval cancelled")
			case <-time.After(f.Backoff * time.Duration(attempt-1)):
			}
		}

		body, retry, err := f.get(ctx, location)
		if err == nil {
			log.Info().
				Str("url", location).
				Int("bytes", len(body)).
				Int("attempt", attempt).
				Msg("Successfully retrieved documentation page")
			return body, nil
		}

		lastErr = err
		if !retry {
			break
		}
		log.Warn().Err(err).Str("url", location).Int("attempt", attempt).Msg("Retrieval failed, retrying")
	}

	log.Err(lastErr).Str("url", location).Msg("Error when retrieving documentation page")
	return "", lastErr
}

func (f *HTTPFetcher) get(ctx context.Context, location string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", false, errors.Attr(errors.Wrap(err, errors.KindInput, "invalid request"), "url", location)
	}
	req.Header.Set("User-Agent", "apigen")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		retry := ctx.Err() == nil
		return "", retry, errors.Attr(errors.Wrap(err, errors.KindInput, "request failed"), "url", location)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := errors.Errorf(errors.KindInput, "status code %d", resp.StatusCode)
		err = errors.Attr(err, "url", location)
		err = errors.Attr(err, "status", resp.StatusCode)
		return "", resp.StatusCode >= 500, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, errors.Attr(errors.Wrap(err, errors.KindInput, "reading response body"), "url", location)
	}
	return string(body), false, nil
}

// FileFetcher reads a page saved to disk.
type FileFetcher struct{}

func (FileFetcher) Retrieve(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, errors.KindInput, "retrieval cancelled")
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return "", errors.Attr(errors.Wrapf(err, errors.KindInput, "reading %s", location), "url", location)
	}

	log.Info().Str("path", location).Int("bytes", len(data)).Msg("Read documentation page from disk")
	return string(data), nil
}
