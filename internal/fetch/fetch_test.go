package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardonunez-io/apigen/internal/errors"
)

func newFetcher(attempts int) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: time.Second}, Attempts: attempts, Backoff: time.Millisecond}
}

func TestHTTPFetcher_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "apigen", r.Header.Get("User-Agent"))
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	body, err := newFetcher(1).Retrieve(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", body)
}

func TestHTTPFetcher_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newFetcher(3).Retrieve(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, errors.KindInput, errors.GetKind(err))
	assert.Equal(t, "status code 404", err.Error())
	assert.Equal(t, http.StatusNotFound, errors.GetAttributes(err)["status"])
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPFetcher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := newFetcher(3).Retrieve(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPFetcher_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newFetcher(2).Retrieve(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, "status code 503", err.Error())
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPFetcher_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFetcher(3).Retrieve(ctx, srv.URL)
	require.Error(t, err)
	assert.Equal(t, errors.KindInput, errors.GetKind(err))
}

func TestFileFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>hi</p>"), 0o644))

	body, err := FileFetcher{}.Retrieve(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", body)

	missing := filepath.Join(t.TempDir(), "missing.html")
	_, err = FileFetcher{}.Retrieve(context.Background(), missing)
	require.Error(t, err)
	assert.Equal(t, errors.KindInput, errors.GetKind(err))
	assert.Equal(t, missing, errors.GetAttributes(err)["url"])
	assert.Contains(t, err.Error(), "reading "+missing)
}

func TestNew(t *testing.T) {
	assert.IsType(t, FileFetcher{}, New(Config{Path: "api.html", URL: "https://example.com"}))
	assert.IsType(t, &HTTPFetcher{}, New(Config{URL: "https://example.com"}))
	assert.Equal(t, "api.html", Config{Path: "api.html", URL: "https://example.com"}.Location())
	assert.Equal(t, "https://example.com", Config{URL: "https://example.com"}.Location())
}
