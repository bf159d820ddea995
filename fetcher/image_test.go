package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Superbil/PodcastMenu/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverURL(t *testing.T, srv *httptest.Server, path string) *url.URL {
	t.Helper()
	u, err := url.Parse(srv.URL + path)
	require.NoError(t, err)
	return u
}

func TestImageFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent/1.0" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.URL.Path {
		case "/ok.png":
			_, _ = w.Write([]byte("image-bytes"))
		case "/empty.png":
			w.WriteHeader(http.StatusOK)
		case "/big.png":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	f := fetcher.NewImageFetcher(fetcher.Options{MaxBytes: 32, UserAgent: "test-agent/1.0"})

	t.Run("success", func(t *testing.T) {
		data, err := f.Fetch(context.Background(), serverURL(t, srv, "/ok.png"))
		require.NoError(t, err)
		assert.Equal(t, "image-bytes", string(data))
	})

	t.Run("non-200 status", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), serverURL(t, srv, "/missing.png"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("empty body", func(t *testing.T) {
		data, err := f.Fetch(context.Background(), serverURL(t, srv, "/empty.png"))
		assert.ErrorIs(t, err, fetcher.ErrEmptyBody)
		assert.Nil(t, data)
	})

	t.Run("body over the size limit", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), serverURL(t, srv, "/big.png"))
		assert.ErrorIs(t, err, fetcher.ErrTooLarge)
	})
}

func TestImageFetcher_Cancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	f := fetcher.NewImageFetcher(fetcher.Options{})
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		_, err := f.Fetch(ctx, serverURL(t, srv, "/slow.png"))
		errc <- err
	}()
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("fetch was not aborted by cancellation")
	}
}
