package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultMaxBytes  = 10 * 1024 * 1024 // 10MB
	DefaultUserAgent = "PodcastMenu/1.0"
)

var (
	ErrTooLarge  = errors.New("response body exceeds size limit")
	ErrEmptyBody = errors.New("response body is empty")
)

// ImageFetcher downloads raw image bytes. Cancelling ctx aborts the request.
type ImageFetcher interface {
	Fetch(ctx context.Context, locator *url.URL) ([]byte, error)
}

type Options struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
	Client    *http.Client
}

type imageFetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

func NewImageFetcher(opts Options) ImageFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &imageFetcher{
		client:    client,
		maxBytes:  opts.MaxBytes,
		userAgent: opts.UserAgent,
	}
}

func (f *imageFetcher) Fetch(ctx context.Context, locator *url.URL) ([]byte, error) {
	return download(ctx, f.client, locator.String(), f.userAgent, f.maxBytes)
}

func download(ctx context.Context, client *http.Client, rawURL, userAgent string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("failed to download %s: %w", rawURL, ErrEmptyBody)
	}
	if int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxBytes)
	}

	return body, nil
}
