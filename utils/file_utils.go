package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseLocator accepts absolute http(s) URLs only.
func ParseLocator(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("image URL is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL %q: %w", raw, err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("image URL must be absolute http(s): %s", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("image URL has no host: %s", raw)
	}

	return u, nil
}

func HumanSize(size int64) string {
	if size > 1024*1024 {
		return fmt.Sprintf("%.1fMB", float64(size)/(1024*1024))
	} else if size > 1024 {
		return fmt.Sprintf("%.1fKB", float64(size)/1024)
	}
	return fmt.Sprintf("%dB", size)
}
