package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const DefaultITunesBaseURL = "https://itunes.apple.com"

// PodcastArtwork resolves a podcast name to the URL of its cover art.
type PodcastArtwork interface {
	Search(ctx context.Context, term string) (*url.URL, error)
}

type podcastArtwork struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

func NewPodcastArtwork(baseURL, userAgent string) PodcastArtwork {
	if baseURL == "" {
		baseURL = DefaultITunesBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &podcastArtwork{
		client:    &http.Client{Timeout: 15 * time.Second},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

var bracketed = regexp.MustCompile(`(?i)\s*[\[(].*?[\])]`)

func cleanTerm(s string) string {
	s = strings.TrimSpace(s)
	s = bracketed.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

func (pa *podcastArtwork) Search(ctx context.Context, term string) (*url.URL, error) {
	term = cleanTerm(term)
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}

	searchURL := fmt.Sprintf("%s/search?term=%s&media=podcast&entity=podcast&limit=1",
		pa.baseURL, url.QueryEscape(term))

	body, err := download(ctx, pa.client, searchURL, pa.userAgent, DefaultMaxBytes)
	if err != nil {
		return nil, fmt.Errorf("iTunes search failed: %w", err)
	}

	var response struct {
		ResultCount int `json:"resultCount"`
		Results     []struct {
			CollectionName string `json:"collectionName"`
			ArtworkURL600  string `json:"artworkUrl600"`
			ArtworkURL100  string `json:"artworkUrl100"`
			ArtworkURL60   string `json:"artworkUrl60"`
		} `json:"results"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse iTunes response: %w", err)
	}

	if response.ResultCount == 0 || len(response.Results) == 0 {
		return nil, fmt.Errorf("no podcast found for %q", term)
	}

	result := response.Results[0]
	artworkURL := result.ArtworkURL600
	if artworkURL == "" {
		artworkURL = result.ArtworkURL100
	}
	if artworkURL == "" {
		artworkURL = result.ArtworkURL60
	}
	if artworkURL == "" {
		return nil, fmt.Errorf("no artwork URL found for %q", result.CollectionName)
	}

	return url.Parse(artworkURL)
}
