package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultLyricsOVHURL is the public lyrics.ovh endpoint
const DefaultLyricsOVHURL = "https://api.lyrics.ovh"

// LyricsOVHProvider fetches plain lyrics from lyrics.ovh.
// The service has no timestamps, so its lyrics are only shown unsynced.
type LyricsOVHProvider struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewLyricsOVHProvider creates a provider for baseURL with a request timeout
func NewLyricsOVHProvider(baseURL string, timeout time.Duration) *LyricsOVHProvider {
	if baseURL == "" {
		baseURL = DefaultLyricsOVHURL
	}
	return &LyricsOVHProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "lyricsync/1.0",
	}
}

// Name returns the provider name
func (p *LyricsOVHProvider) Name() string {
	return "lyricsovh"
}

// Kind returns KindRemote
func (p *LyricsOVHProvider) Kind() Kind {
	return KindRemote
}

// Match fetches lyrics for the track
func (p *LyricsOVHProvider) Match(ctx context.Context, track Track) (*Lyrics, error) {
	if !track.Complete() {
		return nil, ErrNotFound
	}

	reqURL := fmt.Sprintf("%s/v1/%s/%s", p.baseURL, url.PathEscape(track.Artist), url.PathEscape(track.Title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lyrics.ovh request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lyrics.ovh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lyrics.ovh returned status %d", resp.StatusCode)
	}

	var body struct {
		Lyrics string `json:"lyrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode lyrics.ovh response: %w", err)
	}

	// responses use CRLF line endings
	text := strings.TrimSpace(strings.ReplaceAll(body.Lyrics, "\r\n", "\n"))
	if text == "" {
		return nil, ErrNotFound
	}

	return &Lyrics{
		Track:    track,
		Text:     text,
		Kind:     KindRemote,
		Provider: p.Name(),
	}, nil
}
