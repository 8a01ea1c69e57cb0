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

// DefaultLrcLibURL is the public LRCLIB endpoint
const DefaultLrcLibURL = "https://lrclib.net"

// LrcLibProvider fetches lyrics from an LRCLIB compatible server
type LrcLibProvider struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewLrcLibProvider creates a provider for baseURL with a request timeout
func NewLrcLibProvider(baseURL string, timeout time.Duration) *LrcLibProvider {
	if baseURL == "" {
		baseURL = DefaultLrcLibURL
	}
	return &LrcLibProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "lyricsync/1.0",
	}
}

// Name returns the provider name
func (p *LrcLibProvider) Name() string {
	return "lrclib"
}

// Kind returns KindRemote
func (p *LrcLibProvider) Kind() Kind {
	return KindRemote
}

type lrclibResponse struct {
	ID           int     `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// Match fetches lyrics for the track, preferring synced lyrics
func (p *LrcLibProvider) Match(ctx context.Context, track Track) (*Lyrics, error) {
	if !track.Complete() {
		return nil, ErrNotFound
	}

	params := url.Values{}
	params.Set("artist_name", track.Artist)
	params.Set("track_name", track.Title)
	if track.Album != "" {
		params.Set("album_name", track.Album)
	}

	reqURL := fmt.Sprintf("%s/api/get?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lrclib request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lrclib request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lrclib returned status %d", resp.StatusCode)
	}

	var body lrclibResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode lrclib response: %w", err)
	}

	text := body.SyncedLyrics
	if text == "" {
		text = body.PlainLyrics
	}
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
