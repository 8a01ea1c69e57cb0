package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lyricsOVHServer(t *testing.T, handler http.HandlerFunc) *LyricsOVHProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewLyricsOVHProvider(srv.URL, 5*time.Second)
}

func TestLyricsOVHMatch(t *testing.T) {
	p := lyricsOVHServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/AC/DC/Back In Black", r.URL.Path)
		assert.Equal(t, "/v1/AC%2FDC/Back%20In%20Black", r.URL.EscapedPath())
		json.NewEncoder(w).Encode(map[string]string{"lyrics": "Back in black\r\nI hit the sack\r\n"})
	})

	got, err := p.Match(context.Background(), Track{Title: "Back In Black", Artist: "AC/DC"})

	require.NoError(t, err)
	assert.Equal(t, "Back in black\nI hit the sack", got.Text)
	assert.Equal(t, KindRemote, got.Kind)
	assert.Equal(t, "lyricsovh", got.Provider)
}

func TestLyricsOVHNotFound(t *testing.T) {
	p := lyricsOVHServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "No lyrics found"})
	})

	_, err := p.Match(context.Background(), Track{Title: "T", Artist: "A"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLyricsOVHEmptyAndErrors(t *testing.T) {
	empty := lyricsOVHServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"lyrics": "  \r\n"})
	})
	_, err := empty.Match(context.Background(), Track{Title: "T", Artist: "A"})
	assert.ErrorIs(t, err, ErrNotFound)

	broken := lyricsOVHServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err = broken.Match(context.Background(), Track{Title: "T", Artist: "A"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = broken.Match(context.Background(), Track{Title: "T"})
	assert.ErrorIs(t, err, ErrNotFound)
}
