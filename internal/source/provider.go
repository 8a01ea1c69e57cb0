package source

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by providers that have no lyrics for a track
var ErrNotFound = errors.New("lyrics not found")

// Kind identifies where lyrics came from
type Kind int

const (
	KindNone Kind = iota
	KindLocal
	KindRemote
)

// String returns a short kind name
func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindRemote:
		return "remote"
	default:
		return "none"
	}
}

// Track identifies the song lyrics are requested for
type Track struct {
	Title  string
	Artist string
	Album  string
}

// Complete reports whether both title and artist are known
func (t Track) Complete() bool {
	return strings.TrimSpace(t.Title) != "" && strings.TrimSpace(t.Artist) != ""
}

// String formats the track as "Artist - Title"
func (t Track) String() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Artist + " - " + t.Title
}

// Lyrics is a resolved lyric-available event
type Lyrics struct {
	Track
	Text     string
	Kind     Kind
	Provider string // name of the provider that produced the text
	EditURI  string // page where the lyrics can be corrected, if any
	Path     string // local file the text was read from, if any
}

// Provider resolves lyrics for a track
type Provider interface {
	// Name returns a human readable provider name
	Name() string

	// Kind reports whether the provider is local or remote
	Kind() Kind

	// Match returns lyrics for the track or ErrNotFound
	Match(ctx context.Context, track Track) (*Lyrics, error)
}
