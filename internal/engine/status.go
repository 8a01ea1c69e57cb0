package engine

import (
	"github.com/TimelordUK/lyricsync/internal/source"
)

// StatusKind enumerates the lyric states a UI can branch on
type StatusKind int

const (
	StatusEmpty StatusKind = iota
	StatusLocal
	StatusRemote
	StatusError
)

// String returns a short status name
func (k StatusKind) String() string {
	switch k {
	case StatusLocal:
		return "local"
	case StatusRemote:
		return "remote"
	case StatusError:
		return "error"
	default:
		return "empty"
	}
}

// Status answers what the UI may offer for the current lyrics.
// Nothing is offered unless both title and artist are known.
type Status interface {
	Kind() StatusKind
	Track() source.Track
	HasLyrics() bool
	Err() error

	// CanEdit reports whether the lyrics can be corrected at the provider
	CanEdit() bool
	// CanSave reports whether the lyrics can be stored locally
	CanSave() bool
	// CanRefresh reports whether the lyrics should be re-fetched remotely
	CanRefresh() bool
}

// EmptyStatus means no lyrics are loaded
type EmptyStatus struct {
	track source.Track
}

func (s EmptyStatus) Kind() StatusKind { return StatusEmpty }
func (s EmptyStatus) Track() source.Track { return s.track }
func (s EmptyStatus) HasLyrics() bool { return false }
func (s EmptyStatus) Err() error { return nil }
func (s EmptyStatus) CanEdit() bool { return false }
func (s EmptyStatus) CanSave() bool { return false }
func (s EmptyStatus) CanRefresh() bool { return false }

// LocalStatus means lyrics were read from the local cache
type LocalStatus struct {
	track source.Track
	path  string
}

func (s LocalStatus) Kind() StatusKind { return StatusLocal }
func (s LocalStatus) Track() source.Track { return s.track }
func (s LocalStatus) HasLyrics() bool { return true }
func (s LocalStatus) Err() error { return nil }
func (s LocalStatus) CanEdit() bool { return false }
func (s LocalStatus) CanSave() bool { return false }
func (s LocalStatus) CanRefresh() bool { return s.track.Complete() }

// Path returns the file the lyrics were read from
func (s LocalStatus) Path() string { return s.path }

// RemoteStatus means lyrics came from a remote provider
type RemoteStatus struct {
	track    source.Track
	provider string
	editURI  string
}

func (s RemoteStatus) Kind() StatusKind { return StatusRemote }
func (s RemoteStatus) Track() source.Track { return s.track }
func (s RemoteStatus) HasLyrics() bool { return true }
func (s RemoteStatus) Err() error { return nil }
func (s RemoteStatus) CanEdit() bool { return s.track.Complete() && s.editURI != "" }
func (s RemoteStatus) CanSave() bool { return s.track.Complete() }
func (s RemoteStatus) CanRefresh() bool { return false }

// Provider returns the name of the remote provider
func (s RemoteStatus) Provider() string { return s.provider }

// EditURI returns the page where the lyrics can be corrected
func (s RemoteStatus) EditURI() string { return s.editURI }

// ErrorStatus means the last lookup failed
type ErrorStatus struct {
	track source.Track
	err   error
}

func (s ErrorStatus) Kind() StatusKind { return StatusError }
func (s ErrorStatus) Track() source.Track { return s.track }
func (s ErrorStatus) HasLyrics() bool { return false }
func (s ErrorStatus) Err() error { return s.err }
func (s ErrorStatus) CanEdit() bool { return false }
func (s ErrorStatus) CanSave() bool { return false }
func (s ErrorStatus) CanRefresh() bool { return s.track.Complete() }

// statusFor derives the status of freshly loaded lyrics
func statusFor(l *source.Lyrics) Status {
	switch l.Kind {
	case source.KindLocal:
		return LocalStatus{track: l.Track, path: l.Path}
	case source.KindRemote:
		return RemoteStatus{track: l.Track, provider: l.Provider, editURI: l.EditURI}
	default:
		return EmptyStatus{track: l.Track}
	}
}
