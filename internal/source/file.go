package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lsio "github.com/TimelordUK/lyricsync/internal/io"
)

// FileProvider reads and writes lyrics in a local cache directory
type FileProvider struct {
	dir string
}

// NewFileProvider creates a file provider rooted at dir
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// Name returns the provider name
func (p *FileProvider) Name() string {
	return "local"
}

// Kind returns KindLocal
func (p *FileProvider) Kind() Kind {
	return KindLocal
}

// Dir returns the cache directory
func (p *FileProvider) Dir() string {
	return p.dir
}

// PathFor returns the cache file path for a track
func (p *FileProvider) PathFor(track Track) string {
	name := sanitizeName(track.Artist) + " - " + sanitizeName(track.Title) + ".lrc"
	return filepath.Join(p.dir, name)
}

// Match loads cached lyrics for the track
func (p *FileProvider) Match(ctx context.Context, track Track) (*Lyrics, error) {
	if !track.Complete() {
		return nil, ErrNotFound
	}

	path := p.PathFor(track)
	if !lsio.Exists(path) {
		return nil, ErrNotFound
	}

	return p.Open(path, track)
}

// Open reads lyrics from an arbitrary file
func (p *FileProvider) Open(path string, track Track) (*Lyrics, error) {
	text, err := lsio.ReadText(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lyrics: %w", err)
	}

	if track.Title == "" {
		track.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &Lyrics{
		Track:    track,
		Text:     text,
		Kind:     KindLocal,
		Provider: p.Name(),
		Path:     path,
	}, nil
}

// Save writes lyrics to the cache and returns the file path
func (p *FileProvider) Save(lyrics Lyrics) (string, error) {
	if !lyrics.Complete() {
		return "", fmt.Errorf("cannot save lyrics without title and artist")
	}

	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create lyrics dir: %w", err)
	}

	path := p.PathFor(lyrics.Track)

	// Write to a temp file first so a reader never sees a partial file
	tmp, err := os.CreateTemp(p.dir, ".lyricsync-*.lrc")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(lyrics.Text); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write lyrics: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write lyrics: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to store lyrics: %w", err)
	}

	return path, nil
}

// sanitizeName makes a title or artist safe to use in a file name
func sanitizeName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(s)
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}
