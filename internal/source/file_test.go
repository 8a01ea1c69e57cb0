package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProviderSaveAndMatch(t *testing.T) {
	p := NewFileProvider(filepath.Join(t.TempDir(), "lyrics"))
	track := Track{Title: "Karma Police", Artist: "Radiohead"}

	path, err := p.Save(Lyrics{Track: track, Text: "[00:01.00]Karma police"})
	require.NoError(t, err)
	assert.Equal(t, p.PathFor(track), path)
	assert.Equal(t, "Radiohead - Karma Police.lrc", filepath.Base(path))

	got, err := p.Match(context.Background(), track)
	require.NoError(t, err)
	assert.Equal(t, "[00:01.00]Karma police", got.Text)
	assert.Equal(t, KindLocal, got.Kind)
	assert.Equal(t, "local", got.Provider)
	assert.Equal(t, path, got.Path)
	assert.Equal(t, track, got.Track)
}

func TestFileProviderSaveOverwrites(t *testing.T) {
	p := NewFileProvider(t.TempDir())
	track := Track{Title: "Song", Artist: "Band"}

	_, err := p.Save(Lyrics{Track: track, Text: "old"})
	require.NoError(t, err)
	_, err = p.Save(Lyrics{Track: track, Text: "new"})
	require.NoError(t, err)

	got, err := p.Match(context.Background(), track)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Text)

	entries, err := os.ReadDir(p.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileProviderMatchMissing(t *testing.T) {
	p := NewFileProvider(t.TempDir())

	_, err := p.Match(context.Background(), Track{Title: "Nope", Artist: "Nobody"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.Match(context.Background(), Track{Title: "No artist"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileProviderSaveRequiresTrack(t *testing.T) {
	p := NewFileProvider(t.TempDir())

	_, err := p.Save(Lyrics{Track: Track{Title: "Only title"}, Text: "x"})
	assert.Error(t, err)
}

func TestFileProviderOpenDerivesTitle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "My Song.lrc")
	require.NoError(t, os.WriteFile(path, []byte("[00:01.00]hi"), 0644))

	got, err := NewFileProvider(dir).Open(path, Track{})
	require.NoError(t, err)
	assert.Equal(t, "My Song", got.Title)
	assert.Equal(t, "[00:01.00]hi", got.Text)
}

func TestPathForSanitizes(t *testing.T) {
	p := NewFileProvider("/cache")

	path := p.PathFor(Track{Title: "A/B: C", Artist: ".."})

	assert.Equal(t, filepath.Join("/cache", "_ - A_B_ C.lrc"), path)
}
