package engine

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/lyricsync/internal/source"
)

func TestPollerPoll(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Load(source.Lyrics{Track: testTrack, Text: testLyrics, Kind: source.KindRemote})

	var pos atomic.Int64
	pos.Store(13000)
	p := NewPoller(e, pos.Load, func(Frame) {}, 0)

	f := p.Poll()

	assert.Equal(t, DefaultPollInterval, p.Interval())
	assert.Equal(t, int64(13000), f.PositionMS)
	assert.True(t, f.Synced)
	assert.Len(t, f.Window.Lines, 4)
	assert.Equal(t, StatusRemote, f.Status.Kind())
	assert.Equal(t, 1, p.Ticks())

	pos.Store(99999)
	assert.True(t, p.Poll().Window.Empty())
}

func TestPollerPollSyncDisabled(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Load(source.Lyrics{Track: testTrack, Text: testLyrics, Kind: source.KindRemote})
	e.SetSyncEnabled(false)

	f := NewPoller(e, func() int64 { return 5000 }, func(Frame) {}, 0).Poll()

	assert.False(t, f.Synced)
	assert.True(t, f.Window.Empty())
}

func TestPollerRunDeliversFrames(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Load(source.Lyrics{Track: testTrack, Text: testLyrics, Kind: source.KindRemote})

	var mu sync.Mutex
	var frames []Frame
	p := NewPoller(e, func() int64 { return 9000 }, func(f Frame) {
		mu.Lock()
		frames = append(frames, f)
		mu.Unlock()
	}, 5*time.Millisecond)

	p.Start()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(frames) >= 3
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, p.Close())

	mu.Lock()
	delivered := len(frames)
	first := frames[0]
	mu.Unlock()

	assert.Equal(t, int64(9000), first.PositionMS)
	assert.GreaterOrEqual(t, p.Ticks(), delivered)

	// no ticks after Close
	ticks := p.Ticks()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, ticks, p.Ticks())
}

func TestPollerFrameMatchesOneTrack(t *testing.T) {
	e, _ := newTestEngine(t)
	tracks := []source.Lyrics{
		{Track: source.Track{Title: "Alpha", Artist: "Band"}, Kind: source.KindRemote,
			Text: "[00:01.00]Alpha one\n[00:02.00]Alpha two\n[00:03.00]Alpha three"},
		{Track: source.Track{Title: "Beta", Artist: "Band"}, Kind: source.KindLocal,
			Text: "[00:01.00]Beta one\n[00:02.00]Beta two\n[00:03.00]Beta three"},
	}
	e.Load(tracks[0])

	p := NewPoller(e, func() int64 { return 1500 }, func(Frame) {}, 0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			e.Load(tracks[i%2])
		}
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}

		f := p.Poll()
		title := f.Status.Track().Title
		for _, line := range f.Window.Lines {
			require.True(t, strings.HasPrefix(line.Text, title),
				"line %q shown with status of %q", line.Text, title)
		}
	}
}
