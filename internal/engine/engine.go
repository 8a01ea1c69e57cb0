package engine

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/TimelordUK/lyricsync/internal/source"
	"github.com/TimelordUK/lyricsync/pkg/lrc"
)

// state is swapped as a whole so readers never see a timeline paired
// with the status of a different track
type state struct {
	timeline *lrc.Timeline
	lyrics   *source.Lyrics
	status   Status
}

// Engine owns the current timeline and answers display queries.
// Loads replace the state atomically; Window may be called from any goroutine.
type Engine struct {
	parser *lrc.Parser
	log    *zap.Logger

	current     atomic.Pointer[state]
	syncEnabled atomic.Bool
}

// New creates an engine with sync enabled and nothing loaded
func New(parser *lrc.Parser, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}

	e := &Engine{
		parser: parser,
		log:    log,
	}
	e.current.Store(&state{status: EmptyStatus{}})
	e.syncEnabled.Store(true)
	return e
}

// Load parses newly available lyrics and replaces the timeline
func (e *Engine) Load(lyrics source.Lyrics) *lrc.Timeline {
	tl := e.parser.Parse(lyrics.Title, lyrics.Artist, lyrics.Text)

	for _, issue := range tl.Issues {
		e.log.Warn("skipped lyric tag",
			zap.String("track", lyrics.Track.String()),
			zap.Int("line", issue.Line),
			zap.String("tag", issue.Tag),
			zap.Error(issue.Err),
		)
	}

	e.current.Store(&state{
		timeline: tl,
		lyrics:   &lyrics,
		status:   statusFor(&lyrics),
	})

	e.log.Info("lyrics loaded",
		zap.String("track", lyrics.Track.String()),
		zap.String("source", lyrics.Kind.String()),
		zap.String("provider", lyrics.Provider),
		zap.Int("lines", len(tl.Real())),
		zap.Int("skipped", len(tl.Issues)),
	)
	return tl
}

// Fail records a failed lookup; only the title header remains displayable
func (e *Engine) Fail(track source.Track, err error) {
	e.current.Store(&state{
		timeline: e.parser.Parse(track.Title, track.Artist, ""),
		status:   ErrorStatus{track: track, err: err},
	})

	e.log.Warn("lyrics lookup failed",
		zap.String("track", track.String()),
		zap.Error(err),
	)
}

// Clear drops the current lyrics at track end
func (e *Engine) Clear() {
	e.current.Store(&state{status: EmptyStatus{}})
	e.log.Debug("lyrics cleared")
}

// Timeline returns the current timeline, nil when nothing is loaded
func (e *Engine) Timeline() *lrc.Timeline {
	return e.current.Load().timeline
}

// Lyrics returns the currently loaded lyrics
func (e *Engine) Lyrics() (source.Lyrics, bool) {
	l := e.current.Load().lyrics
	if l == nil {
		return source.Lyrics{}, false
	}
	return *l, true
}

// Status returns the query interface for the current lyrics
func (e *Engine) Status() Status {
	return e.current.Load().status
}

// SetSyncEnabled turns timed display on or off
func (e *Engine) SetSyncEnabled(enabled bool) {
	e.syncEnabled.Store(enabled)
}

// SyncEnabled reports whether timed display is on
func (e *Engine) SyncEnabled() bool {
	return e.syncEnabled.Load()
}

// Window selects the lines to show at nowMS.
// It returns false when sync is disabled and the full text should be shown.
func (e *Engine) Window(nowMS int64) (lrc.Window, bool) {
	w, synced, _ := e.Snapshot(nowMS)
	return w, synced
}

// Snapshot returns the window at nowMS together with the status of the same
// loaded lyrics, so a concurrent Load cannot mix two tracks in one result
func (e *Engine) Snapshot(nowMS int64) (lrc.Window, bool, Status) {
	st := e.current.Load()
	if !e.syncEnabled.Load() {
		return lrc.Window{Current: -1}, false, st.status
	}
	return lrc.Select(st.timeline, nowMS), true, st.status
}
