package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/TimelordUK/lyricsync/internal/config"
	"github.com/TimelordUK/lyricsync/internal/engine"
	"github.com/TimelordUK/lyricsync/internal/player"
	"github.com/TimelordUK/lyricsync/internal/source"
	"github.com/TimelordUK/lyricsync/pkg/lrc"
)

// trackTail keeps the clock running a little past the last lyric line
const trackTail = 5000

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeGoto
)

// FrameMsg delivers a poller frame to the program
type FrameMsg engine.Frame

// lyricsMsg is the result of a lookup or refresh
type lyricsMsg struct {
	track  source.Track
	lyrics *source.Lyrics
	err    error
}

// savedMsg is the result of storing lyrics locally
type savedMsg struct {
	lyrics source.Lyrics
	err    error
}

// Options configures a Model
type Options struct {
	Config *config.Config
	Engine *engine.Engine
	Clock  *player.Clock
	Chain  *source.Chain
	Files  *source.FileProvider
	Log    *zap.Logger

	// Track is looked up through Chain on start unless lyrics are already loaded
	Track source.Track

	// Poll produces a frame on demand, usually engine.Poller.Poll
	Poll func() engine.Frame
}

// Model is the main application model
type Model struct {
	cfg    *config.Config
	engine *engine.Engine
	clock  *player.Clock
	chain  *source.Chain
	files  *source.FileProvider
	log    *zap.Logger
	poll   func() engine.Frame

	pane  *Pane
	input textinput.Model

	mode   Mode
	width  int
	height int

	track   source.Track
	frame   engine.Frame
	busy    bool
	message string

	// ended holds the lyrics cleared at track end so a restart can replay them
	ended *source.Lyrics
}

// NewModel creates a new application model
func NewModel(opts Options) *Model {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.CharLimit = 64

	m := &Model{
		cfg:    opts.Config,
		engine: opts.Engine,
		clock:  opts.Clock,
		chain:  opts.Chain,
		files:  opts.Files,
		log:    log,
		poll:   opts.Poll,
		pane:   NewPane(opts.Config),
		input:  ti,
		mode:   ModeNormal,
		track:  opts.Track,
	}
	if m.poll == nil {
		m.poll = m.localPoll
	}
	if tl := m.engine.Timeline(); tl != nil {
		m.track = source.Track{Title: tl.Title, Artist: tl.Artist, Album: m.track.Album}
	}

	m.refreshFrame()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if m.engine.Status().Kind() != engine.StatusEmpty || m.chain == nil {
		return nil
	}
	m.busy = true
	m.refreshFrame()
	return m.lookup(m.chain.Match)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve 2 lines for status bar
		m.pane.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case FrameMsg:
		m.showFrame(engine.Frame(msg))
		return m, nil

	case lyricsMsg:
		m.busy = false
		if msg.err != nil {
			m.engine.Fail(msg.track, msg.err)
			m.message = "lookup failed"
		} else {
			tl := m.engine.Load(*msg.lyrics)
			m.clock.SetDuration(tl.Duration() + trackTail)
			m.message = fmt.Sprintf("loaded from %s", msg.lyrics.Provider)
		}
		m.refreshFrame()
		return m, nil

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			m.log.Warn("saving lyrics failed", zap.Error(msg.err))
			m.message = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.engine.Load(msg.lyrics)
		m.message = "saved " + msg.lyrics.Path
		m.refreshFrame()
		return m, nil
	}

	return m, nil
}

func keyMatches(key string, bindings []string) bool {
	return slices.Contains(bindings, key)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle mode-specific input
	if m.mode == ModeSearch {
		return m.handleSearchKey(msg)
	}
	if m.mode == ModeGoto {
		return m.handleGotoKey(msg)
	}

	keys := m.cfg.Keybindings
	key := msg.String()
	step := int64(m.cfg.Display.SeekStepMs)

	switch {
	case keyMatches(key, keys.Quit):
		return m, tea.Quit

	case keyMatches(key, keys.Pause):
		m.clock.Toggle()
	case keyMatches(key, keys.SeekForward):
		m.clock.SeekBy(step)
	case keyMatches(key, keys.SeekBack):
		m.clock.SeekBy(-step)
	case keyMatches(key, keys.Restart):
		m.restart()

	case keyMatches(key, keys.ToggleSync):
		m.engine.SetSyncEnabled(!m.engine.SyncEnabled())
	case keyMatches(key, keys.ToggleRaw):
		m.pane.ToggleRaw()

	case keyMatches(key, keys.ScrollDown):
		m.pane.ScrollDown(1)
	case keyMatches(key, keys.ScrollUp):
		m.pane.ScrollUp(1)
	case keyMatches(key, keys.PageDown):
		m.pane.PageDown()
	case keyMatches(key, keys.PageUp):
		m.pane.PageUp()
	case keyMatches(key, keys.Bottom):
		m.pane.GotoBottom()

	case keyMatches(key, keys.Refresh):
		return m, m.refresh()
	case keyMatches(key, keys.Save):
		return m, m.save()

	case keyMatches(key, keys.Goto):
		m.mode = ModeGoto
		m.input.SetValue("")
		m.input.Placeholder = "mm:ss"
		m.input.Focus()
		return m, textinput.Blink

	case key == "/":
		m.mode = ModeSearch
		m.input.SetValue("")
		m.input.Placeholder = "Search..."
		m.input.Focus()
		return m, textinput.Blink
	case key == "n":
		m.pane.NextSearchResult()
	case key == "N":
		m.pane.PrevSearchResult()
	case key == "esc":
		m.pane.ClearSearch()
		m.message = ""
	}

	m.refreshFrame()
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.pane.PerformSearch(m.input.Value())
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if ms, err := lrc.ParseTimestamp(m.input.Value()); err != nil {
			m.message = err.Error()
		} else {
			m.clock.SeekTo(ms)
			m.refreshFrame()
		}
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh re-fetches remote lyrics when the status allows it
func (m *Model) refresh() tea.Cmd {
	if m.busy || m.chain == nil || !m.chain.HasRemote() || !m.engine.Status().CanRefresh() {
		return nil
	}
	m.busy = true
	m.message = "refreshing..."
	return m.lookup(m.chain.Refresh)
}

// lookup runs a chain query off the UI goroutine
func (m *Model) lookup(match func(context.Context, source.Track) (*source.Lyrics, error)) tea.Cmd {
	track := m.track
	timeout := m.cfg.Timeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		lyrics, err := match(ctx, track)
		return lyricsMsg{track: track, lyrics: lyrics, err: err}
	}
}

// save stores remote lyrics in the local cache when the status allows it
func (m *Model) save() tea.Cmd {
	lyrics, ok := m.engine.Lyrics()
	if m.busy || m.files == nil || !ok || !m.engine.Status().CanSave() {
		return nil
	}
	m.busy = true
	files := m.files

	return func() tea.Msg {
		path, err := files.Save(lyrics)
		if err != nil {
			return savedMsg{err: err}
		}
		lyrics.Kind = source.KindLocal
		lyrics.Provider = files.Name()
		lyrics.Path = path
		lyrics.EditURI = ""
		return savedMsg{lyrics: lyrics}
	}
}

// refreshFrame redraws immediately instead of waiting for the next tick
func (m *Model) refreshFrame() {
	m.showFrame(m.poll())
}

func (m *Model) localPoll() engine.Frame {
	pos := m.clock.PositionMS()
	window, synced, status := m.engine.Snapshot(pos)
	return engine.Frame{
		PositionMS: pos,
		Synced:     synced,
		Window:     window,
		Status:     status,
	}
}

func (m *Model) showFrame(f engine.Frame) {
	if f.Status.HasLyrics() && m.clock.Ended() {
		m.endTrack()
		f = m.poll()
	}

	if f.Synced && !f.Window.Equal(m.frame.Window) {
		if cur, ok := f.Window.CurrentLine(); ok {
			m.log.Debug("current line",
				zap.Int("index", cur.Index),
				zap.Int64("at", cur.TimestampMS),
			)
		}
	}

	m.frame = f
	m.pane.SetEmptyMessage(m.emptyMessage(f.Status))
	m.pane.ShowFrame(f, m.plainText(), m.rawText())
}

// endTrack drops the lyrics once the clock reaches the end of the track
func (m *Model) endTrack() {
	if lyrics, ok := m.engine.Lyrics(); ok {
		m.ended = &lyrics
	}
	m.engine.Clear()
	m.clock.Pause()
	m.message = "track ended"
	m.log.Info("track ended", zap.String("track", m.track.String()))
}

// restart rewinds, replaying the last lyrics if the track had ended
func (m *Model) restart() {
	m.clock.SeekTo(0)
	if m.ended == nil {
		return
	}

	m.engine.Load(*m.ended)
	m.ended = nil
	m.message = ""
	m.clock.Play()
}

// plainText is the lyric text without tags, falling back to the raw text
// for lyrics that carry no timestamps
func (m *Model) plainText() string {
	tl := m.engine.Timeline()
	lines := tl.Real()
	if len(lines) == 0 {
		return m.rawText()
	}

	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}

func (m *Model) rawText() string {
	lyrics, _ := m.engine.Lyrics()
	return lyrics.Text
}

func (m *Model) emptyMessage(status engine.Status) string {
	switch {
	case m.busy:
		return "searching for lyrics..."
	case status.Kind() == engine.StatusError:
		return "lyrics unavailable: " + status.Err().Error()
	case status.Kind() == engine.StatusEmpty && m.ended != nil:
		return "track ended"
	case status.Kind() == engine.StatusEmpty:
		return "no lyrics"
	}
	return ""
}

// View implements tea.Model
func (m *Model) View() string {
	var builder strings.Builder

	// Main content
	builder.WriteString(m.pane.Render())
	builder.WriteString("\n")

	// Status bar
	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(m.cfg.Theme.StatusBar)).
		Foreground(lipgloss.Color(m.cfg.Theme.StatusBarText)).
		Width(m.width)

	var status string
	switch m.mode {
	case ModeSearch:
		status = "/" + m.input.View()
	case ModeGoto:
		status = ":" + m.input.View()
	default:
		status = m.statusLine()
	}

	builder.WriteString(statusStyle.Render(status))
	builder.WriteString("\n")

	// Help line
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.Theme.Artist))
	builder.WriteString(helpStyle.Render(m.helpLine()))

	return builder.String()
}

func (m *Model) statusLine() string {
	track := m.track.Title
	if m.cfg.Display.ShowArtist && m.track.Artist != "" {
		track = m.track.String()
	}

	state := "playing"
	if m.clock.Paused() {
		state = "paused"
	}

	display := "sync"
	if !m.frame.Synced {
		display = "text"
		if m.pane.IsRaw() {
			display = "raw"
		}
	}

	src := m.frame.Status.Kind().String()
	if rs, ok := m.frame.Status.(engine.RemoteStatus); ok {
		src += ":" + rs.Provider()
	}

	line := fmt.Sprintf(" %s  %s  %s  [%s]  %s",
		track, lrc.FormatTimestamp(m.frame.PositionMS), state, src, display)

	if !m.frame.Synced {
		line += fmt.Sprintf("  %.0f%%", m.pane.PercentScrolled())
	}
	if term := m.pane.SearchTerm(); term != "" {
		line += fmt.Sprintf("  [%d matches]", len(m.pane.SearchResults()))
	}
	if m.message != "" {
		line += "  " + m.message
	}
	return line
}

// helpLine lists the actions the current lyrics allow
func (m *Model) helpLine() string {
	status := m.frame.Status
	help := []string{"space:pause", "h/l:seek", "::goto", "s:sync", "t:raw"}
	if !m.frame.Synced {
		help = append(help, "j/k:scroll", "f/b:page", "G:end")
	}

	if status.CanRefresh() && m.chain != nil && m.chain.HasRemote() {
		help = append(help, "r:refresh")
	}
	if status.CanSave() {
		help = append(help, "w:save")
	}
	if status.CanEdit() {
		if rs, ok := status.(engine.RemoteStatus); ok {
			help = append(help, "edit at "+rs.EditURI())
		}
	}
	help = append(help, "q:quit")
	return strings.Join(help, "  ")
}

// Frame returns the last displayed frame
func (m *Model) Frame() engine.Frame {
	return m.frame
}

// Mode returns the current input mode
func (m *Model) Mode() Mode {
	return m.mode
}
