package ui

import (
	"strings"

	"github.com/TimelordUK/lyricsync/internal/config"
	"github.com/TimelordUK/lyricsync/internal/engine"
	"github.com/TimelordUK/lyricsync/internal/render"
	"github.com/TimelordUK/lyricsync/internal/view"
)

// Pane is the lyrics display: a viewport plus the renderers and search
// state that go with it
type Pane struct {
	viewport *view.Viewport
	styled   render.Renderer
	syntax   *render.SyntaxRenderer

	// raw shows the tagged source text when sync is off
	raw  bool
	text string

	// Search state
	searchTerm    string
	searchResults []int // text line numbers with matches
	searchIndex   int   // current result index
}

// NewPane creates a pane styled from config
func NewPane(cfg *config.Config) *Pane {
	vp := view.NewViewport(80, 20)
	vp.SetCenter(cfg.Display.Center)

	styled := render.NewRoleRenderer(cfg)
	vp.SetRenderer(styled)

	return &Pane{
		viewport: vp,
		styled:   styled,
		syntax:   render.NewSyntaxRenderer(cfg.Theme.SyntaxTheme),
	}
}

// SetSize updates pane dimensions
func (p *Pane) SetSize(width, height int) {
	p.viewport.SetSize(width, height)
}

// Render renders the pane content
func (p *Pane) Render() string {
	return p.viewport.Render()
}

// ShowFrame displays a poll frame. Unsynced frames show text instead of the
// window; raw text is highlighted as LRC source.
func (p *Pane) ShowFrame(f engine.Frame, plain, raw string) {
	switch {
	case f.Synced:
		// search still runs over the text the unsynced view would show
		p.text = plain
		p.viewport.SetRenderer(p.styled)
		p.viewport.SetShowLineNumbers(false)
		p.viewport.SetWindow(f.Window)
	case p.raw:
		p.text = raw
		p.viewport.SetRenderer(p.syntax)
		p.viewport.SetShowLineNumbers(true)
		p.viewport.SetText(raw)
	default:
		p.text = plain
		p.viewport.SetRenderer(p.styled)
		p.viewport.SetShowLineNumbers(false)
		p.viewport.SetText(plain)
	}
}

// SetEmptyMessage sets the text shown when there is nothing to display
func (p *Pane) SetEmptyMessage(msg string) {
	p.viewport.SetEmptyMessage(msg)
}

// ToggleRaw switches unsynced display between plain and tagged text
func (p *Pane) ToggleRaw() bool {
	p.raw = !p.raw
	p.ClearSearch()
	return p.raw
}

// IsRaw reports whether tagged text is shown
func (p *Pane) IsRaw() bool {
	return p.raw
}

// ScrollDown scrolls the text view
func (p *Pane) ScrollDown(n int) {
	p.viewport.ScrollDown(n)
}

// ScrollUp scrolls the text view
func (p *Pane) ScrollUp(n int) {
	p.viewport.ScrollUp(n)
}

// PageDown scrolls the text view by one page
func (p *Pane) PageDown() {
	p.viewport.PageDown()
}

// PageUp scrolls the text view back by one page
func (p *Pane) PageUp() {
	p.viewport.PageUp()
}

// GotoBottom scrolls the text view to the end
func (p *Pane) GotoBottom() {
	p.viewport.GotoBottom()
}

// PercentScrolled returns how far through the text view we are
func (p *Pane) PercentScrolled() float64 {
	return p.viewport.PercentScrolled()
}

// SearchTerm returns the current search term
func (p *Pane) SearchTerm() string {
	return p.searchTerm
}

// SearchResults returns matching line numbers
func (p *Pane) SearchResults() []int {
	return p.searchResults
}

// PerformSearch finds lines of the displayed text containing term,
// ignoring case, and scrolls to the first one
func (p *Pane) PerformSearch(term string) {
	p.searchTerm = term
	p.searchResults = nil
	p.searchIndex = 0
	if term == "" {
		return
	}

	needle := strings.ToLower(term)
	for i, line := range strings.Split(p.text, "\n") {
		if strings.Contains(strings.ToLower(line), needle) {
			p.searchResults = append(p.searchResults, i)
		}
	}

	if len(p.searchResults) > 0 {
		p.gotoResult()
	}
}

// NextSearchResult moves to the next match
func (p *Pane) NextSearchResult() {
	if len(p.searchResults) == 0 {
		return
	}
	p.searchIndex = (p.searchIndex + 1) % len(p.searchResults)
	p.gotoResult()
}

// PrevSearchResult moves to the previous match
func (p *Pane) PrevSearchResult() {
	if len(p.searchResults) == 0 {
		return
	}
	p.searchIndex--
	if p.searchIndex < 0 {
		p.searchIndex = len(p.searchResults) - 1
	}
	p.gotoResult()
}

// ClearSearch clears the search state
func (p *Pane) ClearSearch() {
	p.searchTerm = ""
	p.searchResults = nil
	p.searchIndex = 0
}

func (p *Pane) gotoResult() {
	p.viewport.GotoTop()
	p.viewport.ScrollDown(p.searchResults[p.searchIndex])
}
