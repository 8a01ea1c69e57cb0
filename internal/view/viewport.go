package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/lyricsync/internal/render"
	"github.com/TimelordUK/lyricsync/pkg/lrc"
)

// Mode selects what the viewport shows
type Mode int

const (
	// ModeSynced shows the highlight window
	ModeSynced Mode = iota
	// ModeText shows the full lyric text with scrolling
	ModeText
)

// Viewport manages the visible portion of the lyrics.
// It knows nothing about timing or sources; it only lays out what it is given.
type Viewport struct {
	renderer render.Renderer
	mode     Mode

	// Dimensions
	width  int
	height int

	// Synced content
	window lrc.Window

	// Text content and scroll position
	text         []string
	scrollOffset int

	// Styling
	lineNumberStyle lipgloss.Style
	emptyStyle      lipgloss.Style

	// Options
	center          bool
	showLineNumbers bool
	emptyMessage    string
}

// NewViewport creates a new viewport
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:           width,
		height:          height,
		window:          lrc.Window{Current: -1},
		center:          true,
		lineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		emptyStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		renderer:        render.NewPlainRenderer(),
	}
}

// SetRenderer sets the line renderer
func (v *Viewport) SetRenderer(r render.Renderer) {
	v.renderer = r
}

// SetCenter toggles horizontal centering of lines
func (v *Viewport) SetCenter(center bool) {
	v.center = center
}

// SetShowLineNumbers toggles line numbers in text mode
func (v *Viewport) SetShowLineNumbers(show bool) {
	v.showLineNumbers = show
}

// SetEmptyMessage sets what is shown when there is nothing to display
func (v *Viewport) SetEmptyMessage(msg string) {
	v.emptyMessage = msg
}

// SetWindow switches to synced mode and shows w
func (v *Viewport) SetWindow(w lrc.Window) {
	v.mode = ModeSynced
	v.window = w
}

// SetText switches to text mode; the scroll position is kept when the
// text is unchanged
func (v *Viewport) SetText(text string) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if text == "" {
		lines = nil
	}

	if !slices.Equal(lines, v.text) {
		v.text = lines
		v.scrollOffset = 0
	}
	v.mode = ModeText
}

// Mode returns the current display mode
func (v *Viewport) Mode() Mode {
	return v.mode
}

// SetSize updates viewport dimensions
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// ScrollDown scrolls down by n lines
func (v *Viewport) ScrollDown(n int) {
	v.scrollOffset += n
	v.clampScroll()
}

// ScrollUp scrolls up by n lines
func (v *Viewport) ScrollUp(n int) {
	v.scrollOffset -= n
	v.clampScroll()
}

// PageDown scrolls down by one page
func (v *Viewport) PageDown() {
	v.ScrollDown(v.height - 1)
}

// PageUp scrolls up by one page
func (v *Viewport) PageUp() {
	v.ScrollUp(v.height - 1)
}

// GotoTop scrolls to the beginning
func (v *Viewport) GotoTop() {
	v.scrollOffset = 0
}

// GotoBottom scrolls to the end
func (v *Viewport) GotoBottom() {
	v.scrollOffset = len(v.text) - v.height
	v.clampScroll()
}

// CurrentLine returns the current top line number in text mode
func (v *Viewport) CurrentLine() int {
	return v.scrollOffset
}

// clampScroll ensures scroll offset is within valid bounds
func (v *Viewport) clampScroll() {
	maxScroll := max(len(v.text)-v.height, 0)

	if v.scrollOffset > maxScroll {
		v.scrollOffset = maxScroll
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// Render returns the viewport content as a string of exactly height lines
func (v *Viewport) Render() string {
	if v.height <= 0 {
		return ""
	}

	var lines []string
	switch v.mode {
	case ModeText:
		lines = v.renderText()
	default:
		lines = v.renderWindow()
	}

	if len(lines) == 0 && v.emptyMessage != "" {
		lines = []string{v.place(v.emptyStyle.Render(v.emptyMessage))}
	}
	return strings.Join(v.pad(lines), "\n")
}

// renderWindow lays out the highlight window, vertically centered
func (v *Viewport) renderWindow() []string {
	lines := make([]string, 0, len(v.window.Lines))
	for _, line := range v.window.Lines {
		lines = append(lines, v.place(v.renderer.Render(line)))
	}
	return lines
}

func (v *Viewport) renderText() []string {
	end := min(v.scrollOffset+v.height, len(v.text))
	if v.scrollOffset >= end {
		return nil
	}

	numWidth := len(fmt.Sprintf("%d", len(v.text)))
	lines := make([]string, 0, end-v.scrollOffset)
	for i := v.scrollOffset; i < end; i++ {
		content := v.renderer.RenderText(v.text[i])
		if v.showLineNumbers {
			content = v.lineNumberStyle.Render(fmt.Sprintf("%*d ", numWidth, i+1)) + content
		}
		lines = append(lines, v.place(content))
	}
	return lines
}

// place centers a rendered line when centering is on
func (v *Viewport) place(s string) string {
	if !v.center || v.width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(v.width, lipgloss.Center, s)
}

// pad fills the viewport height; synced content sits in the middle
func (v *Viewport) pad(lines []string) []string {
	if len(lines) > v.height {
		lines = lines[:v.height]
	}

	top := 0
	if v.mode == ModeSynced || len(v.text) == 0 {
		top = (v.height - len(lines)) / 2
	}

	out := make([]string, 0, v.height)
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	out = append(out, lines...)
	for len(out) < v.height {
		out = append(out, "")
	}
	return out
}

// PercentScrolled returns how far through the text we are
func (v *Viewport) PercentScrolled() float64 {
	total := len(v.text)
	if total == 0 {
		return 0
	}
	if total <= v.height {
		return 100
	}

	return float64(v.scrollOffset) / float64(total-v.height) * 100
}
