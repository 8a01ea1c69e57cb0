package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/lyricsync/internal/config"
	"github.com/TimelordUK/lyricsync/pkg/lrc"
)

// Renderer applies styling to lyric lines
type Renderer interface {
	// Render styles a line selected for the synced display
	Render(line lrc.WindowLine) string
	// RenderText styles one line of the unsynced full text
	RenderText(text string) string
}

// RoleRenderer colors window lines by their role
type RoleRenderer struct {
	styles        map[lrc.Role]lipgloss.Style
	text          lipgloss.Style
	stamp         lipgloss.Style
	showTimestamp bool
}

// NewRoleRenderer creates a renderer with config
func NewRoleRenderer(cfg *config.Config) *RoleRenderer {
	styles := map[lrc.Role]lipgloss.Style{
		lrc.RoleContext: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Context)),
		lrc.RoleCurrent: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Current)).Bold(true),
		lrc.RoleHeader:  lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Header)).Bold(true).Underline(true),
	}

	return &RoleRenderer{
		styles:        styles,
		text:          lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Header)),
		stamp:         lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Artist)),
		showTimestamp: cfg.Display.ShowTimestamp,
	}
}

// Render applies role styling to a line
func (r *RoleRenderer) Render(line lrc.WindowLine) string {
	out := r.styles[line.Role].Render(line.Text)
	if r.showTimestamp && line.Role != lrc.RoleHeader {
		out = r.stamp.Render(lrc.FormatTimestamp(line.TimestampMS)+" ") + out
	}
	return out
}

// RenderText styles unsynced text
func (r *RoleRenderer) RenderText(text string) string {
	return r.text.Render(text)
}

// PlainRenderer renders without styling
type PlainRenderer struct{}

// NewPlainRenderer creates a plain renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// Render returns the line text as-is
func (r *PlainRenderer) Render(line lrc.WindowLine) string {
	return line.Text
}

// RenderText returns text as-is
func (r *PlainRenderer) RenderText(text string) string {
	return text
}
