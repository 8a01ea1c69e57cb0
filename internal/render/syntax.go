package render

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/TimelordUK/lyricsync/pkg/lrc"
)

// LRC highlights raw lyric files: timestamps, offset and id tags
var LRC = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:      "LRC",
		Aliases:   []string{"lrc"},
		Filenames: []string{"*.lrc"},
		MimeTypes: []string{"application/x-lrc"},
	},
	func() chroma.Rules {
		return chroma.Rules{
			"root": {
				{Pattern: `\[\s*(?i:offset)\s*:[^\]\n]*\]`, Type: chroma.KeywordPseudo},
				{Pattern: `\[\s*\d+\s*:\s*\d+(?:\.\d+)?\s*\]`, Type: chroma.LiteralNumber},
				{Pattern: `\[\s*[A-Za-z#]+\s*:[^\]\n]*\]`, Type: chroma.NameAttribute},
				{Pattern: `\n`, Type: chroma.TextWhitespace},
				{Pattern: `[^\[\n]+`, Type: chroma.Text},
				{Pattern: `\[`, Type: chroma.Text},
			},
		}
	},
))

// SyntaxRenderer shows lyrics in their tagged source form with highlighting
type SyntaxRenderer struct {
	formatter   chroma.Formatter
	style       *chroma.Style
	syntaxTheme string
}

// NewSyntaxRenderer creates a highlighting renderer for a chroma style name.
// Unknown names fall back to chroma's default style.
func NewSyntaxRenderer(theme string) *SyntaxRenderer {
	return &SyntaxRenderer{
		formatter:   formatters.Get("terminal256"),
		style:       styles.Get(theme),
		syntaxTheme: theme,
	}
}

// Theme returns the configured style name
func (r *SyntaxRenderer) Theme() string {
	return r.syntaxTheme
}

// Render highlights a window line with its timestamp tag restored
func (r *SyntaxRenderer) Render(line lrc.WindowLine) string {
	if line.Role == lrc.RoleHeader {
		return r.RenderText("[ti:" + line.Text + "]")
	}
	return r.RenderText("[" + lrc.FormatTimestamp(line.TimestampMS) + "]" + line.Text)
}

// RenderText highlights one line of raw lyric text
func (r *SyntaxRenderer) RenderText(text string) string {
	if text == "" {
		return ""
	}

	it, err := LRC.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, it); err != nil {
		return text
	}

	// Remove any newlines the formatter adds
	highlighted := strings.ReplaceAll(buf.String(), "\n", "")
	return strings.ReplaceAll(highlighted, "\r", "")
}

// IsLyricsFile returns true if the file name is recognised as LRC
func IsLyricsFile(filename string) bool {
	l := lexers.Match(filename)
	return l != nil && l.Config().Name == LRC.Config().Name
}
