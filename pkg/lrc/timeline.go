package lrc

import (
	"errors"
	"fmt"
)

// ErrMalformedTag marks a tag that matched the bracket grammar but whose
// numeric fields could not be converted
var ErrMalformedTag = errors.New("malformed tag")

// TimedLine is one entry of a timeline
type TimedLine struct {
	TimestampMS int64  // milliseconds from track start, negative only for the title
	Text        string // may be empty for instrumental gaps
}

// Issue records a tag that was skipped while parsing
type Issue struct {
	Line int    // 1-based line number in the raw text
	Tag  string // the offending tag as written
	Err  error
}

// String formats the issue for logs
func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s: %v", i.Line, i.Tag, i.Err)
}

// Timeline is the sorted result of one parse pass.
// It is never mutated after Parse returns; a new parse produces a new Timeline.
type Timeline struct {
	Lines  []TimedLine
	Title  string
	Artist string

	// HasTitle reports that Lines[0] is the synthetic header entry
	HasTitle bool

	// Issues lists tags that were dropped
	Issues []Issue
}

// Len returns the number of entries including the title entry
func (t *Timeline) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Lines)
}

// At returns the entry at index i
func (t *Timeline) At(i int) TimedLine {
	return t.Lines[i]
}

// IsTitle reports whether index i is the synthetic header entry
func (t *Timeline) IsTitle(i int) bool {
	return t != nil && t.HasTitle && i == 0
}

// Real returns the timed lyric entries without the title entry
func (t *Timeline) Real() []TimedLine {
	if t == nil {
		return nil
	}
	if t.HasTitle && len(t.Lines) > 0 {
		return t.Lines[1:]
	}
	return t.Lines
}

// Empty reports whether the timeline holds no timed lyric lines
func (t *Timeline) Empty() bool {
	return len(t.Real()) == 0
}

// Duration returns the timestamp of the last entry, or 0 for an empty timeline
func (t *Timeline) Duration() int64 {
	lines := t.Real()
	if len(lines) == 0 {
		return 0
	}
	return lines[len(lines)-1].TimestampMS
}
