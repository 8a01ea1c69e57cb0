package lrc

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// TitleMode selects how the track title is represented in a timeline
type TitleMode int

const (
	// TitleInject places a synthetic header entry at index 0
	TitleInject TitleMode = iota
	// TitleSeparate leaves the title out of the timeline
	TitleSeparate
)

// String returns the config name of the mode
func (m TitleMode) String() string {
	switch m {
	case TitleSeparate:
		return "separate"
	default:
		return "inject"
	}
}

// ParseTitleMode maps a config value to a TitleMode
func ParseTitleMode(s string) (TitleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inject":
		return TitleInject, nil
	case "separate":
		return TitleSeparate, nil
	}
	return TitleInject, fmt.Errorf("unknown title mode %q", s)
}

const (
	// titleSentinel is the header timestamp before it is reconciled with the lyrics
	titleSentinel int64 = -1

	// titleLead is how far the header is pulled ahead of an early first line
	titleLead int64 = 1000

	// maxTimestamp bounds every converted field so offset arithmetic cannot overflow
	maxTimestamp int64 = 1 << 53
)

var errOutOfRange = errors.New("value out of range")

// Parser converts raw lyric text into a Timeline
type Parser struct {
	titleMode TitleMode
	timeTag   *regexp.Regexp
	offsetTag *regexp.Regexp
}

// NewParser creates a parser for the given title mode
func NewParser(mode TitleMode) *Parser {
	return &Parser{
		titleMode: mode,
		// [mm:ss] or [mm:ss.fraction], whitespace tolerated inside the brackets
		timeTag: regexp.MustCompile(`\[\s*(\d+)\s*:\s*(\d+(?:\.\d+)?)\s*\]`),
		// [offset:+500], keyword is case-insensitive
		offsetTag: regexp.MustCompile(`(?i)\[\s*offset\s*:\s*([+-]?\d+)\s*\]`),
	}
}

// TitleMode returns the parser's title mode
func (p *Parser) TitleMode() TitleMode {
	return p.titleMode
}

// Parse builds a sorted timeline from raw lyric text.
// Lines without a timestamp tag are dropped. Tags whose numbers cannot be
// converted are skipped and reported in Timeline.Issues.
func (p *Parser) Parse(title, artist, raw string) *Timeline {
	tl := &Timeline{
		Title:  title,
		Artist: artist,
	}

	var lines []TimedLine
	var offset int64

	for n, line := range strings.Split(raw, "\n") {
		line = strings.Trim(line, " \t\r")
		if line == "" {
			continue
		}

		// Offset directives are never lyric content; the last one wins
		if m := p.offsetTag.FindStringSubmatch(line); m != nil {
			v, err := parseOffset(m[1])
			if err != nil {
				tl.Issues = append(tl.Issues, Issue{Line: n + 1, Tag: m[0], Err: err})
				continue
			}
			offset = v
			continue
		}

		matches := p.timeTag.FindAllStringSubmatchIndex(line, -1)
		if len(matches) == 0 {
			continue
		}

		// Every tag on the line shares the text after the last tag
		last := matches[len(matches)-1]
		text := strings.TrimLeft(line[last[1]:], " \t")

		for _, m := range matches {
			ms, err := tagMillis(line[m[2]:m[3]], line[m[4]:m[5]])
			if err != nil {
				tl.Issues = append(tl.Issues, Issue{Line: n + 1, Tag: line[m[0]:m[1]], Err: err})
				continue
			}
			lines = append(lines, TimedLine{TimestampMS: ms, Text: text})
		}
	}

	for i := range lines {
		lines[i].TimestampMS -= offset
	}
	slices.SortStableFunc(lines, func(a, b TimedLine) int {
		return cmp.Compare(a.TimestampMS, b.TimestampMS)
	})

	if p.titleMode != TitleInject {
		tl.Lines = lines
		return tl
	}

	header := TimedLine{TimestampMS: titleSentinel, Text: title}
	if len(lines) > 0 && lines[0].TimestampMS <= header.TimestampMS {
		header.TimestampMS = lines[0].TimestampMS - titleLead
	}

	tl.Lines = make([]TimedLine, 0, len(lines)+1)
	tl.Lines = append(tl.Lines, header)
	tl.Lines = append(tl.Lines, lines...)
	tl.HasTitle = true
	return tl
}

// tagMillis converts the minute and second fields of a timestamp tag.
// The fraction is truncated to whole milliseconds using integer arithmetic.
func tagMillis(minStr, secStr string) (int64, error) {
	minutes, err := strconv.ParseInt(minStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: minutes: %v", ErrMalformedTag, err)
	}

	whole, frac, _ := strings.Cut(secStr, ".")
	seconds, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: seconds: %v", ErrMalformedTag, err)
	}

	if minutes > maxTimestamp/60000 || seconds > maxTimestamp/1000 {
		return 0, fmt.Errorf("%w: %v", ErrMalformedTag, errOutOfRange)
	}

	var millis int64
	if frac != "" {
		frac = (frac + "00")[:3]
		millis, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: fraction: %v", ErrMalformedTag, err)
		}
	}

	return minutes*60000 + seconds*1000 + millis, nil
}

func parseOffset(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: offset: %v", ErrMalformedTag, err)
	}
	if v > maxTimestamp || v < -maxTimestamp {
		return 0, fmt.Errorf("%w: offset: %v", ErrMalformedTag, errOutOfRange)
	}
	return v, nil
}
