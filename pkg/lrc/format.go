package lrc

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	clockInput   = regexp.MustCompile(`^(\d+):(\d+(?:\.\d+)?)$`)
	secondsInput = regexp.MustCompile(`^(\d+(?:\.\d+)?)$`)
)

// FormatTimestamp renders milliseconds as mm:ss.xx
func FormatTimestamp(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	return fmt.Sprintf("%s%02d:%02d.%02d", sign, ms/60000, (ms/1000)%60, (ms%1000)/10)
}

// ParseTimestamp parses user input such as "1:23", "01:23.45" or "83.5"
// into milliseconds, using the same truncation rule as timestamp tags
func ParseTimestamp(s string) (int64, error) {
	s = strings.TrimSpace(s)

	if m := clockInput.FindStringSubmatch(s); m != nil {
		return tagMillis(m[1], m[2])
	}
	if m := secondsInput.FindStringSubmatch(s); m != nil {
		return tagMillis("0", m[1])
	}
	return 0, fmt.Errorf("invalid time %q", s)
}

// FormatLRC renders a timeline back to LRC text with offsets already applied.
// The synthetic title entry is written as a [ti:] tag.
func FormatLRC(t *Timeline) string {
	if t == nil {
		return ""
	}

	var builder strings.Builder
	if t.Title != "" {
		fmt.Fprintf(&builder, "[ti:%s]\n", t.Title)
	}
	if t.Artist != "" {
		fmt.Fprintf(&builder, "[ar:%s]\n", t.Artist)
	}

	for _, line := range t.Real() {
		ms := line.TimestampMS
		if ms < 0 {
			ms = 0
		}
		fmt.Fprintf(&builder, "[%s]%s\n", FormatTimestamp(ms), line.Text)
	}
	return builder.String()
}
