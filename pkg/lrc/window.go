package lrc

const (
	// MaxWindowLines caps the number of lines in a display window
	MaxWindowLines = 4

	// contextBefore is how many already-passed lines lead the window
	contextBefore = 2
)

// Role tells a renderer how to style a window line
type Role int

const (
	RoleContext Role = iota
	RoleCurrent
	RoleHeader
)

// String returns a short role name
func (r Role) String() string {
	switch r {
	case RoleCurrent:
		return "current"
	case RoleHeader:
		return "header"
	default:
		return "context"
	}
}

// WindowLine is a timeline entry selected for display
type WindowLine struct {
	TimedLine
	Index int // position in the source timeline
	Role  Role
}

// Window is the bounded set of lines to show at one playback instant
type Window struct {
	Lines []WindowLine

	// Current is the position in Lines of the current line, -1 for none
	Current int
}

// Empty reports whether nothing should be displayed
func (w Window) Empty() bool {
	return len(w.Lines) == 0
}

// CurrentLine returns the current line if there is one
func (w Window) CurrentLine() (WindowLine, bool) {
	if w.Current < 0 || w.Current >= len(w.Lines) {
		return WindowLine{}, false
	}
	return w.Lines[w.Current], true
}

// Equal reports whether two windows show the same lines with the same roles
func (w Window) Equal(other Window) bool {
	if w.Current != other.Current || len(w.Lines) != len(other.Lines) {
		return false
	}
	for i := range w.Lines {
		if w.Lines[i] != other.Lines[i] {
			return false
		}
	}
	return true
}

// Select returns the lines to display at nowMS.
// The reached line is the first entry not yet passed; the window starts up to
// two entries before it and holds at most four entries. Past the last entry
// the window is empty. Select never modifies the timeline.
func Select(t *Timeline, nowMS int64) Window {
	none := Window{Current: -1}
	if t.Len() == 0 {
		return none
	}

	reached := -1
	for i, line := range t.Lines {
		if line.TimestampMS >= nowMS {
			reached = i
			break
		}
	}
	if reached < 0 {
		return none
	}

	start := max(0, reached-contextBefore)
	end := min(reached+1, len(t.Lines)-1)

	w := Window{
		Lines:   make([]WindowLine, 0, MaxWindowLines),
		Current: 0,
	}
	if reached >= contextBefore {
		w.Current = 1
	}

	for i := start; i <= end && len(w.Lines) < MaxWindowLines; i++ {
		w.Lines = append(w.Lines, WindowLine{
			TimedLine: t.Lines[i],
			Index:     i,
			Role:      RoleContext,
		})
	}

	if t.IsTitle(start) {
		w.Lines[0].Role = RoleHeader
		if w.Current == 0 {
			w.Current = -1
		}
	}
	if w.Current >= 0 {
		w.Lines[w.Current].Role = RoleCurrent
	}

	return w
}
