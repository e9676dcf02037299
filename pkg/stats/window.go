package stats

import "time"

// Window is a half-open time range [Start, End) that records must fall
// within to be counted.
type Window struct {
	Start time.Time
	End   time.Time
}

// YearWindow returns the window covering one calendar year in UTC.
func YearWindow(year int) Window {
	return Window{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether t falls within the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
