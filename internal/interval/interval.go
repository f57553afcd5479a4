// Package interval implements half-open [start, end) arithmetic over
// UTC time windows. It is the pure core of availability resolution:
// the application layer expands weekly shift templates into windows
// and uses Subtract to puncture them with time-off exceptions.
package interval

import "time"

// Window is a half-open [Start, End) span of absolute UTC instants.
type Window struct {
	Start time.Time
	End   time.Time
}

// IsValid reports whether the window has strictly positive duration.
func (w Window) IsValid() bool {
	return w.Start.Before(w.End)
}

// Duration returns End - Start.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps reports whether two half-open spans intersect. Touching
// boundaries (aEnd == bStart or bEnd == aStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Subtract removes every hole from every window, splitting windows into
// surviving segments. Holes apply cumulatively in input order; a hole
// that covers a segment eliminates it, a hole strictly inside a segment
// splits it in two. After all holes are applied, segments shorter than
// floor are dropped. Windows are processed independently, so output
// order follows input window order and segments are never merged across
// windows.
func Subtract(windows []Window, holes []Window, floor time.Duration) []Window {
	if len(windows) == 0 {
		return nil
	}

	result := make([]Window, 0, len(windows))
	for _, window := range windows {
		segments := []Window{window}
		for _, hole := range holes {
			if !hole.IsValid() {
				continue
			}
			segments = subtractHole(segments, hole)
		}
		for _, segment := range segments {
			if segment.Duration() >= floor && segment.IsValid() {
				result = append(result, segment)
			}
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

func subtractHole(segments []Window, hole Window) []Window {
	pieces := make([]Window, 0, len(segments))
	for _, seg := range segments {
		if !Overlaps(seg.Start, seg.End, hole.Start, hole.End) {
			pieces = append(pieces, seg)
			continue
		}
		if seg.Start.Before(hole.Start) {
			end := hole.Start
			if seg.End.Before(end) {
				end = seg.End
			}
			pieces = append(pieces, Window{Start: seg.Start, End: end})
		}
		if seg.End.After(hole.End) {
			start := hole.End
			if seg.Start.After(start) {
				start = seg.Start
			}
			pieces = append(pieces, Window{Start: start, End: seg.End})
		}
	}
	return pieces
}

// Bounds returns the minimum start and maximum end across the windows.
// The second return value is false when windows is empty.
func Bounds(windows []Window) (Window, bool) {
	if len(windows) == 0 {
		return Window{}, false
	}
	bounds := windows[0]
	for _, w := range windows[1:] {
		if w.Start.Before(bounds.Start) {
			bounds.Start = w.Start
		}
		if w.End.After(bounds.End) {
			bounds.End = w.End
		}
	}
	return bounds, true
}
