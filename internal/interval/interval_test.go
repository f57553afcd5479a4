package interval

import (
	"testing"
	"time"
)

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2024, 3, 14, hour, min, 0, 0, time.UTC)
}

func TestOverlaps_HalfOpenSemantics(t *testing.T) {
	t.Parallel()

	if Overlaps(at(t, 9, 0), at(t, 12, 0), at(t, 12, 0), at(t, 13, 0)) {
		t.Fatalf("touching end/start must not overlap")
	}
	if Overlaps(at(t, 12, 0), at(t, 13, 0), at(t, 9, 0), at(t, 12, 0)) {
		t.Fatalf("touching start/end must not overlap")
	}
	if !Overlaps(at(t, 9, 0), at(t, 12, 0), at(t, 11, 59), at(t, 13, 0)) {
		t.Fatalf("one-minute intersection must overlap")
	}
}

func TestSubtract_HoleInsideSplitsWindow(t *testing.T) {
	t.Parallel()

	windows := []Window{{Start: at(t, 9, 0), End: at(t, 17, 0)}}
	holes := []Window{{Start: at(t, 12, 0), End: at(t, 13, 0)}}

	got := Subtract(windows, holes, time.Minute)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got))
	}
	if !got[0].Start.Equal(at(t, 9, 0)) || !got[0].End.Equal(at(t, 12, 0)) {
		t.Fatalf("unexpected first segment: %v", got[0])
	}
	if !got[1].Start.Equal(at(t, 13, 0)) || !got[1].End.Equal(at(t, 17, 0)) {
		t.Fatalf("unexpected second segment: %v", got[1])
	}
}

func TestSubtract_ContainingHoleEliminatesWindow(t *testing.T) {
	t.Parallel()

	windows := []Window{{Start: at(t, 9, 0), End: at(t, 17, 0)}}
	holes := []Window{{Start: at(t, 9, 0), End: at(t, 17, 0)}}

	if got := Subtract(windows, holes, time.Minute); got != nil {
		t.Fatalf("expected no surviving segments, got %v", got)
	}
}

func TestSubtract_TouchingHoleLeavesWindowIntact(t *testing.T) {
	t.Parallel()

	windows := []Window{{Start: at(t, 9, 0), End: at(t, 17, 0)}}
	holes := []Window{{Start: at(t, 7, 0), End: at(t, 9, 0)}}

	got := Subtract(windows, holes, time.Minute)
	if len(got) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(got))
	}
	if !got[0].Start.Equal(at(t, 9, 0)) || !got[0].End.Equal(at(t, 17, 0)) {
		t.Fatalf("window should be untouched, got %v", got[0])
	}
}

func TestSubtract_DropsSubMinuteRemainders(t *testing.T) {
	t.Parallel()

	// Hole leaves a 30 second sliver at the front of the window.
	sliverEnd := at(t, 9, 0).Add(30 * time.Second)
	windows := []Window{{Start: at(t, 9, 0), End: at(t, 17, 0)}}
	holes := []Window{{Start: sliverEnd, End: at(t, 17, 0)}}

	if got := Subtract(windows, holes, time.Minute); got != nil {
		t.Fatalf("expected sub-minute remainder to be dropped, got %v", got)
	}
}

func TestSubtract_KeepsExactlyOneMinute(t *testing.T) {
	t.Parallel()

	windows := []Window{{Start: at(t, 9, 0), End: at(t, 17, 0)}}
	holes := []Window{{Start: at(t, 9, 1), End: at(t, 17, 0)}}

	got := Subtract(windows, holes, time.Minute)
	if len(got) != 1 {
		t.Fatalf("expected one-minute segment to survive, got %v", got)
	}
	if got[0].Duration() != time.Minute {
		t.Fatalf("expected exactly one minute, got %v", got[0].Duration())
	}
}

func TestSubtract_CumulativeHoles(t *testing.T) {
	t.Parallel()

	windows := []Window{{Start: at(t, 9, 0), End: at(t, 17, 0)}}
	holes := []Window{
		{Start: at(t, 10, 0), End: at(t, 11, 0)},
		{Start: at(t, 14, 0), End: at(t, 15, 0)},
	}

	got := Subtract(windows, holes, time.Minute)
	if len(got) != 3 {
		t.Fatalf("expected 3 segments, got %d: %v", len(got), got)
	}
	wantEnds := []struct{ start, end time.Time }{
		{at(t, 9, 0), at(t, 10, 0)},
		{at(t, 11, 0), at(t, 14, 0)},
		{at(t, 15, 0), at(t, 17, 0)},
	}
	for i, want := range wantEnds {
		if !got[i].Start.Equal(want.start) || !got[i].End.Equal(want.end) {
			t.Fatalf("segment %d = %v, want [%v, %v)", i, got[i], want.start, want.end)
		}
	}
}

func TestSubtract_OverlappingHolesCompound(t *testing.T) {
	t.Parallel()

	windows := []Window{{Start: at(t, 9, 0), End: at(t, 17, 0)}}
	holes := []Window{
		{Start: at(t, 10, 0), End: at(t, 12, 0)},
		{Start: at(t, 11, 0), End: at(t, 13, 0)},
	}

	got := Subtract(windows, holes, time.Minute)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(got), got)
	}
	if !got[0].End.Equal(at(t, 10, 0)) || !got[1].Start.Equal(at(t, 13, 0)) {
		t.Fatalf("overlapping holes should compound: %v", got)
	}
}

func TestSubtract_InvalidHolesIgnored(t *testing.T) {
	t.Parallel()

	windows := []Window{{Start: at(t, 9, 0), End: at(t, 17, 0)}}
	holes := []Window{{Start: at(t, 13, 0), End: at(t, 12, 0)}}

	got := Subtract(windows, holes, time.Minute)
	if len(got) != 1 || !got[0].Start.Equal(at(t, 9, 0)) {
		t.Fatalf("inverted hole must be ignored, got %v", got)
	}
}

func TestBounds(t *testing.T) {
	t.Parallel()

	if _, ok := Bounds(nil); ok {
		t.Fatalf("expected no bounds for empty input")
	}

	windows := []Window{
		{Start: at(t, 13, 0), End: at(t, 17, 0)},
		{Start: at(t, 9, 0), End: at(t, 12, 0)},
	}
	bounds, ok := Bounds(windows)
	if !ok {
		t.Fatalf("expected bounds")
	}
	if !bounds.Start.Equal(at(t, 9, 0)) || !bounds.End.Equal(at(t, 17, 0)) {
		t.Fatalf("unexpected bounds: %v", bounds)
	}
}
