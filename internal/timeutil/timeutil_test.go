package timeutil

import (
	"testing"
	"time"
)

func TestMinutesToClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{545, "09:05"},
		{1020, "17:00"},
		{1439, "23:59"},
		{1500, "25:00"},
	}

	for _, tc := range cases {
		if got := MinutesToClock(tc.minutes); got != tc.want {
			t.Fatalf("MinutesToClock(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestClockToMinutes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want int
	}{
		{"09:00", 540},
		{"9:05", 545},
		{"17:30", 1050},
		{"00:00", 0},
		{"garbage", 0},
		{"09:00:00", 0},
		{"", 0},
	}

	for _, tc := range cases {
		if got := ClockToMinutes(tc.text); got != tc.want {
			t.Fatalf("ClockToMinutes(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestLocalToUTC_AppliesZoneOffset(t *testing.T) {
	t.Parallel()

	// 2024-01-15 09:00 Oslo is UTC+1 in winter.
	local := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	got, err := LocalToUTC(local, "Europe/Oslo")
	if err != nil {
		t.Fatalf("LocalToUTC returned error: %v", err)
	}
	want := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("LocalToUTC = %v, want %v", got, want)
	}
}

func TestLocalToUTC_DSTChangesOffset(t *testing.T) {
	t.Parallel()

	winter := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	summer := time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)

	winterUTC, err := LocalToUTC(winter, "Europe/Oslo")
	if err != nil {
		t.Fatalf("winter conversion failed: %v", err)
	}
	summerUTC, err := LocalToUTC(summer, "Europe/Oslo")
	if err != nil {
		t.Fatalf("summer conversion failed: %v", err)
	}

	if winterUTC.Hour() == summerUTC.Hour() {
		t.Fatalf("expected DST to change the UTC hour, got %d for both", winterUTC.Hour())
	}
}

func TestUTCToLocal_RoundTrip(t *testing.T) {
	t.Parallel()

	utc := time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)
	local, err := UTCToLocal(utc, "Europe/Oslo")
	if err != nil {
		t.Fatalf("UTCToLocal returned error: %v", err)
	}
	back, err := LocalToUTC(local, "Europe/Oslo")
	if err != nil {
		t.Fatalf("LocalToUTC returned error: %v", err)
	}
	if !back.Equal(utc) {
		t.Fatalf("round trip produced %v, want %v", back, utc)
	}
}

func TestLoadLocation_InvalidZone(t *testing.T) {
	t.Parallel()

	if _, err := LoadLocation("Not/AZone"); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
	if _, err := LoadLocation(""); err == nil {
		t.Fatalf("expected error for empty timezone")
	}
	if _, err := LocalToUTC(time.Now(), "Not/AZone"); err == nil {
		t.Fatalf("expected error for unknown timezone in LocalToUTC")
	}
}
