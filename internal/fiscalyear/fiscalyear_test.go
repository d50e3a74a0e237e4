package fiscalyear

import (
	"testing"
	"time"
)

func TestOfDate(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2025-09-30", 2025},
		{"2025-10-01", 2026},
		{"2026-01-15", 2026},
		{"2026-09-30", 2026},
	}
	for _, c := range cases {
		d, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			t.Fatalf("parse %s: %v", c.date, err)
		}
		if got := OfDate(d); got != c.want {
			t.Errorf("OfDate(%s) = %d, want %d", c.date, got, c.want)
		}
	}
}

func TestBounds(t *testing.T) {
	start, end := Bounds(2026)
	wantStart := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestWindow(t *testing.T) {
	got := Window(2025, 5)
	want := []int{2021, 2022, 2023, 2024, 2025}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Window[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if Window(2025, 0) != nil {
		t.Error("Window with n<=0 should return nil")
	}
}

func TestContains(t *testing.T) {
	mid := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !Contains(2026, mid) {
		t.Error("expected FY2026 to contain 2026-03-01")
	}
	if Contains(2025, mid) {
		t.Error("did not expect FY2025 to contain 2026-03-01")
	}
}

func TestCurrent(t *testing.T) {
	asOf := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)
	if got := Current(asOf); got != 2027 {
		t.Errorf("Current = %d, want 2027", got)
	}
}
