package calendar

import (
	"reflect"
	"testing"
	"time"
)

var englishShort = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func TestMonthDays(t *testing.T) {
	tests := []struct {
		month Month
		want  int
	}{
		{Month{2024, time.February}, 29},
		{Month{2023, time.February}, 28},
		{Month{2000, time.February}, 29},
		{Month{1900, time.February}, 28},
		{Month{2024, time.January}, 31},
		{Month{2024, time.April}, 30},
		{Month{2024, time.December}, 31},
	}
	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			if got := tt.month.Days(); got != tt.want {
				t.Fatalf("Days()=%d want %d", got, tt.want)
			}
		})
	}
}

func TestMonthAddRollsYear(t *testing.T) {
	m := Month{2024, time.January}
	if got := m.Previous(); got != (Month{2023, time.December}) {
		t.Fatalf("Previous()=%v", got)
	}
	if got := (Month{2024, time.December}).Next(); got != (Month{2025, time.January}) {
		t.Fatalf("Next()=%v", got)
	}
	if got := m.Add(-25); got != (Month{2021, time.December}) {
		t.Fatalf("Add(-25)=%v", got)
	}
}

func TestBuildGridCellCounts(t *testing.T) {
	now := time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC)
	for year := 2023; year <= 2025; year++ {
		for month := time.January; month <= time.December; month++ {
			m := Month{year, month}
			for first := time.Sunday; first <= time.Saturday; first++ {
				g := BuildGrid(m, Current, first, time.UTC, now, nil)
				if len(g.Cells) != m.Days() {
					t.Fatalf("%v first=%v: %d cells want %d", m, first, len(g.Cells), m.Days())
				}
				if g.Lead < 0 || g.Lead > 6 {
					t.Fatalf("%v first=%v: lead %d out of range", m, first, g.Lead)
				}
				wantWeekday := time.Weekday((int(first) + g.Lead) % 7)
				if m.FirstWeekday() != wantWeekday {
					t.Fatalf("%v first=%v: 1st lands on %v want %v", m, first, wantWeekday, m.FirstWeekday())
				}
			}
		}
	}
}

func TestBuildGridLeapFebruaryNeighbours(t *testing.T) {
	s := New(Month{2024, time.February}, WithLocation(time.UTC))
	want := map[Offset]int{Previous: 31, Current: 29, Next: 31}
	for o, n := range want {
		if got := len(s.Grid(o).Cells); got != n {
			t.Fatalf("%v grid has %d cells want %d", o, got, n)
		}
	}
}

func TestWeeksGrouping(t *testing.T) {
	g := BuildGrid(Month{2024, time.February}, Current, time.Sunday, time.UTC, time.Time{}, nil)
	if g.Lead != 4 {
		t.Fatalf("Feb 2024 starts on Thursday, lead=%d", g.Lead)
	}
	weeks := g.Weeks()
	if len(weeks) != 5 {
		t.Fatalf("expected 5 week rows, got %d", len(weeks))
	}
	for i, w := range weeks {
		if len(w) > 7 {
			t.Fatalf("week %d has %d slots", i, len(w))
		}
	}
	first := weeks[0]
	for i := 0; i < 4; i++ {
		if first[i] != nil {
			t.Fatalf("slot %d should be blank", i)
		}
	}
	if first[4].Day != 1 || weeks[1][0].Day != 4 || weeks[4][len(weeks[4])-1].Day != 29 {
		t.Fatalf("unexpected week layout")
	}
}

func TestBuildGridMarksToday(t *testing.T) {
	now := time.Date(2025, 11, 18, 10, 0, 0, 0, time.UTC)
	g := BuildGrid(Month{2025, time.November}, Current, time.Sunday, time.UTC, now, nil)
	for _, c := range g.Cells {
		if c.IsToday != (c.Day == 18) {
			t.Fatalf("day %d IsToday=%v", c.Day, c.IsToday)
		}
	}
}

func TestBuildGridAnnotator(t *testing.T) {
	g := BuildGrid(Month{2024, time.March}, Current, time.Sunday, time.UTC, time.Time{}, func(d time.Time) string {
		if d.Day() == 3 {
			return "x"
		}
		return ""
	})
	if g.Cell(3).Label != "x" || g.Cell(4).Label != "" {
		t.Fatalf("annotator labels not applied")
	}
	if g.Cell(0) != nil || g.Cell(32) != nil {
		t.Fatalf("out of range cells should be nil")
	}
}

func TestHeaderRotation(t *testing.T) {
	base := Header(time.Sunday, englishShort)
	if !reflect.DeepEqual(base, []string{"S", "M", "T", "W", "T", "F", "S"}) {
		t.Fatalf("Sunday header = %v", base)
	}
	for first := time.Sunday; first <= time.Saturday; first++ {
		got := Header(first, englishShort)
		for i := range got {
			if got[i] != base[(int(first)+i)%7] {
				t.Fatalf("first=%v: %v is not a rotation of %v", first, got, base)
			}
		}
	}
	if got := Header(time.Monday, englishShort); !reflect.DeepEqual(got, []string{"M", "T", "W", "T", "F", "S", "S"}) {
		t.Fatalf("Monday header = %v", got)
	}
}

func TestHeaderUsesFirstRune(t *testing.T) {
	names := [7]string{"日曜", "月曜", "火曜", "水曜", "木曜", "金曜", "土曜"}
	got := Header(time.Sunday, names)
	if got[1] != "月" {
		t.Fatalf("expected first rune, got %q", got[1])
	}
}

func TestLunarAnnotator(t *testing.T) {
	// Chinese New Year 2024 fell on February 10th.
	if got := LunarAnnotator(time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)); got == "" {
		t.Fatalf("expected a lunar label")
	}
	if got := LunarAnnotator(time.Date(1800, 1, 1, 0, 0, 0, 0, time.Local)); got != "" {
		t.Fatalf("expected no label outside supported range, got %q", got)
	}
}
