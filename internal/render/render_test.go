package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/swipecal/internal/calendar"
	"github.com/lululau/swipecal/internal/events"
	"github.com/lululau/swipecal/internal/gesture"
	"github.com/lululau/swipecal/internal/locale"
)

var testHeader = []string{"S", "M", "T", "W", "T", "F", "S"}

func februaryState() *calendar.State {
	return calendar.New(calendar.Month{Year: 2024, Month: time.February},
		calendar.WithLocation(time.UTC),
		calendar.WithNow(func() time.Time { return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC) }),
	)
}

func TestCarouselShowsOneMonth(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	st := februaryState()
	l := NewLayout(st, testHeader)
	styles := DefaultStyles()

	current := Carousel(st, testHeader, l, styles, gesture.Horizontal, 0, Cursor{})
	if !strings.Contains(current, "29") || strings.Contains(current, "31") {
		t.Fatalf("expected February only, got:\n%s", current)
	}
	lines := strings.Split(current, "\n")
	if len(lines) != l.Height {
		t.Fatalf("expected %d lines, got %d", l.Height, len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != l.Width {
			t.Fatalf("line %d width %d want %d", i, w, l.Width)
		}
	}

	previous := Carousel(st, testHeader, l, styles, gesture.Horizontal, l.Width, Cursor{})
	if !strings.Contains(previous, "31") {
		t.Fatalf("expected January at +Width, got:\n%s", previous)
	}
	next := Carousel(st, testHeader, l, styles, gesture.Vertical, -l.Height, Cursor{})
	if !strings.Contains(next, "31") {
		t.Fatalf("expected March at -Height, got:\n%s", next)
	}
}

func TestCarouselPartialOffsetKeepsWidth(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	st := februaryState()
	l := NewLayout(st, testHeader)
	out := Carousel(st, testHeader, l, DefaultStyles(), gesture.Horizontal, l.Width/3, Cursor{})
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != l.Width {
			t.Fatalf("line %d width %d want %d", i, w, l.Width)
		}
	}
}

func TestHitTest(t *testing.T) {
	st := februaryState()
	l := NewLayout(st, testHeader)
	col := func(c int) int { return c*l.ColWidth + 1 }

	tests := []struct {
		name   string
		axis   gesture.Axis
		offset int
		x, y   int
		want   calendar.CellRef
		ok     bool
	}{
		{"first of february", gesture.Horizontal, 0, col(4), l.HeaderHeight, calendar.CellRef{Offset: calendar.Current, Day: 1}, true},
		{"marker line still hits", gesture.Horizontal, 0, col(4), l.HeaderHeight + 1, calendar.CellRef{Offset: calendar.Current, Day: 1}, true},
		{"second week", gesture.Horizontal, 0, col(0), l.HeaderHeight + l.RowHeight, calendar.CellRef{Offset: calendar.Current, Day: 4}, true},
		{"header row", gesture.Horizontal, 0, col(4), 0, calendar.CellRef{}, false},
		{"leading blank", gesture.Horizontal, 0, col(0), l.HeaderHeight, calendar.CellRef{}, false},
		{"previous grid shown", gesture.Horizontal, l.Width, col(4), l.HeaderHeight, calendar.CellRef{Offset: calendar.Previous, Day: 4}, true},
		{"next grid shown vertically", gesture.Vertical, -l.Height, col(5), l.HeaderHeight, calendar.CellRef{Offset: calendar.Next, Day: 1}, true},
		{"outside", gesture.Horizontal, 0, l.Width, 3, calendar.CellRef{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.HitTest(st, tt.axis, tt.offset, tt.x, tt.y)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("HitTest = %v,%v want %v,%v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLayoutGrowsForLabels(t *testing.T) {
	st := februaryState()
	plain := NewLayout(st, testHeader)
	st.SetAnnotator(calendar.LunarAnnotator)
	annotated := NewLayout(st, testHeader)
	if annotated.RowHeight != 3 || plain.RowHeight != 2 {
		t.Fatalf("row heights %d/%d", plain.RowHeight, annotated.RowHeight)
	}
	if annotated.Height <= plain.Height {
		t.Fatalf("annotated layout should be taller")
	}
}

func TestBlockShowsMarkers(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	st := februaryState()
	st.SetEvents([]events.Entry{
		{Date: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), Name: "a", Color: "#ff0000"},
		{Date: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), Name: "b"},
	})
	l := NewLayout(st, testHeader)
	lines := Block(st.Grid(calendar.Current), testHeader, l, DefaultStyles(), Cursor{})
	if got := strings.Count(lines[l.HeaderHeight+1], eventDot); got != 2 {
		t.Fatalf("expected 2 dots on the first marker line, got %d: %q", got, lines[l.HeaderHeight+1])
	}
}

func TestAgenda(t *testing.T) {
	day := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	list := []events.Entry{
		{Date: time.Date(2024, 2, 10, 9, 30, 0, 0, time.UTC), Name: "standup"},
		{Date: time.Date(2024, 2, 11, 9, 30, 0, 0, time.UTC), Name: "tomorrow"},
	}
	out := Agenda(day, list, 60, DefaultStyles())
	if !strings.Contains(out, "standup") || !strings.Contains(out, "09:30") {
		t.Fatalf("agenda missing entry:\n%s", out)
	}
	if strings.Contains(out, "tomorrow") {
		t.Fatalf("agenda should only list the given day:\n%s", out)
	}
	if empty := Agenda(day, nil, 60, DefaultStyles()); !strings.Contains(empty, "No events") {
		t.Fatalf("unexpected empty agenda %q", empty)
	}
}

func TestRunPlain(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	st := februaryState()
	st.Select(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	st.SetEvents([]events.Entry{{Date: time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC), Name: "launch"}})

	var buf bytes.Buffer
	err := RunPlain(PlainOptions{Writer: &buf, State: st, Locale: locale.Resolve("en"), Width: 80})
	if err != nil {
		t.Fatalf("RunPlain failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"February 2024", "29", "launch"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
