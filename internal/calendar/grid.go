package calendar

import (
	"fmt"
	"time"

	"github.com/lululau/swipecal/internal/events"
)

// Offset addresses one of the three rendered grids relative to the displayed month.
type Offset int

const (
	Previous Offset = -1
	Current  Offset = 0
	Next     Offset = 1
)

// lookupOrder is the order in which grids are tried when mapping a date.
var lookupOrder = [...]Offset{Current, Next, Previous}

// Valid reports whether the offset names one of the three grids.
func (o Offset) Valid() bool {
	return o >= Previous && o <= Next
}

func (o Offset) String() string {
	switch o {
	case Previous:
		return "previous"
	case Current:
		return "current"
	case Next:
		return "next"
	}
	return fmt.Sprintf("Offset(%d)", int(o))
}

// Marker is an event dot inside a day cell.
type Marker struct {
	Key   events.Key
	Name  string
	Color string
}

// Cell is a single day of a month grid.
type Cell struct {
	Day      int
	Selected bool
	IsToday  bool
	Label    string // Secondary label from the Annotator, if any
	Markers  []Marker
}

// Grid is one rendered month: leading blanks followed by one cell per day.
type Grid struct {
	Offset Offset
	Month  Month
	Lead   int
	Cells  []Cell
}

// Annotator supplies an optional secondary label for a day.
type Annotator func(day time.Time) string

// BuildGrid lays out month with its 1st aligned to the first day of the week.
func BuildGrid(month Month, offset Offset, first time.Weekday, loc *time.Location, now time.Time, annotate Annotator) Grid {
	lead := (int(month.FirstWeekday()) - int(first) + 7) % 7
	days := month.Days()
	g := Grid{
		Offset: offset,
		Month:  month,
		Lead:   lead,
		Cells:  make([]Cell, days),
	}
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	for i := range g.Cells {
		date := month.Date(i+1, loc)
		g.Cells[i] = Cell{
			Day:     i + 1,
			IsToday: sameDay(date, now),
		}
		if annotate != nil {
			g.Cells[i].Label = annotate(date)
		}
	}
	return g
}

// Cell returns the cell for the 1-based day, or nil when out of range.
func (g *Grid) Cell(day int) *Cell {
	if day < 1 || day > len(g.Cells) {
		return nil
	}
	return &g.Cells[day-1]
}

// Weeks groups the grid into rows of up to seven slots. Leading blanks are nil.
func (g *Grid) Weeks() [][]*Cell {
	weeks := make([][]*Cell, 0, 6)
	week := make([]*Cell, g.Lead, 7)
	for i := range g.Cells {
		if len(week) > 6 {
			weeks = append(weeks, week)
			week = make([]*Cell, 0, 7)
		}
		week = append(week, &g.Cells[i])
	}
	return append(weeks, week)
}

// Header returns seven single-character labels starting at first. names holds
// the abbreviated weekday names indexed by time.Weekday.
func Header(first time.Weekday, names [7]string) []string {
	labels := make([]string, 7)
	for i := range labels {
		name := []rune(names[(int(first)+i)%7])
		if len(name) > 0 {
			labels[i] = string(name[0])
		}
	}
	return labels
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
