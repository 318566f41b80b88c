package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/lululau/swipecal/internal/calendar"
	"github.com/lululau/swipecal/internal/gesture"
	"github.com/lululau/swipecal/internal/textwidth"
)

const (
	cellPadding    = 1
	minColumnWidth = 4
	maxWeeks       = 6
	eventDot       = "•"
)

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

// DefaultDotColor is used for events without a color of their own.
const DefaultDotColor = "#3367d6"

// Styles are the style hooks of the calendar.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Day      lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Label    lipgloss.Style
	Dot      lipgloss.Style
	Help     lipgloss.Style
	Status   lipgloss.Style
	Muted    lipgloss.Style
	Frame    lipgloss.Style
}

// DefaultStyles returns the default palette, or unstyled output in no-color mode.
func DefaultStyles() Styles {
	if noColorMode {
		plain := lipgloss.NewStyle()
		return Styles{
			Title:    plain.Bold(true),
			Header:   plain,
			Day:      plain,
			Today:    plain.Underline(true),
			Selected: plain.Reverse(true),
			Cursor:   plain.Underline(true),
			Label:    plain,
			Dot:      plain,
			Help:     plain,
			Status:   plain,
			Muted:    plain,
			Frame:    plain,
		}
	}
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FEC260")),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A5B4FC")),
		Day:      lipgloss.NewStyle(),
		Today:    lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(DefaultDotColor)),
		Cursor:   lipgloss.NewStyle().Underline(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Dot:      lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultDotColor)),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Frame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#475569")).
			Padding(0, 1),
	}
}

// Layout is the geometry shared by the three month blocks.
type Layout struct {
	ColWidth     int
	RowHeight    int
	HeaderHeight int
	Width        int
	Height       int
}

// NewLayout sizes the blocks so that every label of every grid fits.
func NewLayout(st *calendar.State, header []string) Layout {
	colWidth := max(minColumnWidth, textwidth.MaxWidth(header...)+cellPadding*2)
	rowHeight := 2
	for _, g := range st.Grids() {
		for _, c := range g.Cells {
			if c.Label != "" {
				rowHeight = 3
				colWidth = max(colWidth, textwidth.StringWidth(c.Label)+cellPadding*2)
			}
		}
	}
	return Layout{
		ColWidth:     colWidth,
		RowHeight:    rowHeight,
		HeaderHeight: 1,
		Width:        colWidth * 7,
		Height:       1 + maxWeeks*rowHeight,
	}
}

// Cursor marks a cell for keyboard focus.
type Cursor struct {
	Ref     calendar.CellRef
	Visible bool
}

// Block renders one grid into exactly l.Height lines of width l.Width.
func Block(g *calendar.Grid, header []string, l Layout, styles Styles, cursor Cursor) []string {
	lines := make([]string, 0, l.Height)

	var hdr strings.Builder
	for _, label := range header {
		hdr.WriteString(center(styles.Header.Render(label), l.ColWidth))
	}
	lines = append(lines, hdr.String())

	for _, week := range g.Weeks() {
		rows := make([]strings.Builder, l.RowHeight)
		for i := 0; i < 7; i++ {
			var cell *calendar.Cell
			if i < len(week) {
				cell = week[i]
			}
			focused := cursor.Visible && cell != nil &&
				cursor.Ref == (calendar.CellRef{Offset: g.Offset, Day: cell.Day})
			for r, content := range cellLines(cell, l, styles, focused) {
				rows[r].WriteString(center(content, l.ColWidth))
			}
		}
		for r := range rows {
			lines = append(lines, rows[r].String())
		}
	}

	blank := strings.Repeat(" ", l.Width)
	for len(lines) < l.Height {
		lines = append(lines, blank)
	}
	return lines
}

func cellLines(cell *calendar.Cell, l Layout, styles Styles, focused bool) []string {
	out := make([]string, l.RowHeight)
	if cell == nil {
		return out
	}

	number := fmt.Sprintf("%2d", cell.Day)
	style := styles.Day
	switch {
	case cell.Selected:
		style = styles.Selected
	case cell.IsToday:
		style = styles.Today
	}
	if focused {
		style = styles.Cursor.Inherit(style)
	}
	out[0] = style.Render(number)
	out[1] = dots(cell.Markers, l.ColWidth-cellPadding*2, styles)
	if l.RowHeight > 2 {
		out[2] = styles.Label.Render(textwidth.Truncate(cell.Label, l.ColWidth-cellPadding*2))
	}
	return out
}

func dots(markers []calendar.Marker, room int, styles Styles) string {
	if len(markers) == 0 || room <= 0 {
		return ""
	}
	n := min(len(markers), room)
	var b strings.Builder
	for _, m := range markers[:n] {
		style := styles.Dot
		if m.Color != "" && !noColorMode {
			style = style.Foreground(lipgloss.Color(m.Color))
		}
		b.WriteString(style.Render(eventDot))
	}
	return b.String()
}

func center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// Carousel renders the previous, current and next grids as a strip and shows
// the window of one block translated by offset along axis. At offset 0 only
// the current grid is visible; at +Width (or +Height) the previous one is.
func Carousel(st *calendar.State, header []string, l Layout, styles Styles, axis gesture.Axis, offset int, cursor Cursor) string {
	grids := st.Grids()
	blocks := make([][]string, len(grids))
	for i, g := range grids {
		blocks[i] = Block(g, header, l, styles, cursor)
	}

	if axis == gesture.Vertical {
		strip := make([]string, 0, l.Height*3)
		for _, b := range blocks {
			strip = append(strip, b...)
		}
		start := clamp(l.Height-offset, 0, 2*l.Height)
		return strings.Join(strip[start:start+l.Height], "\n")
	}

	start := clamp(l.Width-offset, 0, 2*l.Width)
	lines := make([]string, l.Height)
	for i := range lines {
		strip := blocks[0][i] + blocks[1][i] + blocks[2][i]
		lines[i] = ansi.Cut(strip, start, start+l.Width)
	}
	return strings.Join(lines, "\n")
}

// HitTest maps a point relative to the carousel's top-left corner onto a day
// cell, taking the current translation into account.
func (l Layout) HitTest(st *calendar.State, axis gesture.Axis, offset, x, y int) (calendar.CellRef, bool) {
	if l.Width <= 0 || l.Height <= 0 || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return calendar.CellRef{}, false
	}
	lx, ly := x, y
	var idx int
	if axis == gesture.Vertical {
		ay := y + l.Height - offset
		if ay < 0 || ay >= 3*l.Height {
			return calendar.CellRef{}, false
		}
		idx, ly = ay/l.Height, ay%l.Height
	} else {
		ax := x + l.Width - offset
		if ax < 0 || ax >= 3*l.Width {
			return calendar.CellRef{}, false
		}
		idx, lx = ax/l.Width, ax%l.Width
	}
	if ly < l.HeaderHeight {
		return calendar.CellRef{}, false
	}

	g := st.Grids()[idx]
	row := (ly - l.HeaderHeight) / l.RowHeight
	col := lx / l.ColWidth
	day := row*7 + col - g.Lead + 1
	if g.Cell(day) == nil {
		return calendar.CellRef{}, false
	}
	return calendar.CellRef{Offset: g.Offset, Day: day}, true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
