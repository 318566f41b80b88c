package render

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/swipecal/internal/events"
	"github.com/lululau/swipecal/internal/textwidth"
)

const (
	timeColumnWidth  = 5
	colorColumnWidth = 9
	minNameWidth     = 12
)

// Agenda lists the entries falling on day as a table. The layout is fixed to
// width columns where possible.
func Agenda(day time.Time, list []events.Entry, width int, styles Styles) string {
	entries := events.OnDay(list, day)
	if len(entries) == 0 {
		return styles.Muted.Render("No events on " + day.Format("2006-01-02"))
	}

	nameWidth := max(minNameWidth, width-timeColumnWidth-colorColumnWidth-cellPadding*6)
	columns := []table.Column{
		{Title: "Time", Width: timeColumnWidth},
		{Title: "Event", Width: nameWidth},
		{Title: "Color", Width: colorColumnWidth},
	}

	// Cells stay unstyled: bubbles/table measures the raw strings.
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "(untitled)"
		}
		color := e.Color
		if color == "" {
			color = DefaultDotColor
		}
		rows = append(rows, table.Row{
			e.Date.In(day.Location()).Format("15:04"),
			textwidth.Truncate(name, nameWidth),
			textwidth.Truncate(color, colorColumnWidth),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	t.SetStyles(agendaStyles(styles))
	t.Blur()
	return strings.TrimRight(t.View(), "\n")
}

func agendaStyles(styles Styles) table.Styles {
	s := table.DefaultStyles()
	s.Header = styles.Header.Padding(0, cellPadding)
	s.Selected = lipgloss.NewStyle()
	s.Cell = lipgloss.NewStyle().Padding(0, cellPadding)
	return s
}
