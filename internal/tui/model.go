package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lululau/swipecal/internal/calendar"
	"github.com/lululau/swipecal/internal/render"
	"github.com/lululau/swipecal/internal/textwidth"
	"github.com/lululau/swipecal/internal/widget"
)

// The grid starts below the title, a blank line and the frame's top border,
// and right of the frame's left border and padding.
const (
	gridOriginX = 2
	gridOriginY = 3
)

type appKeys struct {
	Goto key.Binding
	Quit key.Binding
}

type keyMap struct {
	cal widget.KeyMap
	app appKeys
}

func (k keyMap) ShortHelp() []key.Binding {
	return append(k.cal.ShortHelp(), k.app.Goto, k.app.Quit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	return append(k.cal.FullHelp(), []key.Binding{k.app.Goto, k.app.Quit})
}

// Run starts the interactive Bubble Tea UI around cal.
func Run(cal widget.Model) error {
	prog := tea.NewProgram(newModel(cal), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

type model struct {
	cal       widget.Model
	keys      keyMap
	help      help.Model
	width     int
	inputting bool
	input     textinput.Model
	statusMsg string
}

func newModel(cal widget.Model) model {
	cal.Focus()
	cal.SetOrigin(gridOriginX, gridOriginY)

	ti := textinput.New()
	ti.Placeholder = "YYYY MM"
	ti.CharLimit = 16
	ti.Prompt = "> "

	return model{
		cal: cal,
		keys: keyMap{
			cal: cal.KeyMap,
			app: appKeys{
				Goto: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to")),
				Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
			},
		},
		help:  help.New(),
		input: ti,
	}
}

func (m model) Init() tea.Cmd {
	return m.cal.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case widget.DateSelectedMsg:
		m.statusMsg = "Selected " + msg.Date.Format("Mon, 2006-01-02")
		return m, nil
	case widget.MonthChangedMsg:
		m.statusMsg = ""
		return m, nil
	case tea.KeyMsg:
		if m.inputting {
			return m.handleInputKey(msg)
		}
		switch {
		case key.Matches(msg, m.keys.app.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.app.Goto):
			m.activateInput()
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.cal, cmd = m.cal.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.inputting {
		return m.inputView()
	}

	styles := m.cal.Styles
	layout := m.cal.Layout()
	st := m.cal.State()
	first := st.Displayed().Date(1, st.Location())

	title := styles.Title.Render(m.cal.Locale().MonthTitle(first))
	hint := styles.Muted.Render(first.Format("2006-01"))
	titleWidth := layout.Width + gridOriginX*2 - textwidth.StringWidth(hint)

	var sb strings.Builder
	sb.WriteString(textwidth.PadRight(title, titleWidth) + hint)
	sb.WriteString("\n\n")
	sb.WriteString(styles.Frame.Render(m.cal.View()))

	if sel, ok := m.cal.Selected(); ok && len(m.cal.Events()) > 0 {
		width := m.width
		if width <= 0 {
			width = layout.Width + gridOriginX*2
		}
		sb.WriteString("\n\n")
		sb.WriteString(render.Agenda(sel.In(st.Location()), m.cal.Events(), width, styles))
	}

	sb.WriteString("\n\n")
	sb.WriteString(m.help.View(m.keys))
	if m.statusMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Status.Render(m.statusMsg))
	}
	return sb.String()
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputting = false
		m.statusMsg = ""
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.applyInput()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) activateInput() {
	m.inputting = true
	m.input.SetValue("")
	m.input.CursorEnd()
	m.input.Focus()
	m.statusMsg = ""
}

func (m *model) applyInput() {
	month, err := parseMonth(m.input.Value(), m.cal.Displayed())
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	st := m.cal.State()
	m.cal.SetSelectedMonth(month.Date(1, st.Location()))
	m.statusMsg = ""
	m.inputting = false
	m.input.Blur()
}

// parseMonth accepts "YYYY MM", "YYYY-MM", a bare month 1-12 (in the year of
// current) or a bare year (keeping current's month).
func parseMonth(value string, current calendar.Month) (calendar.Month, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(value), func(r rune) bool {
		return r == ' ' || r == '-' || r == '/'
	})
	switch len(fields) {
	case 1:
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return calendar.Month{}, fmt.Errorf("invalid number %q", fields[0])
		}
		if n >= 1 && n <= 12 {
			return calendar.Month{Year: current.Year, Month: time.Month(n)}, nil
		}
		return calendar.Month{Year: n, Month: current.Month}, nil
	case 2:
		year, err := strconv.Atoi(fields[0])
		if err != nil {
			return calendar.Month{}, fmt.Errorf("invalid year %q", fields[0])
		}
		month, err := strconv.Atoi(fields[1])
		if err != nil || month < 1 || month > 12 {
			return calendar.Month{}, fmt.Errorf("month must be between 1 and 12 (got %s)", fields[1])
		}
		return calendar.Month{Year: year, Month: time.Month(month)}, nil
	}
	return calendar.Month{}, fmt.Errorf("expected YYYY MM, got %q", value)
}

func (m model) inputView() string {
	label := "Go to month: YYYY MM (enter to confirm / esc to cancel)"
	out := m.cal.Styles.Title.Render(label) + "\n\n" + m.input.View()
	if m.statusMsg != "" {
		out += "\n" + m.cal.Styles.Status.Render(m.statusMsg)
	}
	return out
}
