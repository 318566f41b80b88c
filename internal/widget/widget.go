// Package widget provides the calendar as a Bubble Tea component: three month
// grids around the displayed month, tap and keyboard selection, and swipe
// navigation with an animated transition before the month change commits.
package widget

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/lululau/swipecal/internal/calendar"
	"github.com/lululau/swipecal/internal/events"
	"github.com/lululau/swipecal/internal/gesture"
	"github.com/lululau/swipecal/internal/locale"
	"github.com/lululau/swipecal/internal/render"
)

const (
	// TransitionDuration is how long the settle animation plays before a
	// month change commits.
	TransitionDuration = 200 * time.Millisecond

	frameRate = 60
)

var frameInterval = time.Second / frameRate

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// DateSelectedMsg is sent when the user selects a date by tap or keyboard.
type DateSelectedMsg struct {
	Date time.Time
}

// MonthChangedMsg is sent when a swipe commits a new displayed month.
type MonthChangedMsg struct {
	Month calendar.Month
}

type localeLoadedMsg struct {
	id    int
	gen   uint64
	table locale.Table
}

type frameMsg struct {
	id    int
	token uint64
}

type commitMsg struct {
	id    int
	token uint64
	delta int
}

type transition struct {
	token  uint64
	target float64
	frames int
}

// Model is the calendar component.
type Model struct {
	KeyMap KeyMap
	Styles render.Styles

	id     int
	state  *calendar.State
	nav    *gesture.Navigator
	logger *slog.Logger
	now    func() time.Time

	localeName string
	table      locale.Table
	localeGen  uint64
	firstDay   *time.Weekday

	selectable         bool
	swipeable          bool
	allowTextSelection bool
	focused            bool
	cursor             time.Time

	offset   float64
	velocity float64
	spring   harmonica.Spring
	anim     *transition
	tokens   uint64
	pending  uint64 // token of the in-flight month commit, 0 when none

	originX, originY int
	pressed          bool
	pressX, pressY   int
}

// New creates a calendar component.
func New(opts ...Option) Model {
	o := options{
		now:      time.Now,
		location: time.Local,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.location == nil {
		o.location = time.Local
	}
	now := o.now().In(o.location)
	if o.month.IsZero() {
		o.month = now
	}
	if o.locale == "" {
		o.locale = locale.FromEnv()
	}
	if o.firstDay != nil && (*o.firstDay < time.Sunday || *o.firstDay > time.Saturday) {
		o.logger.Warn("ignoring invalid first day of week", "day", int(*o.firstDay))
		o.firstDay = nil
	}

	m := Model{
		KeyMap:             DefaultKeyMap(),
		Styles:             render.DefaultStyles(),
		id:                 nextID(),
		nav:                gesture.New(o.direction),
		logger:             o.logger,
		now:                o.now,
		localeName:         o.locale,
		table:              locale.Resolve(o.locale),
		firstDay:           o.firstDay,
		selectable:         o.selectable,
		swipeable:          o.swipeable,
		allowTextSelection: o.allowTextSelection,
		spring:             harmonica.NewSpring(harmonica.FPS(frameRate), 18.0, 1.0),
	}
	if o.styles != nil {
		m.Styles = *o.styles
	}

	m.state = calendar.New(calendar.MonthOf(o.month.In(o.location)),
		calendar.WithLocation(o.location),
		calendar.WithNow(o.now),
		calendar.WithLogger(o.logger),
		calendar.WithAnnotator(o.annotator),
		calendar.WithFirstDay(m.effectiveFirstDay()),
	)
	if !o.noSelection {
		sel := o.selected
		if sel.IsZero() {
			sel = now
		}
		m.state.Select(sel)
	}
	m.state.SetEvents(o.events)

	m.cursor = m.state.Displayed().Date(1, o.location)
	if sel, ok := m.state.Selected(); ok && m.state.Displayed().Contains(sel, o.location) {
		m.cursor = sel
	} else if m.state.Displayed().Contains(now, o.location) {
		m.cursor = now
	}
	return m
}

// Init enables mouse reporting when taps or swipes need it.
func (m Model) Init() tea.Cmd {
	if m.wantsMouse() {
		return tea.EnableMouseCellMotion
	}
	return nil
}

// State exposes the view-model for rendering and inspection.
func (m Model) State() *calendar.State {
	return m.state
}

// Displayed returns the displayed month.
func (m Model) Displayed() calendar.Month {
	return m.state.Displayed()
}

// Selected returns the selected date, if any.
func (m Model) Selected() (time.Time, bool) {
	return m.state.Selected()
}

// Events returns the active event list.
func (m Model) Events() []events.Entry {
	return m.state.Events()
}

// Locale returns the resolved locale table currently in use.
func (m Model) Locale() locale.Table {
	return m.table
}

// Header returns the weekday labels in display order.
func (m Model) Header() []string {
	return calendar.Header(m.state.FirstDay(), m.table.Short)
}

// Layout returns the geometry of the rendered grid.
func (m Model) Layout() render.Layout {
	return render.NewLayout(m.state, m.Header())
}

// Offset returns the current carousel translation along the swipe axis.
func (m Model) Offset() int {
	return int(math.Round(m.offset))
}

// Transitioning reports whether a settle animation or month commit is in flight.
func (m Model) Transitioning() bool {
	return m.anim != nil || m.pending != 0
}

// Focus enables keyboard handling.
func (m *Model) Focus() {
	m.focused = true
}

// Blur disables keyboard handling.
func (m *Model) Blur() {
	m.focused = false
}

// Focused reports whether the widget handles keys.
func (m Model) Focused() bool {
	return m.focused
}

// SetOrigin tells the widget where its grid starts on screen so that mouse
// coordinates can be mapped onto cells.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// SetSelected selects t without emitting DateSelectedMsg.
func (m *Model) SetSelected(t time.Time) {
	m.state.Select(t)
}

// ClearSelected removes the selection.
func (m *Model) ClearSelected() {
	m.state.ClearSelection()
}

// SetEvents replaces the event list.
func (m *Model) SetEvents(list []events.Entry) {
	m.state.SetEvents(list)
}

// SetFirstDay overrides the locale's week start.
func (m *Model) SetFirstDay(d time.Weekday) {
	if d < time.Sunday || d > time.Saturday {
		m.logger.Warn("ignoring invalid first day of week", "day", int(d))
		return
	}
	m.firstDay = &d
	m.state.SetFirstDay(d)
}

// ClearFirstDay returns to the locale's week start.
func (m *Model) ClearFirstDay() {
	m.firstDay = nil
	m.state.SetFirstDay(m.table.FirstDay)
}

// SetSelectable toggles tap and keyboard selection.
func (m *Model) SetSelectable(v bool) tea.Cmd {
	m.selectable = v
	return m.mouseCmd()
}

// SetSelectedMonth changes the displayed month. Any swipe commit still in
// flight is abandoned.
func (m *Model) SetSelectedMonth(t time.Time) {
	m.changeMonth(calendar.MonthOf(t.In(m.state.Location())))
}

// SetSwipeable toggles drag navigation.
func (m *Model) SetSwipeable(v bool) tea.Cmd {
	m.swipeable = v
	m.nav.Reset()
	m.resetCarousel()
	return m.mouseCmd()
}

// SetSwipeDirection changes the drag axis.
func (m *Model) SetSwipeDirection(a gesture.Axis) {
	m.nav.SetDirection(a)
	m.resetCarousel()
}

// SwipeDirection returns the drag axis.
func (m Model) SwipeDirection() gesture.Axis {
	return m.nav.Direction()
}

// SetAllowTextSelection hands the mouse to the terminal (true) or takes it back.
func (m *Model) SetAllowTextSelection(v bool) tea.Cmd {
	m.allowTextSelection = v
	m.pressed = false
	m.nav.Reset()
	return m.mouseCmd()
}

// SetLocale starts resolving a new locale. The current labels stay until the
// result arrives; results of superseded requests are dropped.
func (m *Model) SetLocale(name string) tea.Cmd {
	m.localeGen++
	m.localeName = name
	id, gen := m.id, m.localeGen
	return func() tea.Msg {
		return localeLoadedMsg{id: id, gen: gen, table: locale.Resolve(name)}
	}
}

func (m Model) wantsMouse() bool {
	return !m.allowTextSelection && (m.swipeable || m.selectable)
}

func (m Model) mouseCmd() tea.Cmd {
	if m.wantsMouse() {
		return tea.EnableMouseCellMotion
	}
	return tea.DisableMouse
}

func (m Model) effectiveFirstDay() time.Weekday {
	if m.firstDay != nil {
		return *m.firstDay
	}
	return m.table.FirstDay
}

// Update handles locale results, animation frames, month commits, mouse and keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case localeLoadedMsg:
		if msg.id != m.id {
			return m, nil
		}
		if msg.gen != m.localeGen {
			m.logger.Debug("dropping stale locale result", "locale", msg.table.Tag.String())
			return m, nil
		}
		m.table = msg.table
		m.state.SetFirstDay(m.effectiveFirstDay())
		m.state.Refresh()
		return m, nil

	case frameMsg:
		if msg.id != m.id || m.anim == nil || msg.token != m.anim.token {
			return m, nil
		}
		return m, m.step()

	case commitMsg:
		if msg.id != m.id {
			return m, nil
		}
		if msg.token != m.pending {
			m.logger.Debug("dropping superseded month commit", "token", msg.token)
			return m, nil
		}
		month := m.state.Displayed().Add(msg.delta)
		m.pending = 0
		m.anim = nil
		m.offset, m.velocity = 0, 0
		m.state.SetMonth(month)
		m.moveCursorInto(month)
		m.logger.Debug("month committed", "month", month.String())
		return m, func() tea.Msg { return MonthChangedMsg{Month: month} }

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// View renders the grid at the current carousel offset.
func (m Model) View() string {
	header := m.Header()
	layout := render.NewLayout(m.state, header)
	cursor := render.Cursor{}
	if m.focused {
		if ref, ok := m.state.Locate(m.cursor); ok {
			cursor = render.Cursor{Ref: ref, Visible: true}
		}
	}
	return render.Carousel(m.state, header, layout, m.Styles, m.nav.Direction(), m.Offset(), cursor)
}

func (m *Model) changeMonth(month calendar.Month) {
	m.cancelTransition()
	m.offset, m.velocity = 0, 0
	m.state.SetMonth(month)
	m.moveCursorInto(month)
}

func (m *Model) cancelTransition() {
	m.tokens++
	m.anim = nil
	m.pending = 0
}

func (m *Model) resetCarousel() {
	m.cancelTransition()
	m.offset, m.velocity = 0, 0
}

func (m *Model) moveCursorInto(month calendar.Month) {
	loc := m.state.Location()
	if month.Contains(m.cursor, loc) {
		return
	}
	day := min(m.cursor.In(loc).Day(), month.Days())
	m.cursor = month.Date(day, loc)
}

func (m Model) extent() (int, int) {
	l := m.Layout()
	return l.Width, l.Height
}

func (m *Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.allowTextSelection {
		return *m, nil
	}
	width, height := m.extent()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return *m, nil
		}
		x, y := msg.X-m.originX, msg.Y-m.originY
		if x < 0 || y < 0 || x >= width || y >= height {
			return *m, nil
		}
		m.pressed = true
		m.pressX, m.pressY = msg.X, msg.Y
		if m.swipeable {
			m.cancelTransition()
			m.nav.Handle(gesture.Event{Phase: gesture.Start}, width, height)
		}

	case tea.MouseActionMotion:
		if !m.pressed || !m.swipeable {
			return *m, nil
		}
		ev := gesture.Event{Phase: gesture.Move, DX: msg.X - m.pressX, DY: msg.Y - m.pressY}
		if res := m.nav.Handle(ev, width, height); res.Live {
			m.offset, m.velocity = float64(res.Offset), 0
		}

	case tea.MouseActionRelease:
		if !m.pressed {
			return *m, nil
		}
		m.pressed = false
		dx, dy := msg.X-m.pressX, msg.Y-m.pressY
		moved := dx != 0 || dy != 0

		var cmd tea.Cmd
		if m.swipeable {
			moved = moved || m.nav.Moved()
			res := m.nav.Handle(gesture.Event{Phase: gesture.End, DX: dx, DY: dy}, width, height)
			if moved {
				cmd = m.settle(res)
			} else {
				m.offset, m.velocity = 0, 0
			}
		}
		if !moved && m.selectable {
			cmd = m.tap(m.pressX-m.originX, m.pressY-m.originY)
		}
		return *m, cmd
	}
	return *m, nil
}

// settle starts the animation towards the gesture's target and, for a month
// change, schedules the commit behind a fresh transition token.
func (m *Model) settle(res gesture.Result) tea.Cmd {
	m.tokens++
	token := m.tokens
	m.anim = &transition{
		token:  token,
		target: float64(res.Offset),
		frames: int(TransitionDuration / frameInterval),
	}
	m.pending = 0
	cmds := []tea.Cmd{m.frameTick(token)}
	if delta := res.Outcome.Delta(); delta != 0 {
		m.pending = token
		id := m.id
		cmds = append(cmds, tea.Tick(TransitionDuration, func(time.Time) tea.Msg {
			return commitMsg{id: id, token: token, delta: delta}
		}))
	}
	m.logger.Debug("swipe ended", "outcome", res.Outcome.String(), "ratio", res.Ratio)
	return tea.Batch(cmds...)
}

func (m *Model) step() tea.Cmd {
	a := m.anim
	a.frames--
	if a.frames <= 0 {
		m.offset, m.velocity = a.target, 0
		m.anim = nil
		return nil
	}
	m.offset, m.velocity = m.spring.Update(m.offset, m.velocity, a.target)
	return m.frameTick(a.token)
}

func (m Model) frameTick(token uint64) tea.Cmd {
	id := m.id
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id, token: token}
	})
}

func (m *Model) tap(x, y int) tea.Cmd {
	ref, ok := m.Layout().HitTest(m.state, m.nav.Direction(), m.Offset(), x, y)
	if !ok {
		return nil
	}
	g := m.state.Grid(ref.Offset)
	if c := g.Cell(ref.Day); c == nil || c.Selected {
		return nil
	}
	date, ok := m.state.DateAt(ref)
	if !ok {
		return nil
	}
	return m.selectDate(date)
}

func (m *Model) selectDate(date time.Time) tea.Cmd {
	m.state.Select(date)
	m.cursor = date
	return func() tea.Msg { return DateSelectedMsg{Date: date} }
}

func (m *Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.KeyMap.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.KeyMap.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.KeyMap.Up):
		m.moveCursor(-7)
	case key.Matches(msg, m.KeyMap.Down):
		m.moveCursor(7)
	case key.Matches(msg, m.KeyMap.PrevMonth):
		m.changeMonth(m.state.Displayed().Previous())
	case key.Matches(msg, m.KeyMap.NextMonth):
		m.changeMonth(m.state.Displayed().Next())
	case key.Matches(msg, m.KeyMap.Today):
		now := m.now().In(m.state.Location())
		m.cursor = now
		m.changeMonth(calendar.MonthOf(now))
	case key.Matches(msg, m.KeyMap.Select):
		if !m.selectable {
			return *m, nil
		}
		if ref, ok := m.state.SelectedCell(); ok {
			if cur, ok := m.state.Locate(m.cursor); ok && cur == ref {
				return *m, nil
			}
		}
		loc := m.state.Location()
		c := m.cursor.In(loc)
		return *m, m.selectDate(time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, loc))
	}
	return *m, nil
}

func (m *Model) moveCursor(days int) {
	loc := m.state.Location()
	c := m.cursor.In(loc)
	m.cursor = time.Date(c.Year(), c.Month(), c.Day()+days, 0, 0, 0, 0, loc)
	if month := calendar.MonthOf(m.cursor); month != m.state.Displayed() {
		m.changeMonth(month)
	}
}
