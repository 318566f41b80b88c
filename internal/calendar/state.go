package calendar

import (
	"log/slog"
	"slices"
	"time"

	"github.com/lululau/swipecal/internal/events"
)

// CellRef addresses a day cell in one of the three grids.
type CellRef struct {
	Offset Offset
	Day    int
}

// State is the calendar view-model: the three month grids around the
// displayed month plus the selection and event placement indices. Rendering
// is a pure function of State.
type State struct {
	logger   *slog.Logger
	now      func() time.Time
	loc      *time.Location
	annotate Annotator
	firstDay time.Weekday

	displayed Month
	grids     [3]Grid

	selected         time.Time
	hasSelected      bool
	selectedRef      CellRef
	hasSelectedRef   bool
	selectionPending bool

	order    []events.Key
	entries  map[events.Key]events.Entry
	placed   map[events.Key]CellRef
	deferred map[events.Key]struct{}
}

// Option configures the State.
type Option func(*State)

// WithNow overrides the clock, which is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *State) {
		s.now = now
	}
}

// WithLocation sets the location used to interpret timestamps.
func WithLocation(loc *time.Location) Option {
	return func(s *State) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the logger used for warnings about invalid calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAnnotator sets the secondary label source for day cells.
func WithAnnotator(a Annotator) Option {
	return func(s *State) {
		s.annotate = a
	}
}

// WithFirstDay sets the first day of the week. Values outside Sunday..Saturday
// are logged and Sunday is used.
func WithFirstDay(d time.Weekday) Option {
	return func(s *State) {
		s.firstDay = d
	}
}

// New builds the three grids around month.
func New(month Month, opts ...Option) *State {
	s := &State{
		logger:    slog.Default(),
		now:       time.Now,
		loc:       time.Local,
		displayed: month.Normalize(),
		entries:   make(map[events.Key]events.Entry),
		placed:    make(map[events.Key]CellRef),
		deferred:  make(map[events.Key]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !validWeekday(s.firstDay) {
		s.logger.Warn("ignoring invalid first day of week", "day", int(s.firstDay))
		s.firstDay = time.Sunday
	}
	s.rebuild()
	return s
}

// Displayed returns the month centered in the view.
func (s *State) Displayed() Month {
	return s.displayed
}

// Location returns the location timestamps are interpreted in.
func (s *State) Location() *time.Location {
	return s.loc
}

// FirstDay returns the first day of the week used for the grids.
func (s *State) FirstDay() time.Weekday {
	return s.firstDay
}

// SetMonth changes the displayed month and rebuilds all grids.
func (s *State) SetMonth(m Month) {
	s.displayed = m.Normalize()
	s.rebuild()
}

// SetFirstDay changes the week start and rebuilds all grids.
func (s *State) SetFirstDay(d time.Weekday) {
	if !validWeekday(d) {
		s.logger.Warn("ignoring invalid first day of week", "day", int(d))
		return
	}
	if d == s.firstDay {
		return
	}
	s.firstDay = d
	s.rebuild()
}

// SetAnnotator changes the secondary label source and rebuilds all grids.
func (s *State) SetAnnotator(a Annotator) {
	s.annotate = a
	s.rebuild()
}

// Refresh rebuilds the grids in place, e.g. after a locale change.
func (s *State) Refresh() {
	s.rebuild()
}

func (s *State) rebuild() {
	now := s.now()
	for i, o := range [...]Offset{Previous, Current, Next} {
		s.grids[i] = BuildGrid(s.displayed.Add(int(o)), o, s.firstDay, s.loc, now, s.annotate)
	}

	s.hasSelectedRef = false
	s.selectionPending = false
	if s.hasSelected {
		s.Select(s.selected)
	}

	clear(s.placed)
	clear(s.deferred)
	for _, key := range s.order {
		s.place(key, s.entries[key])
	}
}

// Grid returns the grid at offset. Invalid offsets are logged and yield nil.
func (s *State) Grid(o Offset) *Grid {
	if !o.Valid() {
		s.logger.Warn("grid requested with invalid offset", "offset", int(o))
		return nil
	}
	return &s.grids[int(o)+1]
}

// Grids returns the previous, current and next grids in that order.
func (s *State) Grids() []*Grid {
	return []*Grid{&s.grids[0], &s.grids[1], &s.grids[2]}
}

// Locate maps t onto a cell of the current, next or previous grid, tried in
// that order. It reports false when t falls outside the three-month window.
func (s *State) Locate(t time.Time) (CellRef, bool) {
	t = t.In(s.loc)
	month := MonthOf(t)
	for _, o := range lookupOrder {
		if s.grids[int(o)+1].Month == month {
			return CellRef{Offset: o, Day: t.Day()}, true
		}
	}
	return CellRef{}, false
}

// DateAt returns midnight of the referenced day in the state's location.
func (s *State) DateAt(ref CellRef) (time.Time, bool) {
	g := s.Grid(ref.Offset)
	if g == nil || g.Cell(ref.Day) == nil {
		return time.Time{}, false
	}
	return g.Month.Date(ref.Day, s.loc), true
}

func (s *State) cell(ref CellRef) *Cell {
	g := s.Grid(ref.Offset)
	if g == nil {
		return nil
	}
	return g.Cell(ref.Day)
}

// Select marks the cell for t as selected, clearing any previous selection.
// When t is outside the window no cell is marked and the selection is kept
// pending until a later rebuild brings it into view. It reports whether a cell
// was marked.
func (s *State) Select(t time.Time) bool {
	s.clearSelectedCell()
	s.selected = t
	s.hasSelected = true

	ref, ok := s.Locate(t)
	if !ok {
		s.selectionPending = true
		return false
	}
	c := s.cell(ref)
	if c == nil {
		s.selectionPending = true
		return false
	}
	c.Selected = true
	s.selectedRef = ref
	s.hasSelectedRef = true
	s.selectionPending = false
	return true
}

// ClearSelection removes the selected date entirely.
func (s *State) ClearSelection() {
	s.clearSelectedCell()
	s.hasSelected = false
	s.selected = time.Time{}
	s.selectionPending = false
}

func (s *State) clearSelectedCell() {
	if !s.hasSelectedRef {
		return
	}
	if c := s.cell(s.selectedRef); c != nil {
		c.Selected = false
	}
	s.hasSelectedRef = false
}

// Selected returns the selected date, if any.
func (s *State) Selected() (time.Time, bool) {
	return s.selected, s.hasSelected
}

// SelectedCell returns the cell currently marked selected, if any.
func (s *State) SelectedCell() (CellRef, bool) {
	return s.selectedRef, s.hasSelectedRef
}

// SelectionPending reports whether the selected date is outside the window.
func (s *State) SelectionPending() bool {
	return s.selectionPending
}

// SetEvents replaces the event list. Markers are added and removed
// incrementally by key; entries outside the window are kept deferred and
// malformed entries are skipped.
func (s *State) SetEvents(list []events.Entry) {
	keys := events.Keys(list)
	next := make(map[events.Key]events.Entry, len(list))
	for i, key := range keys {
		next[key] = list[i]
	}

	for _, key := range s.order {
		if _, ok := next[key]; !ok {
			s.unplace(key)
		}
	}

	for _, key := range keys {
		old, ok := s.entries[key]
		if ok && sameEntry(old, next[key]) {
			continue
		}
		if ok {
			s.unplace(key)
		}
		s.place(key, next[key])
	}

	s.order = keys
	s.entries = next
}

// Events returns the active entries in list order.
func (s *State) Events() []events.Entry {
	out := make([]events.Entry, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.entries[key])
	}
	return out
}

// DeferredEvents returns the number of entries waiting for their month to be displayed.
func (s *State) DeferredEvents() int {
	return len(s.deferred)
}

func validWeekday(d time.Weekday) bool {
	return d >= time.Sunday && d <= time.Saturday
}

// sameEntry reports whether two entries sharing a key render the same marker.
func sameEntry(a, b events.Entry) bool {
	return a.Date.Equal(b.Date) && a.Name == b.Name && a.Color == b.Color
}

func (s *State) place(key events.Key, e events.Entry) {
	if !e.Valid() {
		return
	}
	ref, ok := s.Locate(e.Date)
	if !ok {
		s.deferred[key] = struct{}{}
		return
	}
	c := s.cell(ref)
	if c == nil {
		s.deferred[key] = struct{}{}
		return
	}
	c.Markers = append(c.Markers, Marker{Key: key, Name: e.Name, Color: e.Color})
	s.placed[key] = ref
}

func (s *State) unplace(key events.Key) {
	delete(s.deferred, key)
	ref, ok := s.placed[key]
	if !ok {
		return
	}
	delete(s.placed, key)
	if c := s.cell(ref); c != nil {
		c.Markers = slices.DeleteFunc(c.Markers, func(m Marker) bool {
			return m.Key == key
		})
	}
}
