package widget

import (
	"log/slog"
	"time"

	"github.com/lululau/swipecal/internal/calendar"
	"github.com/lululau/swipecal/internal/events"
	"github.com/lululau/swipecal/internal/gesture"
	"github.com/lululau/swipecal/internal/render"
)

type options struct {
	selected           time.Time
	noSelection        bool
	month              time.Time
	events             []events.Entry
	firstDay           *time.Weekday
	selectable         bool
	swipeable          bool
	direction          gesture.Axis
	allowTextSelection bool
	locale             string
	annotator          calendar.Annotator
	logger             *slog.Logger
	now                func() time.Time
	location           *time.Location
	styles             *render.Styles
}

// Option configures a Model.
type Option func(*options)

// WithSelected sets the initially selected date. Defaults to now.
func WithSelected(t time.Time) Option {
	return func(o *options) {
		o.selected = t
		o.noSelection = false
	}
}

// WithoutSelection starts without a selected date.
func WithoutSelection() Option {
	return func(o *options) {
		o.noSelection = true
	}
}

// WithSelectedMonth sets the displayed month. Defaults to now.
func WithSelectedMonth(t time.Time) Option {
	return func(o *options) {
		o.month = t
	}
}

// WithEvents sets the events to render.
func WithEvents(list []events.Entry) Option {
	return func(o *options) {
		o.events = list
	}
}

// WithFirstDay overrides the locale's first day of the week. Values outside
// Sunday..Saturday are logged and the locale's week start is kept.
func WithFirstDay(d time.Weekday) Option {
	return func(o *options) {
		o.firstDay = &d
	}
}

// WithSelectable enables tap and keyboard selection.
func WithSelectable(v bool) Option {
	return func(o *options) {
		o.selectable = v
	}
}

// WithSwipeable enables drag navigation between months.
func WithSwipeable(v bool) Option {
	return func(o *options) {
		o.swipeable = v
	}
}

// WithSwipeDirection sets the drag axis. Defaults to horizontal.
func WithSwipeDirection(a gesture.Axis) Option {
	return func(o *options) {
		o.direction = a
	}
}

// WithAllowTextSelection leaves the mouse to the terminal so text can be
// selected. Taps and swipes are unavailable while it is set.
func WithAllowTextSelection(v bool) Option {
	return func(o *options) {
		o.allowTextSelection = v
	}
}

// WithLocale sets the locale used for weekday labels and the week start.
func WithLocale(name string) Option {
	return func(o *options) {
		o.locale = name
	}
}

// WithAnnotator adds secondary labels to the day cells.
func WithAnnotator(a calendar.Annotator) Option {
	return func(o *options) {
		o.annotator = a
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithNow overrides the clock, which is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLocation sets the location timestamps are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

// WithStyles replaces the default styles.
func WithStyles(s render.Styles) Option {
	return func(o *options) {
		o.styles = &s
	}
}
