package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lululau/swipecal/internal/calendar"
	"github.com/lululau/swipecal/internal/events"
	"github.com/lululau/swipecal/internal/gesture"
	"github.com/lululau/swipecal/internal/logger"
	"github.com/lululau/swipecal/internal/render"
	"github.com/lululau/swipecal/internal/tui"
	"github.com/lululau/swipecal/internal/widget"
)

var (
	plain          = flag.Bool("n", false, "render once and exit (non-interactive)")
	eventsFile     = flag.String("e", "", "events JSON file (default: <config dir>/swipecal/events.json)")
	eventsFileLong = flag.String("events", "", "events JSON file (default: <config dir>/swipecal/events.json)")
	localeName     = flag.String("l", "", "locale, e.g. en-GB or de_DE.UTF-8 (default: from LC_ALL/LC_TIME/LANG)")
	localeNameLong = flag.String("locale", "", "locale, e.g. en-GB or de_DE.UTF-8 (default: from LC_ALL/LC_TIME/LANG)")
	firstDay       = flag.Int("f", -1, "first day of the week, 0 (Sunday) to 6 (default: from locale)")
	firstDayLong   = flag.Int("first-day", -1, "first day of the week, 0 (Sunday) to 6 (default: from locale)")
	direction      = flag.String("d", "", "swipe direction: horizontal or vertical")
	directionLong  = flag.String("direction", "", "swipe direction: horizontal or vertical")
	swipe          = flag.Bool("s", true, "enable swipe navigation")
	swipeLong      = flag.Bool("swipe", true, "enable swipe navigation")
	selectable     = flag.Bool("select", true, "enable date selection")
	textSelect     = flag.Bool("t", false, "leave the mouse to the terminal for text selection")
	textSelectLong = flag.Bool("text-select", false, "leave the mouse to the terminal for text selection")
	lunar          = flag.Bool("lunar", false, "show Chinese lunar dates under each day")
	noColor        = flag.Bool("N", false, "disable all color output")
	noColorLong    = flag.Bool("no-color", false, "disable all color output")
	logFile        = flag.String("log", "", "write debug logs to FILE")
	logLevel       = flag.String("log-level", "debug", "log level: debug, info, warn or error")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] [year] [month]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), `
  no arguments   show the current month
  9              show September of this year
  1983           show January 1983
  2012 12        show December 2012

Options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	if boolValue(*noColor, *noColorLong, false) {
		render.SetNoColor(true)
	}

	var logOut io.Writer
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "swipecal")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log := logger.Setup(logOut, *logLevel)

	month, err := parseRequest(time.Now(), flag.Args())
	if err != nil {
		return err
	}

	list, err := loadEvents(firstNonEmpty(*eventsFile, *eventsFileLong))
	if err != nil {
		return err
	}

	axis, err := gesture.ParseAxis(firstNonEmpty(*direction, *directionLong))
	if err != nil {
		return err
	}

	opts := []widget.Option{
		widget.WithSelectedMonth(month),
		widget.WithEvents(list),
		widget.WithSelectable(*selectable),
		widget.WithSwipeable(boolValue(*swipe, *swipeLong, true)),
		widget.WithSwipeDirection(axis),
		widget.WithAllowTextSelection(boolValue(*textSelect, *textSelectLong, false)),
		widget.WithLogger(log),
	}
	if name := firstNonEmpty(*localeName, *localeNameLong); name != "" {
		opts = append(opts, widget.WithLocale(name))
	}
	if day := firstDayValue(*firstDay, *firstDayLong); day >= 0 {
		if day > 6 {
			return fmt.Errorf("first day must be between 0 and 6 (got %d)", day)
		}
		opts = append(opts, widget.WithFirstDay(time.Weekday(day)))
	}
	if *lunar {
		opts = append(opts, widget.WithAnnotator(calendar.LunarAnnotator))
	}

	cal := widget.New(opts...)
	log.Info("starting", "month", cal.Displayed().String(), "locale", cal.Locale().Tag.String(), "events", len(list))

	if *plain {
		return render.RunPlain(render.PlainOptions{
			State:  cal.State(),
			Locale: cal.Locale(),
		})
	}
	return tui.Run(cal)
}

// loadEvents reads path when given. Without a path the default file is tried;
// problems with it are reported but not fatal.
func loadEvents(path string) ([]events.Entry, error) {
	if path != "" {
		return events.LoadFromFile(path)
	}
	list, err := events.LoadDefault()
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: cannot load default events file:", err)
		return nil, nil
	}
	return list, nil
}

func parseRequest(now time.Time, args []string) (time.Time, error) {
	year := now.Year()
	month := now.Month()

	switch len(args) {
	case 0:
		// defaults
	case 1:
		val, err := parseNumber(args[0], "month/year")
		if err != nil {
			return time.Time{}, err
		}
		if val >= 1 && val <= 12 {
			month = time.Month(val)
		} else {
			year = val
			month = time.January
		}
	case 2:
		y, err := parseNumber(args[0], "year")
		if err != nil {
			return time.Time{}, err
		}
		m, err := parseNumber(args[1], "month")
		if err != nil {
			return time.Time{}, err
		}
		if m < 1 || m > 12 {
			return time.Time{}, fmt.Errorf("month must be between 1 and 12 (got %d)", m)
		}
		year = y
		month = time.Month(m)
	default:
		return time.Time{}, errors.New("too many arguments, see --help")
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, now.Location()), nil
}

func parseNumber(value string, field string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as %s", value, field)
	}
	return n, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// boolValue combines a short/long flag pair: whichever was moved off the
// default wins, the short one first.
func boolValue(short, long, def bool) bool {
	if short != def {
		return short
	}
	return long
}

func firstDayValue(short, long int) int {
	if short >= 0 {
		return short
	}
	return long
}
