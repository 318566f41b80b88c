package render

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/lululau/swipecal/internal/calendar"
	"github.com/lululau/swipecal/internal/gesture"
	"github.com/lululau/swipecal/internal/locale"
)

// PlainOptions controls how the non-interactive renderer behaves.
type PlainOptions struct {
	Writer io.Writer
	State  *calendar.State
	Locale locale.Table
	Width  int
}

// RunPlain renders the displayed month exactly once.
func RunPlain(opts PlainOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.State == nil {
		return errors.New("no calendar state to render")
	}
	width := opts.Width
	if width == 0 {
		width = DetectWidth()
	}

	styles := DefaultStyles()
	st := opts.State
	header := calendar.Header(st.FirstDay(), opts.Locale.Short)
	layout := NewLayout(st, header)
	title := opts.Locale.MonthTitle(st.Displayed().Date(1, st.Location()))

	body := Carousel(st, header, layout, styles, gesture.Horizontal, 0, Cursor{})
	if _, err := fmt.Fprintln(opts.Writer, styles.Title.Render(title)+"\n\n"+styles.Frame.Render(body)); err != nil {
		return err
	}

	selected, ok := st.Selected()
	if !ok || len(st.Events()) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(opts.Writer, "\n"+Agenda(selected.In(st.Location()), st.Events(), width, styles))
	return err
}

// DetectWidth tries to determine the terminal width, falling back to 100 cols.
func DetectWidth() int {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			return w
		}
	}
	return 100
}
