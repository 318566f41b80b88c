// Package gesture turns drag gestures into live carousel offsets and a
// decision about switching to an adjacent month.
package gesture

import (
	"fmt"
	"strings"
)

// Threshold is the fraction of the component extent a drag must exceed,
// exclusively, to switch months.
const Threshold = 0.2

// Axis is a swipe direction.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseAxis accepts "horizontal" or "vertical" (or their first letter).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown swipe direction %q", s)
}

// Phase of a drag gesture.
type Phase int

const (
	Start Phase = iota
	Move
	End
)

// Event is one step of a drag. DX and DY are cumulative since Start.
type Event struct {
	Phase Phase
	DX    int
	DY    int
}

// Outcome is the decision taken when a gesture ends.
type Outcome int

const (
	None     Outcome = iota // gesture still running or ignored
	Neutral                 // settle back, no month change
	ToPrevious
	ToNext
)

// Delta is the month change the outcome commits.
func (o Outcome) Delta() int {
	switch o {
	case ToPrevious:
		return -1
	case ToNext:
		return 1
	}
	return 0
}

func (o Outcome) String() string {
	switch o {
	case Neutral:
		return "neutral"
	case ToPrevious:
		return "previous"
	case ToNext:
		return "next"
	}
	return "none"
}

// Decide maps a displacement ratio onto an outcome. Both boundaries are exclusive.
func Decide(ratio float64) Outcome {
	switch {
	case ratio > Threshold:
		return ToPrevious
	case ratio < -Threshold:
		return ToNext
	}
	return Neutral
}

// Result tells the caller how to position the three grids. Offset is the
// translation of the current grid along the swipe axis; the previous grid sits
// at Offset-extent and the next at Offset+extent.
type Result struct {
	Offset  int
	Live    bool    // apply immediately, without a transition
	Settle  bool    // animate to Offset, then commit Outcome
	Outcome Outcome // set when Settle is true
	Ratio   float64
}

// Navigator is the drag state machine: idle until Start, then tracking with
// the axis locked on the first Move.
type Navigator struct {
	direction Axis
	tracking  bool
	locked    bool
	axis      Axis
	moved     bool
}

// New returns an idle navigator for the given swipe direction.
func New(direction Axis) *Navigator {
	return &Navigator{direction: direction}
}

// Direction returns the configured swipe direction.
func (n *Navigator) Direction() Axis {
	return n.direction
}

// SetDirection changes the swipe direction and abandons any active gesture.
func (n *Navigator) SetDirection(a Axis) {
	n.direction = a
	n.Reset()
}

// Reset returns to idle and clears the axis lock.
func (n *Navigator) Reset() {
	n.tracking = false
	n.locked = false
	n.moved = false
}

// Tracking reports whether a gesture is in progress.
func (n *Navigator) Tracking() bool {
	return n.tracking
}

// Moved reports whether the current gesture has seen any movement.
func (n *Navigator) Moved() bool {
	return n.moved
}

// Passthrough reports whether the active gesture locked onto the other axis.
func (n *Navigator) Passthrough() bool {
	return n.tracking && n.locked && n.axis != n.direction
}

// Handle feeds one gesture event. width and height are the component extent
// in the same units as the displacement.
func (n *Navigator) Handle(ev Event, width, height int) Result {
	switch ev.Phase {
	case Start:
		n.tracking = true
		n.locked = false
		n.moved = false
		return Result{}
	case Move:
		if !n.tracking {
			return Result{}
		}
		if ev.DX != 0 || ev.DY != 0 {
			n.moved = true
		}
		if !n.locked {
			if ev.DX == 0 && ev.DY == 0 {
				return Result{}
			}
			n.axis = Vertical
			if abs(ev.DX) > abs(ev.DY) {
				n.axis = Horizontal
			}
			n.locked = true
		}
		if n.axis != n.direction {
			return Result{}
		}
		return Result{Offset: n.along(ev), Live: true}
	case End:
		if !n.tracking {
			return Result{}
		}
		extent := width
		if n.direction == Vertical {
			extent = height
		}
		n.Reset()
		if extent <= 0 {
			return Result{Settle: true, Outcome: Neutral}
		}
		ratio := float64(n.along(ev)) / float64(extent)
		res := Result{Settle: true, Outcome: Decide(ratio), Ratio: ratio}
		switch res.Outcome {
		case ToPrevious:
			res.Offset = extent
		case ToNext:
			res.Offset = -extent
		}
		return res
	}
	return Result{}
}

func (n *Navigator) along(ev Event) int {
	if n.direction == Vertical {
		return ev.DY
	}
	return ev.DX
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
