package calendar

import (
	"fmt"
	"time"
)

// Month is a point in time truncated to month granularity.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf truncates t to its month, in t's own location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Normalize keeps the month within January..December by rolling the year value.
func (m Month) Normalize() Month {
	for m.Month > time.December {
		m.Month -= 12
		m.Year++
	}
	for m.Month < time.January {
		m.Month += 12
		m.Year--
	}
	return m
}

// Add moves the month by n months.
func (m Month) Add(n int) Month {
	m.Month += time.Month(n)
	return m.Normalize()
}

// Next moves to the following month.
func (m Month) Next() Month { return m.Add(1) }

// Previous moves to the preceding month.
func (m Month) Previous() Month { return m.Add(-1) }

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date returns midnight of the given day of the month in loc.
func (m Month) Date(day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, loc)
}

// FirstWeekday returns the weekday of the 1st.
func (m Month) FirstWeekday() time.Weekday {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// Contains reports whether t (in loc) falls inside the month.
func (m Month) Contains(t time.Time, loc *time.Location) bool {
	if loc != nil {
		t = t.In(loc)
	}
	return MonthOf(t) == m
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
