package calendar

import (
	"time"

	calendarlib "github.com/Lofanmi/chinese-calendar-golang/calendar"
)

// Supported Gregorian year range enforced by the upstream lunar library.
const (
	MinLunarYear = 1900
	MaxLunarYear = 3000
)

// LunarAnnotator labels each day with its Chinese lunar calendar name. Solar
// terms take precedence, followed by the lunar month name on the first day of
// a lunar month. Days outside the supported range get no label.
func LunarAnnotator(day time.Time) string {
	if day.Year() < MinLunarYear || day.Year() > MaxLunarYear {
		return ""
	}
	cal := calendarlib.BySolar(
		int64(day.Year()),
		int64(day.Month()),
		int64(day.Day()),
		12, 0, 0,
	)
	if solarterm := cal.Solar.CurrentSolarterm; solarterm != nil {
		if solarterm.IsInDay(&day) {
			return solarterm.Alias()
		}
	}
	dayAlias := cal.Lunar.DayAlias()
	if dayAlias == "初一" {
		if monthAlias := cal.Lunar.MonthAlias(); monthAlias != "" {
			return monthAlias
		}
	}
	return dayAlias
}
