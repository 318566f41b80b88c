package events

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Entry is a single dated event shown as a dot on the calendar.
type Entry struct {
	ID    string    // Optional, takes precedence over the composite key
	Date  time.Time // Only the calendar day matters; zero means malformed
	Name  string
	Color string // Any lipgloss color ("#03a9f4", "5", ...); empty uses the default dot color
}

// Valid reports whether the entry carries a date and can be placed.
func (e Entry) Valid() bool {
	return !e.Date.IsZero()
}

// UnmarshalJSON accepts the date either as unix milliseconds (number or numeric
// string) or as an RFC 3339 / YYYY-MM-DD string. An unparseable or missing date
// leaves Date zero instead of failing the whole file.
func (e *Entry) UnmarshalJSON(data []byte) error {
	aux := struct {
		ID    string      `json:"id"`
		Date  interface{} `json:"date"`
		Name  string      `json:"name"`
		Color string      `json:"color"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.ID = aux.ID
	e.Name = aux.Name
	e.Color = aux.Color
	e.Date = time.Time{}

	switch v := aux.Date.(type) {
	case float64:
		e.Date = time.UnixMilli(int64(v))
	case string:
		e.Date = parseDate(v)
	}
	return nil
}

// MarshalJSON writes the date as unix milliseconds.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := struct {
		ID    string `json:"id,omitempty"`
		Date  int64  `json:"date,omitempty"`
		Name  string `json:"name,omitempty"`
		Color string `json:"color,omitempty"`
	}{
		ID:    e.ID,
		Name:  e.Name,
		Color: e.Color,
	}
	if e.Valid() {
		out.Date = e.Date.UnixMilli()
	}
	return json.Marshal(out)
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t
	}
	return time.Time{}
}

// Key identifies an entry for incremental add/remove tracking.
type Key string

// baseKey derives the identity of a single entry without regard to duplicates.
func (e Entry) baseKey() Key {
	if e.ID != "" {
		return Key("id:" + e.ID)
	}
	var ms int64
	if e.Valid() {
		ms = e.Date.UnixMilli()
	}
	return Key(fmt.Sprintf("%d|%s|%s", ms, e.Name, e.Color))
}

// Keys returns one key per entry, in order. Entries sharing the same identity
// receive an ordinal suffix so every entry keeps its own marker, and removing
// one of several identical entries removes exactly one marker.
func Keys(list []Entry) []Key {
	keys := make([]Key, len(list))
	seen := make(map[Key]int, len(list))
	for i, e := range list {
		base := e.baseKey()
		n := seen[base]
		seen[base] = n + 1
		if n == 0 {
			keys[i] = base
		} else {
			keys[i] = Key(fmt.Sprintf("%s#%d", base, n))
		}
	}
	return keys
}

// OnDay returns the entries whose date falls on the same calendar day as day,
// comparing in day's location.
func OnDay(list []Entry, day time.Time) []Entry {
	y, m, d := day.Date()
	var out []Entry
	for _, e := range list {
		if !e.Valid() {
			continue
		}
		ey, em, ed := e.Date.In(day.Location()).Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}
