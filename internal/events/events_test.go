package events

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromFileDateFormats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	body := `[
		{"name": "ms", "date": 1482766107232, "color": "#03a9f4"},
		{"name": "ms-string", "date": "1463522400000", "color": "purple"},
		{"name": "rfc3339", "date": "2024-02-29T10:00:00Z"},
		{"name": "day", "date": "2024-03-01"},
		{"name": "missing"},
		{"name": "garbage", "date": "soon"}
	]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if len(list) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(list))
	}
	if got := list[0].Date.UnixMilli(); got != 1482766107232 {
		t.Fatalf("numeric date = %d", got)
	}
	if got := list[1].Date.UnixMilli(); got != 1463522400000 {
		t.Fatalf("numeric string date = %d", got)
	}
	if got := list[2].Date.UTC().Day(); got != 29 {
		t.Fatalf("rfc3339 day = %d", got)
	}
	if y, m, d := list[3].Date.Date(); y != 2024 || m != time.March || d != 1 {
		t.Fatalf("plain date = %d-%d-%d", y, m, d)
	}
	for _, idx := range []int{4, 5} {
		if list[idx].Valid() {
			t.Fatalf("entry %q should be malformed", list[idx].Name)
		}
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestKeysStableAndDistinct(t *testing.T) {
	day := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	list := []Entry{
		{Date: day, Name: "standup", Color: "red"},
		{Date: day, Name: "standup", Color: "red"},
		{Date: day, Name: "review"},
		{ID: "fixed", Date: day, Name: "standup", Color: "red"},
	}
	keys := Keys(list)
	seen := map[Key]bool{}
	for _, k := range keys {
		if seen[k] {
			t.Fatalf("duplicate key %q in %v", k, keys)
		}
		seen[k] = true
	}

	again := Keys([]Entry{{Date: day, Name: "standup", Color: "red"}})
	if again[0] != keys[0] {
		t.Fatalf("key for an equal entry changed: %q vs %q", again[0], keys[0])
	}
	if keys[3] != Key("id:fixed") {
		t.Fatalf("explicit id should win, got %q", keys[3])
	}
}

func TestOnDay(t *testing.T) {
	loc := time.UTC
	list := []Entry{
		{Date: time.Date(2024, 2, 10, 8, 0, 0, 0, loc), Name: "a"},
		{Date: time.Date(2024, 2, 10, 23, 0, 0, 0, loc), Name: "b"},
		{Date: time.Date(2024, 2, 11, 0, 0, 0, 0, loc), Name: "c"},
		{Name: "broken"},
	}
	got := OnDay(list, time.Date(2024, 2, 10, 0, 0, 0, 0, loc))
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "b" {
		t.Fatalf("OnDay = %+v", got)
	}
}
