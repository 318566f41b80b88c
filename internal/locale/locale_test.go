package locale

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestResolveEnglish(t *testing.T) {
	tbl := Resolve("en")
	want := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if tbl.Short != want {
		t.Fatalf("Short = %v want %v", tbl.Short, want)
	}
	if tbl.FirstDay != time.Sunday {
		t.Fatalf("en week should start on Sunday, got %v", tbl.FirstDay)
	}
}

func TestResolvePOSIXName(t *testing.T) {
	tbl := Resolve("de_DE.UTF-8")
	if tbl.FirstDay != time.Monday {
		t.Fatalf("de week should start on Monday, got %v", tbl.FirstDay)
	}
	if r := []rune(tbl.Short[time.Tuesday]); len(r) == 0 || r[0] != 'D' {
		t.Fatalf("expected German Tuesday (Di), got %q", tbl.Short[time.Tuesday])
	}
}

func TestResolveUnknownFallsBack(t *testing.T) {
	for _, name := range []string{"", "???", "zz-ZZ"} {
		tbl := Resolve(name)
		if tbl.Tag != language.MustParse(Fallback) {
			t.Fatalf("Resolve(%q) tag = %v want fallback", name, tbl.Tag)
		}
		if tbl.Short[time.Monday] != "Mon" {
			t.Fatalf("Resolve(%q) should use English names, got %v", name, tbl.Short)
		}
	}
}

func TestFirstDayByRegion(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
	}{
		{"en-US", time.Sunday},
		{"en-GB", time.Monday},
		{"ja", time.Sunday},
		{"fr", time.Monday},
		{"ar-EG", time.Saturday},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := firstDay(language.MustParse(tt.in)); got != tt.want {
				t.Fatalf("firstDay(%s)=%v want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "C")
	if got := FromEnv(); got != Fallback {
		t.Fatalf("FromEnv()=%q want fallback", got)
	}
	t.Setenv("LC_TIME", "fr_FR.UTF-8")
	if got := FromEnv(); got != "fr_FR.UTF-8" {
		t.Fatalf("FromEnv()=%q", got)
	}
}

func TestMonthTitle(t *testing.T) {
	when := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	if got := Resolve("en").MonthTitle(when); got != "February 2024" {
		t.Fatalf("MonthTitle = %q", got)
	}
	if got := (Table{}).MonthTitle(when); got != "February 2024" {
		t.Fatalf("zero table MonthTitle = %q", got)
	}
}
