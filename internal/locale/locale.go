// Package locale resolves weekday names and the native week start for a
// locale string such as "en", "fr-CA" or "ja_JP.UTF-8".
package locale

import (
	"os"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// Fallback is used whenever a locale cannot be parsed or matched.
const Fallback = "en-US"

// Table holds the locale data the calendar needs.
type Table struct {
	Tag      language.Tag
	Short    [7]string // abbreviated weekday names indexed by time.Weekday
	FirstDay time.Weekday
	Locale   monday.Locale
}

// MonthTitle formats the month of when as a localized "January 2006" title.
func (t Table) MonthTitle(when time.Time) string {
	loc := t.Locale
	if loc == "" {
		loc = monday.LocaleEnUS
	}
	return monday.Format(when, "January 2006", loc)
}

var supported = []struct {
	tag    language.Tag
	locale monday.Locale
}{
	{language.AmericanEnglish, monday.LocaleEnUS},
	{language.BritishEnglish, monday.LocaleEnGB},
	{language.German, monday.LocaleDeDE},
	{language.French, monday.LocaleFrFR},
	{language.CanadianFrench, monday.LocaleFrCA},
	{language.Spanish, monday.LocaleEsES},
	{language.Italian, monday.LocaleItIT},
	{language.Dutch, monday.LocaleNlNL},
	{language.Portuguese, monday.LocalePtPT},
	{language.BrazilianPortuguese, monday.LocalePtBR},
	{language.Russian, monday.LocaleRuRU},
	{language.Ukrainian, monday.LocaleUkUA},
	{language.Polish, monday.LocalePlPL},
	{language.Swedish, monday.LocaleSvSE},
	{language.Finnish, monday.LocaleFiFI},
	{language.Danish, monday.LocaleDaDK},
	{language.Turkish, monday.LocaleTrTR},
	{language.Japanese, monday.LocaleJaJP},
	{language.Korean, monday.LocaleKoKR},
	{language.SimplifiedChinese, monday.LocaleZhCN},
	{language.TraditionalChinese, monday.LocaleZhTW},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = s.tag
	}
	return language.NewMatcher(tags)
}()

// Regions whose week does not start on Monday.
var (
	sundayRegions = map[string]bool{
		"US": true, "CA": true, "MX": true, "BR": true, "JP": true, "KR": true,
		"TW": true, "HK": true, "IL": true, "IN": true, "PH": true, "ZA": true,
	}
	saturdayRegions = map[string]bool{
		"AE": true, "AF": true, "BH": true, "DZ": true, "EG": true, "IQ": true,
		"IR": true, "JO": true, "KW": true, "LY": true, "OM": true, "QA": true,
		"SD": true, "SY": true,
	}
)

// referenceSunday is any Sunday; names are formatted from the week after it.
var referenceSunday = time.Date(2023, time.January, 1, 12, 0, 0, 0, time.UTC)

// Resolve returns the table for name. Unknown or malformed names silently
// fall back to Fallback; Resolve never fails.
func Resolve(name string) Table {
	tag, err := language.Parse(normalize(name))
	if err != nil {
		tag = language.MustParse(Fallback)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		tag = language.MustParse(Fallback)
		idx = 0
	}
	loc := supported[idx].locale

	t := Table{
		Tag:      tag,
		FirstDay: firstDay(tag),
		Locale:   loc,
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		t.Short[d] = monday.Format(referenceSunday.AddDate(0, 0, int(d)), "Mon", loc)
	}
	return t
}

// FromEnv picks the locale from the usual POSIX variables, or Fallback.
func FromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if v := os.Getenv(key); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return Fallback
}

// normalize turns POSIX style names ("de_DE.UTF-8@euro") into BCP 47.
func normalize(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	return strings.ReplaceAll(name, "_", "-")
}

func firstDay(tag language.Tag) time.Weekday {
	region, _ := tag.Region()
	switch code := region.String(); {
	case sundayRegions[code]:
		return time.Sunday
	case saturdayRegions[code]:
		return time.Saturday
	}
	return time.Monday
}
