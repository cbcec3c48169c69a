// Package dates finds year mentions in pension texts and decides what each year refers to.
package dates

import (
	"regexp"
	"strconv"
	"strings"
)

// Years outside this range are discarded
const (
	MinYear = 1700
	MaxYear = 1900
)

const (
	centuryWords = `(seventeen|eighteen|nineteen)`
	decadeWords  = `(twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety)`
	unitWords    = `(one|two|three|four|five|six|seven|eight|nine)`
	// "forty five", "forty-five" and "forty and five"
	unitSep = `(?:\s+and\s+|\s*-\s*|\s+)?`
)

var (
	reNumericYear = regexp.MustCompile(`\b(17[0-9]{2}|18[0-9]{2}|1900)\b`)
	reWrittenYear = regexp.MustCompile(`\b` + centuryWords + `\s+(?:hundred\s+and\s+)?` + decadeWords + unitSep + unitWords + `?\b`)
	reWrittenAnd  = regexp.MustCompile(`\b` + centuryWords + `\s+and\s+` + decadeWords + unitSep + unitWords + `?\b`)
	reMixedYear   = regexp.MustCompile(`\b` + centuryWords + `\s+([0-9]{2})\b`)
)

var wordValues = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	"seventeen": 1700, "eighteen": 1800, "nineteen": 1900,
}

// Extract returns every year mentioned in text, in source order per pattern:
// numerals first, then spelled-out years, then a spelled century followed by
// two digits. Repeats are kept.
func Extract(text string) []string {
	years := []string{}
	text = strings.TrimSpace(text)
	if text == "" {
		return years
	}

	for _, m := range reNumericYear.FindAllStringSubmatch(text, -1) {
		years = appendInRange(years, m[1])
	}

	lower := strings.ToLower(text)
	for _, re := range []*regexp.Regexp{reWrittenYear, reWrittenAnd} {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			year := wordValues[m[1]] + wordValues[m[2]] + wordValues[m[3]]
			years = appendInRange(years, strconv.Itoa(year))
		}
	}

	for _, m := range reMixedYear.FindAllStringSubmatch(lower, -1) {
		suffix, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		years = appendInRange(years, strconv.Itoa(wordValues[m[1]]+suffix))
	}

	return years
}

func appendInRange(years []string, s string) []string {
	year, err := strconv.Atoi(s)
	if err != nil || year < MinYear || year > MaxYear {
		return years
	}
	return append(years, strconv.Itoa(year))
}
