package clean

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/pensionfacts/internal/model"
)

const (
	dollarNumber = `(\d+(?:,\d{3})*(?:\.\d{2})?)`
	acreNumber   = `(\d+(?:,\d{3})*(?:\.\d+)?)`
)

// Every pattern is scanned independently, so one figure may be reported
// once per pattern it satisfies.
var dollarPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$` + dollarNumber),
	regexp.MustCompile(`(?i)` + dollarNumber + `\s*dollars?`),
	regexp.MustCompile(`(?i)` + dollarNumber + `\s*\$`),
	regexp.MustCompile(`(?i)` + dollarNumber + `\s*per\s+annum`),
	regexp.MustCompile(`(?i)` + dollarNumber + `\s*per\s+year`),
	regexp.MustCompile(`(?i)rate\s+of\s+` + dollarNumber),
	regexp.MustCompile(`(?i)` + dollarNumber + `\s*cents?`),
}

var acrePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)` + acreNumber + `\s*acres?`),
	regexp.MustCompile(`(?i)` + acreNumber + `\s*ac\b`),
	regexp.MustCompile(`(?i)` + acreNumber + `\s*acres?\s+of\s+land`),
	regexp.MustCompile(`(?i)` + acreNumber + `\s*acres?\s+granted`),
	regexp.MustCompile(`(?i)` + acreNumber + `\s*acres?\s+entitled`),
	regexp.MustCompile(`(?i)warrant\s+for\s+` + acreNumber + `\s*acres?`),
	regexp.MustCompile(`(?i)` + acreNumber + `\s*acres?\s+of\s+bounty`),
}

// ExtractAmounts scans text with the small built-in amounts dictionary
func ExtractAmounts(text string) model.Amounts {
	return amountsCleaner.ExtractAmounts(text)
}

// ExtractAmounts runs the amounts-safe variant of c over text, then scans it
// for dollar and acre figures. Only positive values are kept; unparsable
// captures are skipped.
func (c *Cleaner) ExtractAmounts(text string) model.Amounts {
	amounts := model.Amounts{Dollars: []float64{}, Acres: []float64{}}
	if strings.TrimSpace(text) == "" {
		return amounts
	}

	cleaned := c.CleanForAmounts(text)
	amounts.Dollars = scanAmounts(cleaned, dollarPatterns, amounts.Dollars)
	amounts.Acres = scanAmounts(cleaned, acrePatterns, amounts.Acres)
	return amounts
}

func scanAmounts(text string, patterns []*regexp.Regexp, out []float64) []float64 {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil || v <= 0 {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}
