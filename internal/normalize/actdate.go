package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/ppiankov/pensionfacts/internal/model"
)

const isoDate = "2006-01-02"

var reOrdinal = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\b`)

// ActDateISO parses an act date such as "March 18, 1818", "18th March 1818"
// or "3/18/1818" and returns it as YYYY-MM-DD
func ActDateISO(s string) (string, bool) {
	s = strings.TrimSpace(reOrdinal.ReplaceAllString(s, "$1"))
	if s == "" {
		return "", false
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return "", false
	}
	return t.Format(isoDate), true
}

// ActRegistry looks ISO dates up in a table of known pension acts
type ActRegistry struct {
	acts map[string]string
}

// NewActRegistry indexes the given acts by date
func NewActRegistry(acts []model.KnownAct) *ActRegistry {
	r := &ActRegistry{acts: make(map[string]string, len(acts))}
	for _, a := range acts {
		r.acts[strings.TrimSpace(a.Date)] = a.Description
	}
	return r
}

// Lookup returns the description of the act passed on iso
func (r *ActRegistry) Lookup(iso string) (string, bool) {
	desc, ok := r.acts[strings.TrimSpace(iso)]
	return desc, ok
}

var defaultActs = NewActRegistry(model.DefaultTables().KnownActs)

// KnownAct looks iso up in the built-in act table
func KnownAct(iso string) (string, bool) {
	return defaultActs.Lookup(iso)
}

// FormatAct renders an ISO date the way act names are cited, e.g. "Act 18th March, 1818".
// Malformed dates give an empty string.
func FormatAct(iso string) string {
	t, err := time.Parse(isoDate, strings.TrimSpace(iso))
	if err != nil {
		return ""
	}
	return fmt.Sprintf("Act %d%s %s, %d", t.Day(), ordinalSuffix(t.Day()), t.Month(), t.Year())
}

func ordinalSuffix(day int) string {
	if teen := day % 100; teen >= 11 && teen <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
