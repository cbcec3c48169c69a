package dates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// ContextWindow is how many characters either side of a year are searched for keywords
const ContextWindow = 100

// Historical periods
const (
	FirstPensionActYear = 1818
	RevolutionStart     = 1775
	RevolutionEnd       = 1783
	OldWarStart         = 1790
	OldWarEnd           = 1815
)

// Classifier sorts the years of one text into application, service and other buckets
type Classifier struct {
	application  []WeightedPattern
	service      []WeightedPattern
	appWords     []string
	serviceWords []string
}

// NewClassifier creates a classifier with the default pattern and keyword tables
func NewClassifier() *Classifier {
	return &Classifier{
		application:  DefaultApplicationPatterns(),
		service:      DefaultServicePatterns(),
		appWords:     DefaultApplicationWords,
		serviceWords: DefaultServiceWords,
	}
}

var defaultClassifier = NewClassifier()

// Classify sorts years with the default tables
func Classify(text string, years []string, fileType model.FileTypeCategory) model.DateClassification {
	return defaultClassifier.Classify(text, years, fileType)
}

// period describes where a year falls historically
type period struct {
	year        int
	oldWarFile  bool
	revolution  bool
	oldWar      bool
	application bool
}

func newPeriod(year int, oldWarFile bool) period {
	return period{
		year:        year,
		oldWarFile:  oldWarFile,
		revolution:  year >= RevolutionStart && year <= RevolutionEnd,
		oldWar:      year >= OldWarStart && year <= OldWarEnd,
		application: year >= FirstPensionActYear,
	}
}

// serviceEra reports whether the year falls in the war the file type points to
func (p period) serviceEra() bool {
	return (p.oldWarFile && p.oldWar) || (!p.oldWarFile && p.revolution)
}

// Classify places each distinct year in exactly one bucket. Years are scored
// against the weighted phrase tables; unscored years fall back to keyword
// counts near each mention, then to historical period.
func (c *Classifier) Classify(text string, years []string, fileType model.FileTypeCategory) model.DateClassification {
	out := model.DateClassification{
		ApplicationDates: []string{},
		ServiceDates:     []string{},
		OtherDates:       []string{},
		ConfidenceScores: map[string]float64{},
	}

	distinct := dedupe(years)
	if text == "" || len(distinct) == 0 {
		out.OtherDates = append(out.OtherDates, distinct...)
		return out
	}

	lower := strings.ToLower(text)
	appScores := scoreCaptures(lower, c.application)
	serviceScores := scoreCaptures(lower, c.service)
	mentions := yearMentions(lower)
	oldWarFile := fileType == model.FileTypeOldWar

	for _, date := range distinct {
		year, err := strconv.Atoi(date)
		if err != nil {
			out.OtherDates = append(out.OtherDates, date)
			out.ConfidenceScores[date] = 0
			continue
		}
		p := newPeriod(year, oldWarFile)

		kind, confidence := c.score(lower, mentions[date], p, appScores[date], serviceScores[date])
		kind, confidence = assign(kind, confidence, p)

		switch kind {
		case model.DateApplication:
			out.ApplicationDates = append(out.ApplicationDates, date)
		case model.DateService:
			out.ServiceDates = append(out.ServiceDates, date)
		default:
			out.OtherDates = append(out.OtherDates, date)
		}
		out.ConfidenceScores[date] = confidence
	}

	return out
}

// score runs the pattern, keyword-window and historical stages in turn,
// stopping at the first that yields a confidence
func (c *Classifier) score(lower string, mentions [][]int, p period, appScore, serviceScore int) (model.DateType, float64) {
	kind := model.DateOther
	confidence := 0.0

	if appScore > 0 {
		kind = model.DateApplication
		base := math.Min(0.3+float64(appScore)*0.2, 0.9)
		if p.application {
			confidence = base + 0.1
		} else {
			confidence = base
		}
	}

	// A strong application score is not overridden
	if serviceScore > 0 && confidence < 0.8 {
		kind = model.DateService
		base := math.Min(0.2+float64(serviceScore)*0.15, 0.8)
		if p.serviceEra() {
			base += 0.2
		}
		confidence = math.Max(confidence, base)
	}

	if confidence == 0 {
		kind, confidence = c.scoreWindow(lower, mentions, p, kind)
	}

	if confidence == 0 {
		switch {
		case p.application:
			kind, confidence = model.DateApplication, 0.5
		case p.serviceEra():
			kind, confidence = model.DateService, 0.4
		}
	}

	return kind, confidence
}

// scoreWindow counts keywords around every mention of a year. Each mention
// where one family outnumbers the other overrides earlier ones.
func (c *Classifier) scoreWindow(lower string, mentions [][]int, p period, kind model.DateType) (model.DateType, float64) {
	confidence := 0.0

	for _, loc := range mentions {
		window := lower[runesBack(lower, loc[0], ContextWindow):runesForward(lower, loc[1], ContextWindow)]

		appCount := countContained(window, c.appWords)
		serviceCount := countContained(window, c.serviceWords)

		switch {
		case appCount > serviceCount && appCount > 0:
			base := 0.4
			if p.application {
				base += 0.2
			}
			kind, confidence = model.DateApplication, base
		case serviceCount > appCount && serviceCount > 0:
			base := 0.3
			if p.serviceEra() {
				base += 0.3
			}
			kind, confidence = model.DateService, base
		}
	}

	return kind, confidence
}

// assign applies the bucket thresholds, falling back to the historical
// period when the evidence is too weak
func assign(kind model.DateType, confidence float64, p period) (model.DateType, float64) {
	switch {
	case kind == model.DateApplication && confidence > 0.4:
		return model.DateApplication, confidence
	case kind == model.DateService && confidence > 0.3:
		return model.DateService, confidence
	case p.application:
		if kind != model.DateService || confidence < 0.5 {
			return model.DateApplication, 0.3
		}
		return model.DateService, confidence
	case p.revolution:
		return model.DateService, 0.4
	case p.oldWarFile && p.oldWar:
		return model.DateService, 0.4
	default:
		return model.DateOther, confidence
	}
}

// scoreCaptures sums pattern weights per captured year over all
// non-overlapping matches of every pattern
func scoreCaptures(lower string, patterns []WeightedPattern) map[string]int {
	scores := make(map[string]int)
	for _, wp := range patterns {
		for _, m := range wp.Pattern.FindAllStringSubmatch(lower, -1) {
			scores[m[1]] += wp.Weight
		}
	}
	return scores
}

var reFourDigits = regexp.MustCompile(`\b\d{4}\b`)

// yearMentions indexes the byte span of every standalone four-digit number
func yearMentions(lower string) map[string][][]int {
	mentions := make(map[string][][]int)
	for _, loc := range reFourDigits.FindAllStringIndex(lower, -1) {
		year := lower[loc[0]:loc[1]]
		mentions[year] = append(mentions[year], loc)
	}
	return mentions
}

// runesBack steps n characters left of byte offset i
func runesBack(s string, i, n int) int {
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// runesForward steps n characters right of byte offset i
func runesForward(s string, i, n int) int {
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

func countContained(window string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(window, w) {
			n++
		}
	}
	return n
}

func dedupe(years []string) []string {
	seen := make(map[string]bool, len(years))
	out := make([]string, 0, len(years))
	for _, y := range years {
		if seen[y] {
			continue
		}
		seen[y] = true
		out = append(out, y)
	}
	return out
}
