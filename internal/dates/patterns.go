package dates

import "regexp"

// WeightedPattern scores the year captured by Pattern's first group
type WeightedPattern struct {
	Pattern *regexp.Regexp
	Weight  int
}

func weighted(weight int, exprs ...string) []WeightedPattern {
	out := make([]WeightedPattern, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, WeightedPattern{Pattern: regexp.MustCompile(expr), Weight: weight})
	}
	return out
}

// DefaultApplicationPatterns returns phrases that put a year on the application paperwork
func DefaultApplicationPatterns() []WeightedPattern {
	patterns := weighted(3,
		`personally\s+appeared.*?(\d{4})`,
		`sworn\s+and\s+subscribed.*?(\d{4})`,
		`declaration.*?(\d{4})`,
		`justice\s+of\s+the\s+peace.*?(\d{4})`,
		`county\s+court.*?(\d{4})`,
		`before\s+me.*?(\d{4})`,
	)
	return append(patterns, weighted(2,
		`on\s+this\s+\d+\s+day\s+of\s+\w+\s+(\d{4})`,
		`this\s+\d+\s+day\s+of\s+\w+\s+(\d{4})`,
		`filed.*?(\d{4})`,
		`application.*?(\d{4})`,
		`made\s+application.*?(\d{4})`,
		`applied.*?(\d{4})`,
		`petition.*?(\d{4})`,
		`declared.*?(\d{4})`,
		`subscribed.*?(\d{4})`,
		`witness.*?(\d{4})`,
		`according\s+to\s+law.*?(\d{4})`,
		`clerk.*?(\d{4})`,
		`office.*?(\d{4})`,
		`pension\s+act.*?(\d{4})`,
		`act\s+of\s+congress.*?(\d{4})`,
	)...)
}

// DefaultServicePatterns returns phrases that put a year on military service
func DefaultServicePatterns() []WeightedPattern {
	patterns := weighted(3,
		`enlisted.*?(\d{4})`,
		`served.*?(\d{4})`,
		`discharged.*?(\d{4})`,
		`revolutionary\s+war.*?(\d{4})`,
		`continental\s+army.*?(\d{4})`,
	)
	return append(patterns, weighted(2,
		`service.*?(\d{4})`,
		`regiment.*?(\d{4})`,
		`company.*?(\d{4})`,
		`captain.*?(\d{4})`,
		`colonel.*?(\d{4})`,
		`war.*?(\d{4})`,
		`battle.*?(\d{4})`,
		`campaign.*?(\d{4})`,
		`army.*?(\d{4})`,
		`soldier.*?(\d{4})`,
		`military.*?(\d{4})`,
		`revolutionary.*?(\d{4})`,
		`continental.*?(\d{4})`,
	)...)
}

// Keywords counted in the window around a year when no pattern scored it
var (
	DefaultApplicationWords = []string{"appeared", "declaration", "sworn", "filed", "application", "petition", "justice", "court"}
	DefaultServiceWords     = []string{"enlisted", "served", "discharged", "regiment", "company", "war", "battle", "army"}
)
