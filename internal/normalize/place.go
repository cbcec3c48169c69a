package normalize

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// FuzzyThreshold is the similarity ratio a place must exceed to match a state by spelling
const FuzzyThreshold = 0.8

// Trailing abbreviations, tried in order. Captured letters are joined and looked up.
var abbreviationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([a-z])\.([a-z])\.?\s*$`), // n.y. / n.y
	regexp.MustCompile(`\b([a-z])\.([a-z])\s*$`),
	regexp.MustCompile(`\b([a-z])\s+([a-z])\s*$`), // n h
	regexp.MustCompile(`\b([a-z]{2})\.?\s*$`),     // va / va.
	regexp.MustCompile(`\b(ind)\.?\s*$`),
}

var (
	reStateOf  = regexp.MustCompile(`state of\s+(.+)$`)
	reDistrict = regexp.MustCompile(`(?:in the )?district of ([a-z\s']+)|of ([a-z\s']+)\.?\s*$`)

	reNewYork       = regexp.MustCompile(`\bn\.?\s+york\b`)
	reSouthCarolina = regexp.MustCompile(`\b(?:south|s\.?)\s+carolina\b`)
	reNorthCarolina = regexp.MustCompile(`\bn\.?\s+carolina\b`)
	reNewHampshire  = regexp.MustCompile(`\bn\.?\s+h\b`)
)

// PlaceNormalizer maps a free-text place onto one of the canonical state names
type PlaceNormalizer struct {
	canonicals []string
	variants   map[string]string
}

// NewPlaceNormalizer builds the lookup from the given table. Canonical names are
// tried in table order during substring and fuzzy matching.
func NewPlaceNormalizer(table []model.StateVariants) *PlaceNormalizer {
	n := &PlaceNormalizer{variants: make(map[string]string)}
	for _, entry := range table {
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		n.canonicals = append(n.canonicals, name)
		for _, v := range entry.Variants {
			key := strings.ToLower(strings.TrimSpace(v))
			if _, exists := n.variants[key]; !exists {
				n.variants[key] = name
			}
		}
	}
	return n
}

// Normalize runs the matching stages in order and returns the first hit:
// trailing abbreviation, "state of X", well-known suffixes, "district of X",
// canonical substring, fuzzy spelling, exact variant. Unmatched input comes
// back unchanged as Unmapped.
func (n *PlaceNormalizer) Normalize(place string) Result {
	lower := strings.ToLower(strings.TrimSpace(place))
	if lower == "" {
		return Null()
	}

	stages := []func(string) (string, bool){
		n.byAbbreviation,
		n.byStateOf,
		bySuffix,
		n.byDistrict,
		n.bySubstring,
		n.byFuzzy,
		n.byVariant,
	}
	for _, stage := range stages {
		if state, ok := stage(lower); ok {
			return Canonical(state)
		}
	}

	return Unmapped(place)
}

func (n *PlaceNormalizer) byAbbreviation(lower string) (string, bool) {
	for _, re := range abbreviationPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if state, ok := n.variants[strings.Join(m[1:], "")]; ok {
			return state, true
		}
	}
	return "", false
}

func (n *PlaceNormalizer) byStateOf(lower string) (string, bool) {
	m := reStateOf.FindStringSubmatch(lower)
	if m == nil {
		return "", false
	}
	state, ok := n.variants[strings.TrimSpace(m[1])]
	return state, ok
}

func bySuffix(lower string) (string, bool) {
	switch {
	case strings.HasSuffix(lower, "york") || reNewYork.MatchString(lower):
		return "new york", true
	case reSouthCarolina.MatchString(lower):
		return "south carolina", true
	case strings.HasSuffix(lower, "carolina") || reNorthCarolina.MatchString(lower):
		return "north carolina", true
	case strings.HasSuffix(lower, "hampshire") || reNewHampshire.MatchString(lower):
		return "new hampshire", true
	}
	return "", false
}

func (n *PlaceNormalizer) byDistrict(lower string) (string, bool) {
	m := reDistrict.FindStringSubmatch(lower)
	if m == nil {
		return "", false
	}
	captured := m[1]
	if captured == "" {
		captured = m[2]
	}
	state, ok := n.variants[strings.TrimSpace(captured)]
	return state, ok
}

func (n *PlaceNormalizer) bySubstring(lower string) (string, bool) {
	for _, state := range n.canonicals {
		if strings.Contains(lower, state) {
			return state, true
		}
	}
	return "", false
}

func (n *PlaceNormalizer) byFuzzy(lower string) (string, bool) {
	chars := strings.Split(lower, "")
	for _, state := range n.canonicals {
		m := difflib.NewMatcher(strings.Split(state, ""), chars)
		if m.Ratio() > FuzzyThreshold {
			return state, true
		}
	}
	return "", false
}

func (n *PlaceNormalizer) byVariant(lower string) (string, bool) {
	state, ok := n.variants[lower]
	return state, ok
}

var defaultPlace = NewPlaceNormalizer(model.DefaultTables().States)

// Place normalizes with the built-in state table
func Place(place string) Result {
	return defaultPlace.Normalize(place)
}
