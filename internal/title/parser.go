// Package title classifies pension file titles and pulls applicant details from them.
package title

import (
	"regexp"
	"strings"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// UnmappedCertainty is reported when a file-type token matched but has no category
const UnmappedCertainty = 0.6

// Rule is one entry in the ordered file-type rule table
type Rule struct {
	Name      string
	Pattern   *regexp.Regexp
	Token     string  // Fixed table token; empty means use the pattern's "tok" group
	RawToken  string  // Reported raw token for fixed-token rules
	Certainty float64 // Certainty when the token maps to a category
	Anchor    bool    // Match end marks where applicant and place begin
}

// DefaultRules returns the file-type rules in precedence order
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:      "srwt",
			Pattern:   regexp.MustCompile(`(?i)\bFile\s+(?P<tok>[SRWT])\.\s*(?P<id>[A-Za-z0-9.,\- ]+?)(?:,|\s|$)`),
			Certainty: 1.0,
			Anchor:    true,
		},
		{
			Name:      "blw",
			Pattern:   regexp.MustCompile(`(?i)\bFile\s+(?:B\.?\s*L\.?\s*W(?:t\.?)?|BLW)\.?\s*(?P<id>[A-Za-z0-9\-]+)`),
			Token:     "BLW",
			RawToken:  "B. L. Wt./BLW",
			Certainty: 1.0,
			Anchor:    true,
		},
		{
			Name:      "old_war",
			Pattern:   regexp.MustCompile(`(?i)\b(?:Old\s+War|OW)\b.*?\bFile\b\s*(?P<id>[A-Za-z0-9\-]+)`),
			Token:     "OW",
			RawToken:  "Old War",
			Certainty: 0.9,
			Anchor:    true,
		},
		{
			Name:      "na_accession",
			Pattern:   regexp.MustCompile(`(?i)\bN\.?\s*A\.?\s*Acc(?:ession)?\b`),
			Token:     "NA",
			RawToken:  "N A Acc",
			Certainty: 0.85,
		},
	}
}

var reFileWord = regexp.MustCompile(`\bFile\b`)

// Parser applies the rule table to titles
type Parser struct {
	rules  []Rule
	tokens map[string]string
}

// NewParser creates a parser with the default rules and the given token table
func NewParser(tokens map[string]string) *Parser {
	return NewParserWithRules(DefaultRules(), tokens)
}

// NewParserWithRules creates a parser with a custom rule order
func NewParserWithRules(rules []Rule, tokens map[string]string) *Parser {
	t := make(map[string]string, len(tokens))
	for k, v := range tokens {
		t[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return &Parser{rules: rules, tokens: t}
}

// Rules returns the rule table in evaluation order
func (p *Parser) Rules() []Rule {
	return p.rules
}

var defaultParser = NewParser(model.DefaultTables().FileTypeTokens)

// Parse parses title with the built-in rules and token table
func Parse(title string) model.TitleParseResult {
	return defaultParser.Parse(title)
}

// Parse classifies the file type by the first matching rule and splits the
// text after the file id into applicant and place candidates
func (p *Parser) Parse(title string) model.TitleParseResult {
	res := model.TitleParseResult{
		RawTitle:  title,
		IntroText: intro(title),
	}

	p.classify(title, &res)

	parts := p.trailingParts(title)
	if len(parts) > 0 {
		res.ApplicantCandidate = parts[0]
	}
	if len(parts) > 1 {
		res.PlaceCandidate = parts[1]
	}

	return res
}

func (p *Parser) classify(title string, res *model.TitleParseResult) {
	for _, rule := range p.rules {
		m := rule.Pattern.FindStringSubmatch(title)
		if m == nil {
			continue
		}

		token, raw := rule.Token, rule.RawToken
		if token == "" {
			if i := rule.Pattern.SubexpIndex("tok"); i > 0 {
				token = strings.ToUpper(m[i])
			}
			raw = token + "."
		}

		category := model.FileTypeCategory(p.tokens[token])
		certainty := rule.Certainty
		if rule.Token == "" && category == model.FileTypeNone {
			certainty = UnmappedCertainty
		}

		res.Rule = rule.Name
		res.RawToken = raw
		res.MatchSnippet = strings.TrimSpace(m[0])
		res.DetectedCategory = category
		res.Certainty = certainty
		if certainty >= model.MinCategoryCertainty {
			res.Category = category
		}
		return
	}
}

// trailingParts splits the text after the earliest anchoring match on commas.
// Without an anchor the whole title is split.
func (p *Parser) trailingParts(title string) []string {
	start, end := -1, -1
	for _, rule := range p.rules {
		if !rule.Anchor {
			continue
		}
		loc := rule.Pattern.FindStringIndex(title)
		if loc != nil && (start < 0 || loc[0] < start) {
			start, end = loc[0], loc[1]
		}
	}

	rest := title
	if end >= 0 {
		rest = strings.TrimSpace(title[end:])
	}

	var parts []string
	for _, part := range strings.Split(rest, ",") {
		if part = strings.Trim(part, " ."); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// intro is the text before the first "File" word on the first line
func intro(title string) string {
	loc := reFileWord.FindStringIndex(title)
	if loc == nil || strings.Contains(title[:loc[0]], "\n") {
		return title
	}
	return strings.Trim(title[:loc[0]], " -;,:.")
}
