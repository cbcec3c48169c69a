// Package extract pulls structured award details out of allowance-phrase segments.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/pensionfacts/internal/model"
)

const properName = `([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`

// FrequencyRule maps a phrase pattern onto a payment frequency
type FrequencyRule struct {
	Pattern   *regexp.Regexp
	Frequency model.PaymentFrequency
}

// FieldRule fills one record field from the first pattern that matches.
// Later patterns are fallbacks.
type FieldRule struct {
	Field    string
	Patterns []*regexp.Regexp
	Assign   func(rec *model.ExtractedRecord, m []string)
}

// DefaultAmountPatterns returns the award-amount patterns in precedence order
func DefaultAmountPatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)at the rate of\s+(\d+(?:\.\d+)?)\s*\$`),
		regexp.MustCompile(`(?i)at the rate of\s+(\d+(?:\.\d+)?)\s+Dollars`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\$`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s+Dollars`),
		regexp.MustCompile(`(?i)rate of\s+(\d+(?:\.\d+)?)\s*\$`),
		regexp.MustCompile(`(?i)rate of\s+(\d+(?:\.\d+)?)\s+Dollars`),
	}
}

// DefaultFrequencyRules returns the frequency rules in precedence order
func DefaultFrequencyRules() []FrequencyRule {
	return []FrequencyRule{
		{regexp.MustCompile(`(?i)per annum`), model.FrequencyAnnual},
		{regexp.MustCompile(`(?i)per year`), model.FrequencyAnnual},
		// Not preceded by "semi-"
		{regexp.MustCompile(`(?i)(?:^|[^\w-])annually`), model.FrequencyAnnual},
		{regexp.MustCompile(`(?i)semi-?annual`), model.FrequencySemiAnnual},
		{regexp.MustCompile(`(?i)semi-?anl`), model.FrequencySemiAnnual},
		{regexp.MustCompile(`(?i)per month`), model.FrequencyMonthly},
		{regexp.MustCompile(`(?i)monthly`), model.FrequencyMonthly},
	}
}

// DefaultFieldRules returns the remaining field rules
func DefaultFieldRules() []FieldRule {
	return []FieldRule{
		{
			Field: "award_date_issued",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)Certificate of Pension issued the\s+(\d+(?:st|nd|rd|th)?)\s+day of\s+(\w+)\s+(\d{4})`),
			},
			Assign: func(rec *model.ExtractedRecord, m []string) {
				day := strings.TrimRight(strings.ToLower(m[1]), "stndrh")
				rec.AwardDateIssued = ptr(fmt.Sprintf("%s %s, %s", m[2], day, m[3]))
			},
		},
		{
			Field: "applicant_name",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`widow of\s+` + properName),
				regexp.MustCompile(properName + `\s+of\s+[A-Za-z\s]+\s+in the State of`),
			},
			Assign: func(rec *model.ExtractedRecord, m []string) {
				// Widow-filed claims carry the soldier's name in both roles
				rec.ApplicantName = ptr(m[1])
				rec.SoldierName = ptr(m[1])
			},
		},
		{
			Field: "rank",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)who was a\s+(Private|Sergeant|Captain|Colonel|Drummer|Musician)`),
			},
			Assign: func(rec *model.ExtractedRecord, m []string) {
				rec.ServiceInfo.Rank = ptr(m[1])
			},
		},
		{
			Field: "service_duration",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)for(?:\s+the\s+term\s+of)?\s+(\d+\s+(?:months?|years?))`),
			},
			Assign: func(rec *model.ExtractedRecord, m []string) {
				rec.ServiceInfo.ServiceDuration = ptr(m[1])
			},
		},
		{
			Field: "service_place",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`in the State of\s+` + properName),
			},
			Assign: func(rec *model.ExtractedRecord, m []string) {
				rec.ServiceInfo.ServicePlace = ptr(m[1])
			},
		},
		{
			Field: "company_commanded_by",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`[Cc]ompany commanded by\s+(?:Capt(?:ain|\.)?\s+)?` + properName),
			},
			Assign: func(rec *model.ExtractedRecord, m []string) {
				rec.ServiceInfo.CompanyCommandedBy = ptr(m[1])
			},
		},
		{
			Field: "line",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(properName + `\s+line`),
			},
			Assign: func(rec *model.ExtractedRecord, m []string) {
				rec.ServiceInfo.Line = ptr(m[1])
			},
		},
		{
			Field: "act_date",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)Act\s+(\w+)\s+(\d+),?\s+(\d{4})`),
			},
			Assign: func(rec *model.ExtractedRecord, m []string) {
				rec.ActDate = ptr(fmt.Sprintf("%s %s, %s", m[1], m[2], m[3]))
			},
		},
		{
			Field: "award_place",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)and sent to\s+([^,]+)`),
			},
			Assign: func(rec *model.ExtractedRecord, m []string) {
				if place := strings.TrimSpace(m[1]); place != "" {
					rec.AwardPlace = ptr(place)
				}
			},
		},
		{
			Field: "award_granted_place",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`Inscribed on the Roll of\s+` + properName),
				regexp.MustCompile(`Roll of\s+` + properName),
			},
			Assign: func(rec *model.ExtractedRecord, m []string) {
				rec.AwardGrantedPlace = ptr(m[1])
			},
		},
	}
}

var reWhitespace = regexp.MustCompile(`\s+`)

// PhraseExtractor extracts award details from one segment using ordered rule tables
type PhraseExtractor struct {
	amounts     []*regexp.Regexp
	frequencies []FrequencyRule
	fields      []FieldRule
}

// NewPhraseExtractor creates an extractor with the default rule tables
func NewPhraseExtractor() *PhraseExtractor {
	return &PhraseExtractor{
		amounts:     DefaultAmountPatterns(),
		frequencies: DefaultFrequencyRules(),
		fields:      DefaultFieldRules(),
	}
}

// NewPhraseExtractorWithRules creates an extractor with custom rule tables
func NewPhraseExtractorWithRules(amounts []*regexp.Regexp, frequencies []FrequencyRule, fields []FieldRule) *PhraseExtractor {
	return &PhraseExtractor{amounts: amounts, frequencies: frequencies, fields: fields}
}

// Extract reads one segment. Whitespace is collapsed first but nothing else
// is cleaned, so exact phrases like "Dollars" survive. Fields whose
// patterns do not match stay nil.
func (e *PhraseExtractor) Extract(segment string) model.ExtractedRecord {
	rec := model.ExtractedRecord{FullText: segment}
	text := reWhitespace.ReplaceAllString(segment, " ")

	for _, re := range e.amounts {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		rec.AwardAllowanceAmount = &v
		break
	}

	for _, rule := range e.frequencies {
		if rule.Pattern.MatchString(text) {
			f := rule.Frequency
			rec.PaymentFrequency = &f
			break
		}
	}

	for _, rule := range e.fields {
		for _, re := range rule.Patterns {
			if m := re.FindStringSubmatch(text); m != nil {
				rule.Assign(&rec, m)
				break
			}
		}
	}

	return rec
}

var defaultExtractor = NewPhraseExtractor()

// Extract reads one segment with the default rule tables
func Extract(segment string) model.ExtractedRecord {
	return defaultExtractor.Extract(segment)
}

func ptr(s string) *string {
	return &s
}
