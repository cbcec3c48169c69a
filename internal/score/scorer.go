// Package score summarizes how completely a batch of documents was extracted.
package score

import (
	"fmt"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// Coverage thresholds for field fill rates
const (
	CriticalCoverage = 0.5
	WarningCoverage  = 0.8
	// Share of titles without a gated file type above which a warning is raised
	UnclassifiedWarning = 0.2
)

// segmentField reads one field of an allowance for coverage counting
type segmentField struct {
	name      string
	populated func(a model.AllowanceReport) bool
}

var segmentFields = []segmentField{
	{"award_allowance_amount", func(a model.AllowanceReport) bool { return a.Record.AwardAllowanceAmount != nil }},
	{"payment_frequency", func(a model.AllowanceReport) bool { return a.Record.PaymentFrequency != nil }},
	{"award_granted_place", func(a model.AllowanceReport) bool { return a.Record.AwardGrantedPlace != nil }},
	{"award_date_issued", func(a model.AllowanceReport) bool { return a.Record.AwardDateIssued != nil }},
	{"applicant_name", func(a model.AllowanceReport) bool { return a.Record.ApplicantName != nil }},
	{"act_date", func(a model.AllowanceReport) bool { return a.Record.ActDate != nil }},
	{"yearly_amount", func(a model.AllowanceReport) bool { return a.YearlyAmount != nil }},
}

// Scorer builds batch statistics
type Scorer struct{}

// NewScorer creates a scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate counts categories, frequencies and file types over reports and
// emits one signal per coverage concern, each with its inputs and formula
func (s *Scorer) Calculate(reports []*model.DocumentReport) model.Stats {
	stats := model.Stats{
		Categories: map[string]int{},
		Frequency:  map[string]int{},
		FileTypes:  map[string]int{},
	}

	var allowances []model.AllowanceReport
	for _, r := range reports {
		if r == nil {
			continue
		}
		stats.Documents++
		for _, c := range r.Categories {
			stats.Categories[c]++
		}
		fileType := string(r.Title.Category)
		if fileType == "" {
			fileType = "none"
		}
		stats.FileTypes[fileType]++

		for _, a := range r.Allowances {
			freq := "null"
			if a.Frequency != nil {
				freq = *a.Frequency
			}
			stats.Frequency[freq]++
			allowances = append(allowances, a)
		}
	}
	stats.Segments = len(allowances)

	stats.Signals = append(stats.Signals, s.fieldCoverage(allowances)...)
	stats.Signals = append(stats.Signals, s.unmappedValues(allowances))
	stats.Signals = append(stats.Signals, s.unclassifiedTypes(reports, stats.Documents))
	stats.Signals = append(stats.Signals, s.dateBalance(reports, stats.Documents))

	return stats
}

func (s *Scorer) fieldCoverage(allowances []model.AllowanceReport) []model.Signal {
	if len(allowances) == 0 {
		return []model.Signal{{
			Type:        model.SignalFieldCoverage,
			Severity:    model.SeverityWarning,
			Description: "No allowance segments",
			Data:        map[string]interface{}{"segments": 0},
		}}
	}

	signals := make([]model.Signal, 0, len(segmentFields))
	for _, f := range segmentFields {
		populated := 0
		for _, a := range allowances {
			if f.populated(a) {
				populated++
			}
		}
		rate := float64(populated) / float64(len(allowances))

		severity := model.SeverityInfo
		if rate < CriticalCoverage {
			severity = model.SeverityCritical
		} else if rate < WarningCoverage {
			severity = model.SeverityWarning
		}

		signals = append(signals, model.Signal{
			Type:        model.SignalFieldCoverage,
			Severity:    severity,
			Description: fmt.Sprintf("%s filled in %.0f%% of segments", f.name, rate*100),
			Data: map[string]interface{}{
				"field":     f.name,
				"populated": populated,
				"segments":  len(allowances),
				"rate":      rate,
				"formula":   "populated / segments",
			},
		})
	}
	return signals
}

func (s *Scorer) unmappedValues(allowances []model.AllowanceReport) model.Signal {
	var freq, places []string
	for _, a := range allowances {
		if a.FrequencyOutcome == "unmapped" && a.Frequency != nil {
			freq = append(freq, *a.Frequency)
		}
		if a.GrantedOutcome == "unmapped" && a.GrantedState != nil {
			places = append(places, *a.GrantedState)
		}
	}

	severity := model.SeverityInfo
	if len(freq)+len(places) > 0 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalUnmappedValues,
		Severity:    severity,
		Description: fmt.Sprintf("%d frequencies and %d places passed through unmapped", len(freq), len(places)),
		Data: map[string]interface{}{
			"frequencies": freq,
			"places":      places,
			"formula":     "count(outcome == unmapped)",
		},
	}
}

func (s *Scorer) unclassifiedTypes(reports []*model.DocumentReport, documents int) model.Signal {
	if documents == 0 {
		return model.Signal{
			Type:        model.SignalUnclassifiedType,
			Severity:    model.SeverityWarning,
			Description: "No documents",
			Data:        map[string]interface{}{"documents": 0},
		}
	}

	unclassified := 0
	for _, r := range reports {
		if r != nil && r.Title.Category == model.FileTypeNone {
			unclassified++
		}
	}
	rate := float64(unclassified) / float64(documents)

	severity := model.SeverityInfo
	if rate > UnclassifiedWarning {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalUnclassifiedType,
		Severity:    severity,
		Description: fmt.Sprintf("%d of %d titles have no confident file type", unclassified, documents),
		Data: map[string]interface{}{
			"unclassified": unclassified,
			"documents":    documents,
			"rate":         rate,
			"threshold":    model.MinCategoryCertainty,
			"formula":      "count(certainty < threshold) / documents",
		},
	}
}

func (s *Scorer) dateBalance(reports []*model.DocumentReport, documents int) model.Signal {
	var application, service, other, withApplication int
	for _, r := range reports {
		if r == nil {
			continue
		}
		application += len(r.Dates.ApplicationDates)
		service += len(r.Dates.ServiceDates)
		other += len(r.Dates.OtherDates)
		if len(r.Dates.ApplicationDates) > 0 {
			withApplication++
		}
	}

	rate := 0.0
	if documents > 0 {
		rate = float64(withApplication) / float64(documents)
	}

	severity := model.SeverityInfo
	if documents > 0 && withApplication == 0 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalDateBalance,
		Severity:    severity,
		Description: fmt.Sprintf("%d application, %d service, %d other years", application, service, other),
		Data: map[string]interface{}{
			"application":          application,
			"service":              service,
			"other":                other,
			"documents_with_app":   withApplication,
			"application_doc_rate": rate,
			"formula":              "documents_with_app / documents",
		},
	}
}
