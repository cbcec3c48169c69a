package model

// DateType is the role a year plays in a document
type DateType string

const (
	DateApplication DateType = "application"
	DateService     DateType = "service"
	DateOther       DateType = "other"
)

// DateClassification splits the distinct years of one text into disjoint buckets
type DateClassification struct {
	ApplicationDates []string           `json:"application_dates"`
	ServiceDates     []string           `json:"service_dates"`
	OtherDates       []string           `json:"other_dates"`
	ConfidenceScores map[string]float64 `json:"confidence_scores"`
}

// Bucket returns the bucket a year was placed in, or "" if it was not classified
func (c DateClassification) Bucket(year string) DateType {
	for _, d := range c.ApplicationDates {
		if d == year {
			return DateApplication
		}
	}
	for _, d := range c.ServiceDates {
		if d == year {
			return DateService
		}
	}
	for _, d := range c.OtherDates {
		if d == year {
			return DateOther
		}
	}
	return ""
}
