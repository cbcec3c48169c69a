package model

// PaymentFrequency is the canonical disbursement interval of a pension award
type PaymentFrequency string

const (
	FrequencyAnnual     PaymentFrequency = "annual"
	FrequencySemiAnnual PaymentFrequency = "semi-annual"
	FrequencyMonthly    PaymentFrequency = "monthly"
	FrequencyUnknown    PaymentFrequency = "unknown"
)

// ServiceInfo holds the military-service details named in an allowance phrase
type ServiceInfo struct {
	ServicePlace       *string `json:"service_place"`
	Rank               *string `json:"rank"`
	CompanyCommandedBy *string `json:"company_commanded_by"`
	Line               *string `json:"line"`
	ServiceDuration    *string `json:"service_duration"`
}

// ExtractedRecord is the structured result of one allowance-phrase segment.
// A nil field means the pattern did not match, not that the value is empty.
type ExtractedRecord struct {
	SegmentNumber        int               `json:"segment_number"`         // 1-based position in the "||" split
	AwardAllowanceAmount *float64          `json:"award_allowance_amount"` // Dollars, as written
	AwardDateIssued      *string           `json:"award_date_issued"`      // "Month D, YYYY"
	ApplicantName        *string           `json:"applicant_name"`
	SoldierName          *string           `json:"soldier_name"`
	ServiceInfo          ServiceInfo       `json:"service_info"`
	ActDate              *string           `json:"act_date"`
	AwardPlace           *string           `json:"award_place"`         // Where the certificate was sent
	AwardGrantedPlace    *string           `json:"award_granted_place"` // State/colony on whose roll the award is inscribed
	PaymentFrequency     *PaymentFrequency `json:"payment_frequency"`
	FullText             string            `json:"full_text"`
}

// Amounts holds every dollar and acre figure found in free text
type Amounts struct {
	Dollars []float64 `json:"dollars"`
	Acres   []float64 `json:"acres"`
}
