package model

// Stats summarizes field coverage over a batch of document reports
type Stats struct {
	Documents  int            `json:"documents"`
	Segments   int            `json:"segments"`
	Categories map[string]int `json:"categories"`
	Frequency  map[string]int `json:"frequency"`
	FileTypes  map[string]int `json:"file_types"`
	Signals    []Signal       `json:"signals"`
}

// Signal is a diagnostic with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // Inputs and formula
}

// SignalType classifies a diagnostic signal
type SignalType string

const (
	SignalFieldCoverage    SignalType = "field_coverage"    // Share of segments with a field populated
	SignalUnmappedValues   SignalType = "unmapped_values"   // Values passed through a normalizer unchanged
	SignalUnclassifiedType SignalType = "unclassified_type" // Titles without a confident file type
	SignalDateBalance      SignalType = "date_balance"      // Application vs service vs other years
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
