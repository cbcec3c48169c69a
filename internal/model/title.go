package model

// FileTypeCategory is the pension file type encoded in a title's file id
type FileTypeCategory string

const (
	FileTypeNone        FileTypeCategory = ""
	FileTypeSurvivor    FileTypeCategory = "S"      // Soldier survived to apply
	FileTypeRejected    FileTypeCategory = "R"      // Claim rejected
	FileTypeWidow       FileTypeCategory = "W"      // Widow's claim
	FileTypeTrust       FileTypeCategory = "T"      // Testament/trust
	FileTypeBLW         FileTypeCategory = "BLW"    // Bounty land warrant
	FileTypeOldWar      FileTypeCategory = "OW"     // Post-Revolutionary conflicts
	FileTypeNAAccession FileTypeCategory = "NA_ACC" // National Archives accession placeholder
)

// MinCategoryCertainty is the certainty below which a detected category is not surfaced
const MinCategoryCertainty = 0.75

// TitleParseResult is the outcome of parsing one document title
type TitleParseResult struct {
	RawTitle           string           `json:"raw_title"`
	IntroText          string           `json:"file_name_intro"`
	Category           FileTypeCategory `json:"file_type_category"`            // Gated by MinCategoryCertainty
	DetectedCategory   FileTypeCategory `json:"file_type_category_detected"`   // Ungated, kept for audit
	MatchSnippet       string           `json:"file_type_snippet"`
	RawToken           string           `json:"file_type_raw_token,omitempty"` // Token as matched, e.g. "W."
	Rule               string           `json:"file_type_rule,omitempty"`      // Name of the rule that matched
	Certainty          float64          `json:"file_type_certainty"`
	ApplicantCandidate string           `json:"applicant_from_title"`
	PlaceCandidate     string           `json:"applicant_place_from_title"`
}

// FileTypeGroup is the coarse kind of scanned file a title describes
type FileTypeGroup string

const (
	GroupApplication    FileTypeGroup = "revolutionary war pension and bounty land warrant application file"
	GroupFamilyRecord   FileTypeGroup = "family record"
	GroupMicrofilmSheet FileTypeGroup = "microfilm target sheet"
	GroupOther          FileTypeGroup = "other"
)
