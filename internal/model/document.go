package model

import "time"

// Category tags assigned to a title
const (
	CategorySoldier        = "soldier"
	CategoryRejected       = "rejected"
	CategoryWidow          = "widow"
	CategoryBountyLand     = "bounty land warrant"
	CategoryOldWar         = "old war"
	CategoryNAAccession    = "N A Acc"
	CategoryNARAAdmin      = "nara archival administrative sheets"
	CategoryUnknown        = "unknown"
	CategoryNonApplication = "non_application"
)

// Document is one logical pension file as delivered by the loader
type Document struct {
	NAID              string `json:"NAID"`
	Title             string `json:"title"`
	OCRText           string `json:"ocrText,omitempty"`
	TranscriptionText string `json:"transcriptionText,omitempty"`
	AllowancePhrase   string `json:"allowancePhrase,omitempty"` // "||"-delimited sub-claims
}

// AllowanceReport pairs an extracted segment with its normalized fields
type AllowanceReport struct {
	Record            ExtractedRecord `json:"record"`
	Frequency         *string         `json:"normalized_frequency"`
	FrequencyOutcome  string          `json:"normalized_frequency_outcome"` // canonical, unmapped, null
	GrantedState      *string         `json:"normalized_granted_place"`
	GrantedOutcome    string          `json:"normalized_granted_place_outcome"`
	YearlyAmount      *float64        `json:"yearly_amount"`
	ActDateISO        *string         `json:"act_date_iso,omitempty"`
	KnownAct          *string         `json:"known_act,omitempty"`
	PresentDayDollars *float64        `json:"present_day_yearly_dollars,omitempty"`
}

// DocumentReport is everything the pipeline derives from one Document
type DocumentReport struct {
	RunID          string             `json:"run_id,omitempty"`
	NAID           string             `json:"NAID"`
	Title          TitleParseResult   `json:"title"`
	FileTypeGroup  FileTypeGroup      `json:"file_type"`
	Categories     []string           `json:"categories"`
	CategoryReason string             `json:"category_reason"`
	TextSource     string             `json:"text_source"` // transcriptionText, ocrText or ""
	ExtractedDates []string           `json:"extracted_dates"`
	Dates          DateClassification `json:"dates"`
	Amounts        Amounts            `json:"amounts"`
	CleanedText    string             `json:"cleaned_text,omitempty"`
	Allowances     []AllowanceReport  `json:"allowances"`
	ProcessedAt    time.Time          `json:"processed_at"`
}
