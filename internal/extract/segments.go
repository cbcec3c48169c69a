package extract

import (
	"strings"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// SegmentDelimiter separates independent sub-claims in an allowance phrase
const SegmentDelimiter = "||"

// Segment is one trimmed, non-empty piece of an allowance phrase
type Segment struct {
	Number int // 1-based position in the raw split; skipped empties keep their slot
	Text   string
}

// SplitSegments splits phrase on the delimiter, dropping empty pieces
func SplitSegments(phrase string) []Segment {
	var segments []Segment
	for i, part := range strings.Split(phrase, SegmentDelimiter) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		segments = append(segments, Segment{Number: i + 1, Text: part})
	}
	return segments
}

// ExtractAll extracts every segment of phrase independently
func (e *PhraseExtractor) ExtractAll(phrase string) []model.ExtractedRecord {
	segments := SplitSegments(phrase)
	records := make([]model.ExtractedRecord, 0, len(segments))
	for _, seg := range segments {
		rec := e.Extract(seg.Text)
		rec.SegmentNumber = seg.Number
		records = append(records, rec)
	}
	return records
}

// ExtractAll extracts every segment with the default rule tables
func ExtractAll(phrase string) []model.ExtractedRecord {
	return defaultExtractor.ExtractAll(phrase)
}
