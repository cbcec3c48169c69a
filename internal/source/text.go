// Package source prepares document text fields for extraction.
package source

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Text source names reported with a document
const (
	SourceTranscription = "transcriptionText"
	SourceOCR           = "ocrText"
)

var reHTMLTag = regexp.MustCompile(`(?i)<(?:html|body|div|p|br|span|table|td|tr|script|style|b|i|em|strong)\b[^>]*>`)

// Chooser picks and prepares the text of a document
type Chooser struct {
	maxBytes int // 0 disables truncation
}

// NewChooser creates a chooser that caps prepared text at maxBytes
func NewChooser(maxBytes int) *Chooser {
	return &Chooser{maxBytes: maxBytes}
}

// Choose prefers the transcription when it has content, else the OCR text.
// The source is empty when neither has any.
func (c *Chooser) Choose(transcription, ocr string) (text, source string) {
	if tx := c.Prepare(transcription); tx != "" {
		return tx, SourceTranscription
	}
	if ox := c.Prepare(ocr); ox != "" {
		return ox, SourceOCR
	}
	return "", ""
}

// Prepare unwraps JSON arrays, reduces HTML to visible text and applies the size cap
func (c *Chooser) Prepare(raw string) string {
	text := UnwrapJSON(raw)
	if LooksLikeHTML(text) {
		if visible, err := VisibleText(text); err == nil {
			text = visible
		}
	}
	return Truncate(text, c.maxBytes)
}

// UnwrapJSON joins the non-empty elements of a JSON array with spaces.
// Anything that is not a non-empty JSON array comes back trimmed.
func UnwrapJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "[") {
		return s
	}

	var items []interface{}
	if err := json.Unmarshal([]byte(s), &items); err != nil || len(items) == 0 {
		return s
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case nil:
		case string:
			if v != "" {
				parts = append(parts, v)
			}
		case bool:
			if v {
				parts = append(parts, "True")
			}
		case float64:
			if v != 0 {
				parts = append(parts, fmt.Sprint(v))
			}
		default:
			b, err := json.Marshal(v)
			if err == nil && len(b) > 2 {
				parts = append(parts, string(b))
			}
		}
	}
	return strings.Join(parts, " ")
}

// LooksLikeHTML reports whether s contains common markup tags
func LooksLikeHTML(s string) bool {
	return reHTMLTag.MatchString(s)
}

// VisibleText extracts text nodes from an HTML fragment, skipping scripts/styles
func VisibleText(fragment string) (string, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "br", "p", "div", "tr":
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}

// Truncate cuts s to at most maxBytes without splitting a rune
func Truncate(s string, maxBytes int) string {
	if maxBytes <= 0 || len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
