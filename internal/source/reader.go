package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// maxLineBytes bounds a single JSON Lines record
const maxLineBytes = 64 * 1024 * 1024

// FieldTypeError reports a text field holding something other than a string or null
type FieldTypeError struct {
	Line  int
	Field string
	Kind  string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("line %d: field %q must be a string or null, got %s", e.Line, e.Field, e.Kind)
}

// textFields must be strings or null
var textFields = []string{"title", "ocrText", "transcriptionText", "allowancePhrase"}

// arrayFields may also hold a JSON array of text chunks
var arrayFields = map[string]bool{"ocrText": true, "transcriptionText": true}

// Reader decodes documents from JSON Lines input
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a reader over r
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Reader{scanner: s}
}

// Next returns the next document, skipping blank lines. It returns io.EOF at the end.
func (r *Reader) Next() (model.Document, error) {
	for r.scanner.Scan() {
		r.line++
		line := bytes.TrimSpace(r.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		return DecodeDocument(line, r.line)
	}
	if err := r.scanner.Err(); err != nil {
		return model.Document{}, fmt.Errorf("read line %d: %w", r.line+1, err)
	}
	return model.Document{}, io.EOF
}

// ReadAll decodes every document in r
func ReadAll(r io.Reader) ([]model.Document, error) {
	reader := NewReader(r)
	var docs []model.Document
	for {
		doc, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
}

// DecodeDocument decodes one JSON object. NAID may be a string or a number.
func DecodeDocument(data []byte, line int) (model.Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Document{}, fmt.Errorf("line %d: decode document: %w", line, err)
	}

	var doc model.Document
	values := make(map[string]string, len(textFields))
	for _, field := range textFields {
		v, err := stringField(raw[field], field, line)
		if err != nil {
			return model.Document{}, err
		}
		values[field] = v
	}
	doc.Title = values["title"]
	doc.OCRText = values["ocrText"]
	doc.TranscriptionText = values["transcriptionText"]
	doc.AllowancePhrase = values["allowancePhrase"]

	naid, err := naidField(raw["NAID"], line)
	if err != nil {
		return model.Document{}, err
	}
	doc.NAID = naid

	return doc, nil
}

func stringField(msg json.RawMessage, field string, line int) (string, error) {
	if len(msg) == 0 {
		return "", nil
	}
	var v interface{}
	if err := json.Unmarshal(msg, &v); err != nil {
		return "", fmt.Errorf("line %d: field %q: %w", line, field, err)
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case []interface{}:
		if arrayFields[field] {
			if len(t) == 0 {
				return "", nil
			}
			// Kept as JSON text; the chooser joins the elements
			return string(msg), nil
		}
	}
	return "", &FieldTypeError{Line: line, Field: field, Kind: jsonKind(v)}
}

func naidField(msg json.RawMessage, line int) (string, error) {
	if len(msg) == 0 {
		return "", nil
	}
	var v interface{}
	if err := json.Unmarshal(msg, &v); err != nil {
		return "", fmt.Errorf("line %d: field \"NAID\": %w", line, err)
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", &FieldTypeError{Line: line, Field: "NAID", Kind: jsonKind(t)}
	}
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return "unknown"
	}
}
