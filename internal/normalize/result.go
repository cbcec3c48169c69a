// Package normalize maps free-text pension fields onto canonical values.
package normalize

import "encoding/json"

// Outcome records how a normalizer resolved its input
type Outcome int

const (
	OutcomeNull      Outcome = iota // Input was empty or an explicit null marker
	OutcomeCanonical                // Input mapped onto a canonical value
	OutcomeUnmapped                 // Input passed through unchanged for review
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCanonical:
		return "canonical"
	case OutcomeUnmapped:
		return "unmapped"
	default:
		return "null"
	}
}

// Result is either a canonical value, the original input passed through, or nothing
type Result struct {
	Value   string
	Outcome Outcome
}

func Canonical(value string) Result { return Result{Value: value, Outcome: OutcomeCanonical} }

func Unmapped(original string) Result { return Result{Value: original, Outcome: OutcomeUnmapped} }

func Null() Result { return Result{Outcome: OutcomeNull} }

// IsCanonical reports whether the input was recognized
func (r Result) IsCanonical() bool { return r.Outcome == OutcomeCanonical }

// IsNull reports whether there is no value at all
func (r Result) IsNull() bool { return r.Outcome == OutcomeNull }

// Ptr returns the value, or nil for a null result
func (r Result) Ptr() *string {
	if r.Outcome == OutcomeNull {
		return nil
	}
	v := r.Value
	return &v
}

// MarshalJSON encodes the bare value, or null
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Ptr())
}
