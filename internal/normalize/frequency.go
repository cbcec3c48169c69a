package normalize

import (
	"strings"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// FrequencyNormalizer maps payment-frequency spellings onto annual, semi-annual or monthly
type FrequencyNormalizer struct {
	variants map[string]model.PaymentFrequency
}

// NewFrequencyNormalizer builds the lookup from the given table.
// When a variant is listed twice the earlier term wins. Each term is also
// a variant of itself.
func NewFrequencyNormalizer(table []model.FrequencyVariants) *FrequencyNormalizer {
	n := &FrequencyNormalizer{variants: make(map[string]model.PaymentFrequency)}
	for _, entry := range table {
		for _, v := range append([]string{string(entry.Term)}, entry.Variants...) {
			key := strings.ToLower(strings.TrimSpace(v))
			if _, exists := n.variants[key]; !exists {
				n.variants[key] = entry.Term
			}
		}
	}
	return n
}

// Normalize looks the input up case-insensitively. Empty input and the
// literal markers "null" and "none" yield Null; anything else that is not
// in the table comes back unchanged as Unmapped.
func (n *FrequencyNormalizer) Normalize(frequency string) Result {
	key := strings.ToLower(strings.TrimSpace(frequency))
	if term, ok := n.variants[key]; ok {
		return Canonical(string(term))
	}

	switch key {
	case "", "null", "none":
		return Null()
	}
	return Unmapped(frequency)
}

var defaultFrequency = NewFrequencyNormalizer(model.DefaultTables().Frequencies)

// Frequency normalizes with the built-in variant table
func Frequency(frequency string) Result {
	return defaultFrequency.Normalize(frequency)
}
