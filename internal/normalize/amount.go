package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// YearlyAmount scales a per-payment amount to a yearly figure.
// Frequencies other than annual, semi-annual and monthly give ok=false.
func YearlyAmount(amount float64, frequency string) (float64, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}

	switch model.PaymentFrequency(frequency) {
	case model.FrequencyAnnual:
		return amount, true
	case model.FrequencySemiAnnual:
		return amount * 2, true
	case model.FrequencyMonthly:
		return amount * 12, true
	default:
		return 0, false
	}
}

// YearlyAmountString is YearlyAmount for an amount that is still text.
// Empty or non-numeric amounts give ok=false.
func YearlyAmountString(amount, frequency string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return 0, false
	}
	return YearlyAmount(v, frequency)
}

// DollarConverter expresses historical dollars in present-day dollars by CPI ratio
type DollarConverter struct {
	cpi    map[string]float64
	target float64
}

// NewDollarConverter uses the yearly CPI index and the present-day target index
func NewDollarConverter(cpi map[string]float64, target float64) *DollarConverter {
	return &DollarConverter{cpi: cpi, target: target}
}

// Convert returns the amount in present-day dollars rounded to cents.
// Years missing from the CPI table give ok=false.
func (c *DollarConverter) Convert(amount float64, year string) (float64, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	index, ok := c.cpi[strings.TrimSpace(year)]
	if !ok || index <= 0 {
		return 0, false
	}
	return math.Floor(amount*(c.target/index)*100+0.5) / 100, true
}

var defaultConverter = func() *DollarConverter {
	t := model.DefaultTables()
	return NewDollarConverter(t.CPI, t.CPITarget)
}()

// ToPresentDollars converts with the built-in CPI table
func ToPresentDollars(amount float64, year string) (float64, bool) {
	return defaultConverter.Convert(amount, year)
}
