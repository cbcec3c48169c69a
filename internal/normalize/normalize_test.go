package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/pensionfacts/internal/model"
)

func TestFrequency(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		outcome Outcome
	}{
		{"per annum", "annual", OutcomeCanonical},
		{"Per Annum", "annual", OutcomeCanonical},
		{"per An:", "annual", OutcomeCanonical},
		{"Semi-Anl.", "semi-annual", OutcomeCanonical},
		{"semi annually", "semi-annual", OutcomeCanonical},
		{"per month", "monthly", OutcomeCanonical},
		{"Monthly", "monthly", OutcomeCanonical},
		{"bogus", "bogus", OutcomeUnmapped},
		{"", "", OutcomeNull},
		{"None", "", OutcomeNull},
		{"null", "", OutcomeNull},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Frequency(tt.input)
			assert.Equal(t, tt.outcome, got.Outcome)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestFrequencyCustomTable(t *testing.T) {
	n := NewFrequencyNormalizer([]model.FrequencyVariants{
		{Term: model.FrequencyMonthly, Variants: []string{"p.m."}},
	})

	assert.Equal(t, Canonical("monthly"), n.Normalize("P.M."))
	assert.Equal(t, Unmapped("per annum"), n.Normalize("per annum"))
}

func TestPlace(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		outcome Outcome
	}{
		{"Rochester N.Y.", "new york", OutcomeCanonical},
		{"State of Virginia", "virginia", OutcomeCanonical},
		{"Timbuktu", "Timbuktu", OutcomeUnmapped},
		{"Richmond, Va.", "virginia", OutcomeCanonical},
		{"Hillsborough n h", "new hampshire", OutcomeCanonical},
		{"Madison, Ind.", "indiana", OutcomeCanonical},
		{"Hudson N York", "new york", OutcomeCanonical},
		{"Spartanburg, S. Carolina", "south carolina", OutcomeCanonical},
		{"Randolph Co. N. Carolina", "north carolina", OutcomeCanonical},
		{"District of Mame", "maine", OutcomeCanonical},
		{"Massachusetts Bay", "massachusetts", OutcomeCanonical},
		{"Rhode Iland", "rhode island", OutcomeCanonical},
		{"Penna", "pennsylvania", OutcomeCanonical},
		{"", "", OutcomeNull},
		{"   ", "", OutcomeNull},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Place(tt.input)
			assert.Equal(t, tt.outcome, got.Outcome)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestPlaceCustomTable(t *testing.T) {
	n := NewPlaceNormalizer([]model.StateVariants{
		{Name: "vermont", Variants: []string{"vermont", "vt"}},
	})

	assert.Equal(t, Canonical("vermont"), n.Normalize("Windsor, Vt"))
	assert.Equal(t, Unmapped("Rochester N.Y."), n.Normalize("Rochester N.Y."))
}

func TestYearlyAmount(t *testing.T) {
	got, ok := YearlyAmount(10, "monthly")
	require.True(t, ok)
	assert.Equal(t, 120.0, got)

	got, ok = YearlyAmount(40, "semi-annual")
	require.True(t, ok)
	assert.Equal(t, 80.0, got)

	got, ok = YearlyAmount(96, "annual")
	require.True(t, ok)
	assert.Equal(t, 96.0, got)

	_, ok = YearlyAmount(10, "unknown")
	assert.False(t, ok)

	_, ok = YearlyAmount(10, "bogus")
	assert.False(t, ok)
}

func TestYearlyAmountString(t *testing.T) {
	got, ok := YearlyAmountString(" 8.5 ", "monthly")
	require.True(t, ok)
	assert.Equal(t, 102.0, got)

	_, ok = YearlyAmountString("eight", "monthly")
	assert.False(t, ok)

	_, ok = YearlyAmountString("", "annual")
	assert.False(t, ok)

	_, ok = YearlyAmountString("NaN", "annual")
	assert.False(t, ok)
}

func TestToPresentDollars(t *testing.T) {
	got, ok := ToPresentDollars(96, "1818")
	require.True(t, ok)
	assert.Equal(t, 677.84, got)

	got, ok = ToPresentDollars(80, "1832")
	require.True(t, ok)
	assert.Equal(t, 866.13, got)

	_, ok = ToPresentDollars(96, "1900")
	assert.False(t, ok)
}

func TestActDateISO(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"March 18, 1818", "1818-03-18"},
		{"June 7th, 1832", "1832-06-07"},
		{"3/18/1818", "1818-03-18"},
	}

	for _, tt := range tests {
		got, ok := ActDateISO(tt.input)
		require.True(t, ok, tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, ok := ActDateISO("")
	assert.False(t, ok)

	_, ok = ActDateISO("sometime in spring")
	assert.False(t, ok)
}

func TestKnownAct(t *testing.T) {
	desc, ok := KnownAct("1832-06-07")
	require.True(t, ok)
	assert.Contains(t, desc, "militia")

	_, ok = KnownAct("1832-06-08")
	assert.False(t, ok)
}

func TestFormatAct(t *testing.T) {
	assert.Equal(t, "Act 18th March, 1818", FormatAct("1818-03-18"))
	assert.Equal(t, "Act 1st May, 1820", FormatAct("1820-05-01"))
	assert.Equal(t, "Act 3rd February, 1853", FormatAct("1853-02-03"))
	assert.Equal(t, "Act 7th June, 1832", FormatAct("1832-06-07"))
	assert.Equal(t, "", FormatAct("1832-13-07"))
	assert.Equal(t, "", FormatAct("garbage"))
}

func TestResultJSON(t *testing.T) {
	b, err := json.Marshal(Canonical("annual"))
	require.NoError(t, err)
	assert.JSONEq(t, `"annual"`, string(b))

	b, err = json.Marshal(Null())
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	assert.Equal(t, "unmapped", Unmapped("x").Outcome.String())
	assert.Nil(t, Null().Ptr())
}
