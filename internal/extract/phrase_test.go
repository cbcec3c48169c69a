package extract

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/pensionfacts/internal/model"
)

const fullPhrase = "Mary Brown, widow of John Brown, who was a Private in the company commanded by Captain Hale of the Connecticut line for 2 years. " +
	"Inscribed on the Roll of Connecticut at the rate of 96 Dollars per annum, to commence on the 4th of March 1831. " +
	"Certificate of Pension issued the 3rd day of June 1833 and sent to Hon. T. Smith, Hartford. Act June 7, 1832"

func TestExtractAmountAndFrequency(t *testing.T) {
	rec := Extract("... at the rate of 96 Dollars per annum ...")

	require.NotNil(t, rec.AwardAllowanceAmount)
	assert.Equal(t, 96.0, *rec.AwardAllowanceAmount)
	require.NotNil(t, rec.PaymentFrequency)
	assert.Equal(t, model.FrequencyAnnual, *rec.PaymentFrequency)
}

func TestExtractFullPhrase(t *testing.T) {
	rec := Extract(fullPhrase)

	require.NotNil(t, rec.ApplicantName)
	assert.Equal(t, "John Brown", *rec.ApplicantName)
	assert.Equal(t, "John Brown", *rec.SoldierName)

	require.NotNil(t, rec.ServiceInfo.Rank)
	assert.Equal(t, "Private", *rec.ServiceInfo.Rank)
	require.NotNil(t, rec.ServiceInfo.CompanyCommandedBy)
	assert.Equal(t, "Hale", *rec.ServiceInfo.CompanyCommandedBy)
	require.NotNil(t, rec.ServiceInfo.Line)
	assert.Equal(t, "Connecticut", *rec.ServiceInfo.Line)
	require.NotNil(t, rec.ServiceInfo.ServiceDuration)
	assert.Equal(t, "2 years", *rec.ServiceInfo.ServiceDuration)
	assert.Nil(t, rec.ServiceInfo.ServicePlace)

	require.NotNil(t, rec.AwardGrantedPlace)
	assert.Equal(t, "Connecticut", *rec.AwardGrantedPlace)
	require.NotNil(t, rec.AwardDateIssued)
	assert.Equal(t, "June 3, 1833", *rec.AwardDateIssued)
	require.NotNil(t, rec.AwardPlace)
	assert.Equal(t, "Hon. T. Smith", *rec.AwardPlace)
	require.NotNil(t, rec.ActDate)
	assert.Equal(t, "June 7, 1832", *rec.ActDate)

	require.NotNil(t, rec.AwardAllowanceAmount)
	assert.Equal(t, 96.0, *rec.AwardAllowanceAmount)
	assert.Equal(t, fullPhrase, rec.FullText)
}

func TestExtractFrequencyOrder(t *testing.T) {
	tests := []struct {
		text string
		want model.PaymentFrequency
	}{
		{"8 Dollars per month", model.FrequencyMonthly},
		{"paid monthly", model.FrequencyMonthly},
		{"40 Dollars semi-annually", model.FrequencySemiAnnual},
		{"40 Dollars Semi-Anl.", model.FrequencySemiAnnual},
		{"paid annually", model.FrequencyAnnual},
		{"per year, not per month", model.FrequencyAnnual},
	}

	for _, tt := range tests {
		rec := Extract(tt.text)
		require.NotNil(t, rec.PaymentFrequency, tt.text)
		assert.Equal(t, tt.want, *rec.PaymentFrequency, tt.text)
	}
}

func TestExtractAmountPrecedence(t *testing.T) {
	rec := Extract("arrears of 20 $ and at the rate of 60 $ yearly")
	require.NotNil(t, rec.AwardAllowanceAmount)
	assert.Equal(t, 60.0, *rec.AwardAllowanceAmount)

	rec = Extract("a sum of 12.50\nDollars")
	require.NotNil(t, rec.AwardAllowanceAmount)
	assert.Equal(t, 12.5, *rec.AwardAllowanceAmount)
}

func TestExtractNameFallback(t *testing.T) {
	rec := Extract("Enoch Baker of Fairfield County in the State of Connecticut")

	require.NotNil(t, rec.ApplicantName)
	assert.Equal(t, "Enoch Baker", *rec.ApplicantName)
	require.NotNil(t, rec.ServiceInfo.ServicePlace)
	assert.Equal(t, "Connecticut", *rec.ServiceInfo.ServicePlace)
}

func TestExtractGrantedPlaceFallback(t *testing.T) {
	rec := Extract("placed on the Roll of New Jersey")
	require.NotNil(t, rec.AwardGrantedPlace)
	assert.Equal(t, "New Jersey", *rec.AwardGrantedPlace)
}

func TestExtractNoMatch(t *testing.T) {
	rec := Extract("nothing useful here")

	assert.Nil(t, rec.AwardAllowanceAmount)
	assert.Nil(t, rec.PaymentFrequency)
	assert.Nil(t, rec.ApplicantName)
	assert.Nil(t, rec.AwardDateIssued)
	assert.Nil(t, rec.ActDate)
	assert.Nil(t, rec.AwardPlace)
	assert.Nil(t, rec.AwardGrantedPlace)
	assert.Equal(t, model.ServiceInfo{}, rec.ServiceInfo)
}

func TestCustomRules(t *testing.T) {
	e := NewPhraseExtractorWithRules(
		[]*regexp.Regexp{regexp.MustCompile(`(\d+) pounds`)},
		[]FrequencyRule{{regexp.MustCompile(`(?i)quarterly`), model.FrequencyUnknown}},
		nil,
	)

	rec := e.Extract("5 pounds quarterly, 96 Dollars per annum")
	require.NotNil(t, rec.AwardAllowanceAmount)
	assert.Equal(t, 5.0, *rec.AwardAllowanceAmount)
	require.NotNil(t, rec.PaymentFrequency)
	assert.Equal(t, model.FrequencyUnknown, *rec.PaymentFrequency)
}

func TestSplitSegments(t *testing.T) {
	segs := SplitSegments("A||B||C")
	require.Len(t, segs, 3)
	for i, want := range []string{"A", "B", "C"} {
		assert.Equal(t, want, segs[i].Text)
		assert.Equal(t, i+1, segs[i].Number)
	}

	segs = SplitSegments(" first || ||  third ")
	require.Len(t, segs, 2)
	assert.Equal(t, Segment{Number: 1, Text: "first"}, segs[0])
	assert.Equal(t, Segment{Number: 3, Text: "third"}, segs[1])

	assert.Empty(t, SplitSegments(""))
}

func TestExtractAll(t *testing.T) {
	recs := ExtractAll("at the rate of 96 Dollars per annum || || 8 Dollars per month")
	require.Len(t, recs, 2)

	assert.Equal(t, 1, recs[0].SegmentNumber)
	assert.Equal(t, 96.0, *recs[0].AwardAllowanceAmount)
	assert.Equal(t, model.FrequencyAnnual, *recs[0].PaymentFrequency)

	assert.Equal(t, 3, recs[1].SegmentNumber)
	assert.Equal(t, 8.0, *recs[1].AwardAllowanceAmount)
	assert.Equal(t, model.FrequencyMonthly, *recs[1].PaymentFrequency)
	assert.Equal(t, "8 Dollars per month", recs[1].FullText)
}
