package dates

import (
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/pensionfacts/internal/model"
)

func TestExtract(t *testing.T) {
	text := "In 1832 he swore he was born seventeen fifty-six, came home eighteen 45, " +
		"not 1650 nor 1901, and wrote eighteen hundred and twenty two"

	got := Extract(text)
	assert.Equal(t, []string{"1832", "1756", "1822", "1845"}, got)
}

func TestExtractWrittenForms(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"eighteen forty", []string{"1840"}},
		{"Eighteen Forty Five", []string{"1845"}},
		{"eighteen and forty and five", []string{"1845"}},
		{"seventeen seventy-six", []string{"1776"}},
		{"nineteen 45", []string{}},
		{"nineteen hundred", []string{}},
		{"", []string{}},
		{"1776 and 1776", []string{"1776", "1776"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Extract(tt.text), tt.text)
	}
}

func TestExtractRange(t *testing.T) {
	inputs := []string{
		"0000 1699 1700 1900 1901 17001 18999",
		"seventeen twenty one nineteen ninety nine nineteen 01",
		"year 1776, 1783; 1818-1832",
		"nineteen 00 and eighteen 99",
	}

	for _, in := range inputs {
		for _, y := range Extract(in) {
			n, err := strconv.Atoi(y)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, MinYear, in)
			assert.LessOrEqual(t, n, MaxYear, in)
		}
	}
}

func TestClassify(t *testing.T) {
	text := "Born 1750. He enlisted in 1776 and served two years. On this 14 day of August 1832 he personally appeared."
	years := Extract(text)
	require.ElementsMatch(t, []string{"1750", "1776", "1832"}, years)

	got := Classify(text, years, model.FileTypeSurvivor)

	assert.Equal(t, []string{"1832"}, got.ApplicationDates)
	assert.Equal(t, []string{"1776"}, got.ServiceDates)
	assert.Equal(t, []string{"1750"}, got.OtherDates)
	assert.InDelta(t, 1.0, got.ConfidenceScores["1832"], 1e-9)
	assert.Greater(t, got.ConfidenceScores["1776"], 0.8)
	assert.InDelta(t, 0.3, got.ConfidenceScores["1750"], 1e-9)
}

func TestClassifyHistoricalFallback(t *testing.T) {
	got := Classify("nothing here 1820 and 1780 and 1800 and 1795", []string{"1820", "1780", "1800", "1795"}, model.FileTypeNone)

	assert.Equal(t, []string{"1820"}, got.ApplicationDates)
	assert.Equal(t, []string{"1780"}, got.ServiceDates)
	assert.Equal(t, []string{"1800", "1795"}, got.OtherDates)
	assert.Equal(t, 0.5, got.ConfidenceScores["1820"])
	assert.Equal(t, 0.4, got.ConfidenceScores["1780"])
	assert.Equal(t, 0.0, got.ConfidenceScores["1800"])
}

func TestClassifyOldWarFile(t *testing.T) {
	got := Classify("nothing here 1795", []string{"1795"}, model.FileTypeOldWar)

	assert.Equal(t, []string{"1795"}, got.ServiceDates)
	assert.Equal(t, 0.4, got.ConfidenceScores["1795"])
}

func TestClassifyKeywordWindow(t *testing.T) {
	got := Classify("he appeared in court 1820", []string{"1820"}, model.FileTypeNone)
	assert.Equal(t, []string{"1820"}, got.ApplicationDates)
	assert.InDelta(t, 0.6, got.ConfidenceScores["1820"], 1e-9)

	// Window evidence alone is below the application threshold before 1818
	got = Classify("he appeared in court 1810", []string{"1810"}, model.FileTypeNone)
	assert.Equal(t, []string{"1810"}, got.OtherDates)
	assert.InDelta(t, 0.4, got.ConfidenceScores["1810"], 1e-9)
}

func TestClassifyKeywordWindowCountsCharacters(t *testing.T) {
	// Sixty two-byte letters put the keyword within 100 characters but beyond 100 bytes
	text := "in court" + strings.Repeat("é", 60) + " 1820"

	got := Classify(text, []string{"1820"}, model.FileTypeNone)
	assert.Equal(t, []string{"1820"}, got.ApplicationDates)
	assert.InDelta(t, 0.6, got.ConfidenceScores["1820"], 1e-9)

	got = Classify("in court"+strings.Repeat("é", 100)+" 1820", []string{"1820"}, model.FileTypeNone)
	assert.InDelta(t, 0.5, got.ConfidenceScores["1820"], 1e-9)
}

func TestClassifyEmptyInputs(t *testing.T) {
	got := Classify("", []string{"1800", "1800"}, model.FileTypeNone)
	assert.Equal(t, []string{"1800"}, got.OtherDates)
	assert.Empty(t, got.ApplicationDates)
	assert.Empty(t, got.ServiceDates)
	assert.Empty(t, got.ConfidenceScores)

	got = Classify("some text", nil, model.FileTypeNone)
	assert.Empty(t, got.OtherDates)
	assert.NotNil(t, got.OtherDates)
}

func TestClassifyBucketsPartitionDistinctYears(t *testing.T) {
	texts := []string{
		"On this 3 day of May 1833 personally appeared Abel Cole who enlisted in 1777 in the regiment of Col. Webb and served until 1780. Declaration sworn 1833.",
		"The widow declares she married him in 1784; he died 1825. Witness my hand 1838. Company of Capt. Hale 1776.",
		"Old War invalid, wounded 1812 at the battle of Queenston, pension act of congress 1816, discharged 1813, office 1840.",
		"eighteen forty five, seventeen seventy six and 1776 again 1776",
	}

	for _, text := range texts {
		years := Extract(text)
		got := Classify(text, years, model.FileTypeOldWar)

		seen := map[string]int{}
		for _, bucket := range [][]string{got.ApplicationDates, got.ServiceDates, got.OtherDates} {
			for _, y := range bucket {
				seen[y]++
			}
		}

		var union []string
		for y, n := range seen {
			assert.Equal(t, 1, n, "year %s in more than one bucket", y)
			union = append(union, y)
		}

		want := dedupe(years)
		sort.Strings(want)
		sort.Strings(union)
		assert.Equal(t, want, union, text)

		for y, c := range got.ConfidenceScores {
			assert.GreaterOrEqual(t, c, 0.0, y)
			assert.LessOrEqual(t, c, 1.0+1e-9, y)
		}
	}
}
