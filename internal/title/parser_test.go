package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/pensionfacts/internal/model"
)

func TestParseWidowFile(t *testing.T) {
	res := Parse("File W.12345, Jane Doe, Hartford, Conn.")

	assert.Equal(t, model.FileTypeWidow, res.Category)
	assert.Equal(t, model.FileTypeWidow, res.DetectedCategory)
	assert.Equal(t, 1.0, res.Certainty)
	assert.Equal(t, "srwt", res.Rule)
	assert.Equal(t, "W.", res.RawToken)
	assert.Equal(t, "File W.12345,", res.MatchSnippet)
	assert.Equal(t, "Jane Doe", res.ApplicantCandidate)
	assert.Contains(t, res.PlaceCandidate, "Hartford")
	assert.Equal(t, "", res.IntroText)
}

func TestParseRulePrecedence(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		category  model.FileTypeCategory
		certainty float64
		rule      string
	}{
		{
			name:      "bounty land spelled out",
			title:     "Revolutionary War Pension and Bounty Land Warrant Application File B. L. Wt. 1234-100, John Smith, Va.",
			category:  model.FileTypeBLW,
			certainty: 1.0,
			rule:      "blw",
		},
		{
			name:      "bounty land compact",
			title:     "File BLW 2210, Amos Hale",
			category:  model.FileTypeBLW,
			certainty: 1.0,
			rule:      "blw",
		},
		{
			name:      "old war",
			title:     "Old War Invalid File 26012, Tom Jones",
			category:  model.FileTypeOldWar,
			certainty: 0.9,
			rule:      "old_war",
		},
		{
			name:      "accession",
			title:     "N.A. Acc. No. 874, John Doe",
			category:  model.FileTypeNAAccession,
			certainty: 0.85,
			rule:      "na_accession",
		},
		{
			name:      "survivor beats later rules",
			title:     "Old War File S.4021, Abel Cole",
			category:  model.FileTypeSurvivor,
			certainty: 1.0,
			rule:      "srwt",
		},
		{
			name:      "no match",
			title:     "Miscellaneous papers, Boston",
			category:  model.FileTypeNone,
			certainty: 0.0,
			rule:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.title)
			assert.Equal(t, tt.category, res.Category)
			assert.Equal(t, tt.certainty, res.Certainty)
			assert.Equal(t, tt.rule, res.Rule)
		})
	}
}

func TestParseApplicantFallback(t *testing.T) {
	res := Parse("Miscellaneous papers, Boston.")
	assert.Equal(t, "Miscellaneous papers", res.ApplicantCandidate)
	assert.Equal(t, "Boston", res.PlaceCandidate)
	assert.Equal(t, "Miscellaneous papers, Boston.", res.IntroText)

	res = Parse("")
	assert.Equal(t, "", res.ApplicantCandidate)
	assert.Equal(t, "", res.PlaceCandidate)
	assert.Equal(t, model.FileTypeNone, res.Category)
}

func TestParseIntro(t *testing.T) {
	res := Parse("Revolutionary War Pension and Bounty Land Warrant Application File S. 1001, Eli Ward, N.Y.")
	assert.Equal(t, "Revolutionary War Pension and Bounty Land Warrant Application", res.IntroText)
	assert.Equal(t, "Eli Ward", res.ApplicantCandidate)
	assert.Equal(t, "N.Y", res.PlaceCandidate)
}

func TestParseUnmappedTokenIsGated(t *testing.T) {
	p := NewParser(map[string]string{"S": "S"})

	res := p.Parse("File W.12345, Jane Doe")
	assert.Equal(t, model.FileTypeNone, res.Category)
	assert.Equal(t, UnmappedCertainty, res.Certainty)
	assert.Equal(t, "W.", res.RawToken)
	assert.Equal(t, "File W.12345,", res.MatchSnippet)
	assert.Equal(t, "Jane Doe", res.ApplicantCandidate)
}

func TestParseCustomRuleOrder(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 4)

	// Accession first: it now wins over the survivor token
	reordered := []Rule{rules[3], rules[0], rules[1], rules[2]}
	p := NewParserWithRules(reordered, model.DefaultTables().FileTypeTokens)

	res := p.Parse("N.A. Acc. No. 12 File S.4021, Abel Cole")
	assert.Equal(t, model.FileTypeNAAccession, res.Category)
	assert.Equal(t, "Abel Cole", res.ApplicantCandidate)
	assert.Equal(t, "na_accession", p.Rules()[0].Name)
}

func TestGroup(t *testing.T) {
	tests := []struct {
		title string
		want  model.FileTypeGroup
	}{
		{"Revolutionary War Pension and Bounty-Land-Warrant Application File W. 1, Jane", model.GroupApplication},
		{"Revolutionary War Pension and Bounty Land Warrant Application Files Family Record", model.GroupFamilyRecord},
		{"MICROFILM TARGET SHEET", model.GroupMicrofilmSheet},
		{"Letter from the Commissioner", model.GroupOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Group(tt.title), tt.title)
	}

	assert.True(t, IsApplication(model.GroupApplication))
	assert.False(t, IsApplication(model.GroupFamilyRecord))
}
