// Package category tags pension titles with one or more application categories.
package category

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// Reasons reported alongside the assigned labels
const (
	ReasonVocabulary     = "vocabulary"
	ReasonNonApplication = "non_application"
	ReasonUnknownMarker  = "unknown_marker"
	ReasonNoMatch        = "no_match"
)

const titlePunctuation = `,.!?:;-_()[]{}'"/\|` + "`~=+*#@%$^&"

var reSpaces = regexp.MustCompile(` +`)

// Assignment is the sorted, deduplicated label set for one title
type Assignment struct {
	Labels []string `json:"labels"`
	Reason string   `json:"reason"`
}

// Assigner matches cleaned titles against a category vocabulary
type Assigner struct {
	vocabulary     []model.CategoryTerms
	unknownMarkers []string
	stopwords      *regexp.Regexp
}

// NewAssigner builds an assigner from the vocabulary, unknown markers and stopwords
func NewAssigner(vocabulary []model.CategoryTerms, unknownMarkers, stopwords []string) *Assigner {
	a := &Assigner{vocabulary: vocabulary, unknownMarkers: unknownMarkers}

	var words []string
	for _, w := range stopwords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words = append(words, regexp.QuoteMeta(w))
		}
	}
	if len(words) > 0 {
		a.stopwords = regexp.MustCompile(`\b(?:` + strings.Join(words, "|") + `)\b`)
	}

	return a
}

var defaultAssigner = func() *Assigner {
	t := model.DefaultTables()
	return NewAssigner(t.Categories, t.UnknownMarkers, t.TitleStopwords)
}()

// Assign tags title with the built-in vocabulary
func Assign(title string) Assignment {
	return defaultAssigner.Assign(title)
}

// AssignForGroup tags title with the built-in vocabulary unless its file group is not an application
func AssignForGroup(title string, group model.FileTypeGroup) Assignment {
	return defaultAssigner.AssignForGroup(title, group)
}

// AssignForGroup returns non_application for titles outside the application group
func (a *Assigner) AssignForGroup(title string, group model.FileTypeGroup) Assignment {
	if group != model.GroupApplication {
		return Assignment{Labels: []string{model.CategoryNonApplication}, Reason: ReasonNonApplication}
	}
	return a.Assign(title)
}

// Assign checks every vocabulary token in table order and collects the
// label of each one present as a whole token. With no match the title is
// tagged unknown.
func (a *Assigner) Assign(title string) Assignment {
	cleaned := a.CleanTitle(title)

	seen := map[string]bool{}
	var labels []string
	for _, terms := range a.vocabulary {
		for _, token := range terms.Tokens {
			token = strings.ToLower(strings.TrimSpace(token))
			if token == "" || !strings.Contains(cleaned, " "+token+" ") {
				continue
			}
			if !seen[terms.Label] {
				seen[terms.Label] = true
				labels = append(labels, terms.Label)
			}
		}
	}

	if len(labels) > 0 {
		sort.Strings(labels)
		return Assignment{Labels: labels, Reason: ReasonVocabulary}
	}

	reason := ReasonNoMatch
	for _, marker := range a.unknownMarkers {
		if marker != "" && strings.Contains(cleaned, strings.ToLower(marker)) {
			reason = ReasonUnknownMarker
			break
		}
	}
	return Assignment{Labels: []string{model.CategoryUnknown}, Reason: reason}
}

// CleanTitle lowercases title, drops the application prefix and stopwords,
// turns punctuation into spaces and pads the result with single spaces
func (a *Assigner) CleanTitle(title string) string {
	prefix := string(model.GroupApplication)

	s := strings.ToLower(strings.ReplaceAll(title, "-", " "))
	s = strings.ReplaceAll(s, prefix+"s", "")
	s = strings.ReplaceAll(s, prefix, "")
	if a.stopwords != nil {
		s = a.stopwords.ReplaceAllString(s, "")
	}

	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(titlePunctuation, r) || r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)

	return " " + strings.TrimSpace(reSpaces.ReplaceAllString(s, " ")) + " "
}
