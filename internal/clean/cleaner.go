// Package clean corrects common OCR artifacts in historical pension documents.
package clean

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// Mode selects how much cleanup is applied
type Mode string

const (
	ModeFull    Mode = "full"
	ModeMinimal Mode = "minimal"
	ModeAmounts Mode = "amounts"
	ModeNone    Mode = "none"
)

// digitLetter pairs a digit with the letter OCR usually mistook it for
type digitLetter struct {
	digit  byte
	letter byte
}

// Applied in this order; later substitutions see the letters produced by earlier ones.
var digitLetters = []digitLetter{
	{'1', 'I'},
	{'0', 'O'},
	{'5', 'S'},
	{'8', 'B'},
	{'6', 'G'},
	{'3', 'E'},
	{'7', 'T'},
}

const wordClass = `[\p{L}\p{N}_]`

var (
	reDoubleQuotes = regexp.MustCompile(`[“”„‟«»]`)
	reSingleQuotes = regexp.MustCompile(`[‘’‚‛]`)
	reDashes       = regexp.MustCompile(`[—–‒―]`)
	reApostrophes  = regexp.MustCompile(`(\p{L})'+(\p{L})`)
	reParenOpen    = regexp.MustCompile(`\(\s+`)
	reParenClose   = regexp.MustCompile(`\s+\)`)
	reContraction  = regexp.MustCompile(`'\s+([dst])\b`)
	reHyphenBreak  = regexp.MustCompile(`(` + wordClass + `)-\s*\n\s*(` + wordClass + `)`)
	reLineBreak    = regexp.MustCompile(`(` + wordClass + `)\s*\n\s*(` + wordClass + `)`)
	reHorizontalWS = regexp.MustCompile(`[^\S\n]+`)
	reSpacedNL     = regexp.MustCompile(` ?\n ?`)
	reBlankLines   = regexp.MustCompile(`\n{2,}`)
	reSentenceEnd  = regexp.MustCompile(`([.!?])\n+([A-Z])`)
	reSpaceBefore  = regexp.MustCompile(` +([,.!?;:])`)
	reAnyWS        = regexp.MustCompile(`\s+`)
)

// Cleaner applies OCR correction rules in a fixed order
type Cleaner struct {
	corrections  map[string]string
	correctionRe *regexp.Regexp
}

// NewCleaner creates a cleaner with the given whole-word OCR corrections
func NewCleaner(corrections map[string]string) *Cleaner {
	c := &Cleaner{corrections: make(map[string]string, len(corrections))}

	words := make([]string, 0, len(corrections))
	for wrong, right := range corrections {
		wrong = strings.ToLower(strings.TrimSpace(wrong))
		if wrong == "" {
			continue
		}
		c.corrections[wrong] = right
		words = append(words, regexp.QuoteMeta(wrong))
	}

	if len(words) > 0 {
		// Longest first so alternation never stops at a shorter prefix
		sort.Slice(words, func(i, j int) bool {
			if len(words[i]) != len(words[j]) {
				return len(words[i]) > len(words[j])
			}
			return words[i] < words[j]
		})
		c.correctionRe = regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)
	}

	return c
}

var (
	defaultCleaner = NewCleaner(model.DefaultTables().OCRCorrections)
	amountsCleaner = NewCleaner(map[string]string{"teh": "the", "adn": "and", "nad": "and"})
)

// Clean runs the full pipeline with the built-in correction dictionary
func Clean(text string) string {
	return defaultCleaner.Clean(text)
}

// CleanMinimal runs the fast subset of the pipeline
func CleanMinimal(text string) string {
	return defaultCleaner.CleanMinimal(text)
}

// CleanForAmounts runs the variant that never rewrites digits inside numbers
func CleanForAmounts(text string) string {
	return amountsCleaner.CleanForAmounts(text)
}

// Apply cleans text according to mode; unknown modes leave text untouched
func (c *Cleaner) Apply(mode Mode, text string) string {
	switch mode {
	case ModeFull:
		return c.Clean(text)
	case ModeMinimal:
		return c.CleanMinimal(text)
	case ModeAmounts:
		return c.CleanForAmounts(text)
	default:
		return text
	}
}

// Clean corrects glyphs, digit/letter confusions, misspellings, quotes,
// punctuation spacing, broken words and whitespace, in that order.
func (c *Cleaner) Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = fixGlyphs(text)
	text = fixDigits(text, digitLetters, false)
	text = c.correct(text)

	text = reDoubleQuotes.ReplaceAllString(text, `"`)
	text = reSingleQuotes.ReplaceAllString(text, "'")
	text = reDashes.ReplaceAllString(text, "-")
	text = reApostrophes.ReplaceAllString(text, "$1'$2")

	text = reParenOpen.ReplaceAllString(text, "(")
	text = reParenClose.ReplaceAllString(text, ")")
	text = spaceInnerPunctuation(text)
	text = reContraction.ReplaceAllString(text, "'$1")

	// Joins any two words separated only by a line break, hyphenated or not.
	// This also merges words that were legitimately on separate lines.
	text = replaceUntilStable(reHyphenBreak, text, "$1$2")
	text = replaceUntilStable(reLineBreak, text, "$1$2")

	return strings.TrimSpace(normalizeWhitespace(text))
}

// CleanMinimal fixes glyphs and the three most common digit confusions,
// then squeezes all whitespace to single spaces.
func (c *Cleaner) CleanMinimal(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = fixGlyphs(text)
	text = fixDigits(text, digitLetters[:3], false)

	return strings.TrimSpace(reAnyWS.ReplaceAllString(text, " "))
}

// CleanForAmounts only rewrites a digit when letters flank it on both
// sides, so "96 Dollars" and "$1,200" survive intact.
func (c *Cleaner) CleanForAmounts(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = fixGlyphs(text)
	text = fixDigits(text, digitLetters[:4], true)
	text = c.correct(text)

	return strings.TrimSpace(reAnyWS.ReplaceAllString(text, " "))
}

// CleanBatch cleans texts in order, reporting progress every 100 items and at the end
func (c *Cleaner) CleanBatch(texts []string, progress func(done, total int)) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = c.Clean(text)
		if progress != nil && (i+1)%100 == 0 {
			progress(i+1, len(texts))
		}
	}
	if progress != nil {
		progress(len(texts), len(texts))
	}
	return out
}

// fixGlyphs replaces long-s, pipes and doubled v
func fixGlyphs(text string) string {
	text = strings.ReplaceAll(text, "ſ", "s")
	text = strings.ReplaceAll(text, "|", "I")
	return strings.ReplaceAll(text, "vv", "w")
}

// fixDigits runs the substitution passes until nothing changes, so runs
// like "a11" end up fully converted and a second clean is a no-op
func fixDigits(text string, set []digitLetter, both bool) string {
	for {
		next := text
		for _, dl := range set {
			next = replaceDigit(next, dl, both)
		}
		if next == text {
			return next
		}
		text = next
	}
}

// replaceDigit swaps dl.digit for dl.letter when it touches an ASCII letter.
// With both set, letters must sit on each side. Neighbors are read from the
// input of this pass.
func replaceDigit(text string, dl digitLetter, both bool) string {
	if strings.IndexByte(text, dl.digit) < 0 {
		return text
	}

	in := []byte(text)
	out := []byte(text)
	for i, b := range in {
		if b != dl.digit {
			continue
		}
		prev := i > 0 && isASCIILetter(in[i-1])
		next := i+1 < len(in) && isASCIILetter(in[i+1])
		if (both && prev && next) || (!both && (prev || next)) {
			out[i] = dl.letter
		}
	}
	return string(out)
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// correct applies the whole-word dictionary, keeping a leading capital
func (c *Cleaner) correct(text string) string {
	if c.correctionRe == nil {
		return text
	}
	return c.correctionRe.ReplaceAllStringFunc(text, func(word string) string {
		right, ok := c.corrections[strings.ToLower(word)]
		if !ok {
			return word
		}
		first, _ := utf8.DecodeRuneInString(word)
		if unicode.IsUpper(first) && right != "" {
			r, size := utf8.DecodeRuneInString(right)
			return string(unicode.ToUpper(r)) + right[size:]
		}
		return right
	})
}

// spaceInnerPunctuation inserts a space after : ; , . ? ! wedged between word characters
func spaceInnerPunctuation(text string) string {
	runes := []rune(text)
	var buf strings.Builder
	buf.Grow(len(text))

	for i, r := range runes {
		buf.WriteRune(r)
		if !isSpacedPunct(r) {
			continue
		}
		if i > 0 && i+1 < len(runes) && isWordRune(runes[i-1]) && isWordRune(runes[i+1]) {
			buf.WriteByte(' ')
		}
	}
	return buf.String()
}

// normalizeWhitespace squeezes spaces, limits blank lines to one, marks
// paragraph breaks after sentence ends and fixes spacing around punctuation.
func normalizeWhitespace(text string) string {
	text = reHorizontalWS.ReplaceAllString(text, " ")
	text = reSpacedNL.ReplaceAllString(text, "\n")
	text = reBlankLines.ReplaceAllString(text, "\n\n")
	text = reSentenceEnd.ReplaceAllString(text, "$1\n\n$2")
	text = reSpaceBefore.ReplaceAllString(text, "$1")
	return spaceAfterPunctuation(text)
}

// spaceAfterPunctuation leaves exactly one space after punctuation that
// is followed by more text on the same line
func spaceAfterPunctuation(text string) string {
	runes := []rune(text)
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		buf.WriteRune(r)
		if !isSpacedPunct(r) {
			continue
		}
		j := i + 1
		for j < len(runes) && runes[j] == ' ' {
			j++
		}
		if j < len(runes) && runes[j] != '\n' {
			buf.WriteByte(' ')
		}
		i = j - 1
	}
	return buf.String()
}

func isSpacedPunct(r rune) bool {
	switch r {
	case ':', ';', ',', '.', '?', '!':
		return true
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// replaceUntilStable reapplies re until the text stops changing; a single
// pass misses chains like "a\nb\nc" because matches cannot overlap
func replaceUntilStable(re *regexp.Regexp, text, repl string) string {
	for {
		next := re.ReplaceAllString(text, repl)
		if next == text {
			return next
		}
		text = next
	}
}
