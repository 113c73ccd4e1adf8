package dictionary

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// modifierLetters maps superscript and subscript letters to their plain capital
var modifierLetters = map[rune]rune{
	'ᵃ': 'A', 'ᵇ': 'B', 'ᶜ': 'C', 'ᵈ': 'D', 'ᵉ': 'E', 'ᶠ': 'F', 'ᵍ': 'G',
	'ʰ': 'H', 'ⁱ': 'I', 'ʲ': 'J', 'ᵏ': 'K', 'ˡ': 'L', 'ᵐ': 'M', 'ⁿ': 'N',
	'ᵒ': 'O', 'ᵖ': 'P', 'ʳ': 'R', 'ˢ': 'S', 'ᵗ': 'T', 'ᵘ': 'U', 'ᵛ': 'V',
	'ʷ': 'W', 'ˣ': 'X', 'ʸ': 'Y', 'ᶻ': 'Z',
	'ₐ': 'A', 'ₑ': 'E', 'ₕ': 'H', 'ᵢ': 'I', 'ⱼ': 'J', 'ₖ': 'K', 'ₗ': 'L',
	'ₘ': 'M', 'ₙ': 'N', 'ₒ': 'O', 'ₚ': 'P', 'ᵣ': 'R', 'ₛ': 'S', 'ₜ': 'T',
	'ᵤ': 'U', 'ᵥ': 'V', 'ₓ': 'X',
}

var ligatures = strings.NewReplacer(
	"œ", "OE", "Œ", "OE",
	"æ", "AE", "Æ", "AE",
	"’", "'", "ʼ", "'",
)

// normalizer folds a word to its canonical lookup form.
// It holds a stateful transformer and must not be shared between goroutines.
type normalizer struct {
	t transform.Transformer
}

func newNormalizer() *normalizer {
	return &normalizer{
		t: transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
			runes.Map(func(r rune) rune {
				if plain, ok := modifierLetters[r]; ok {
					return plain
				}
				return r
			}),
		),
	}
}

func (n *normalizer) normalize(word string) string {
	folded, _, err := transform.String(n.t, word)
	if err != nil {
		folded = word
	}
	return strings.ToUpper(ligatures.Replace(folded))
}

// Normalize returns the canonical form used for both stored entries and queries:
// diacritics stripped, ligatures expanded, modifier letters folded, uppercased.
func Normalize(word string) string {
	return newNormalizer().normalize(strings.TrimSpace(word))
}

// ParseEntries extracts normalized words from raw dictionary text.
// Comment lines, blank lines, "/" annotations and trailing fields are dropped,
// as are entries containing digits or hyphens. Duplicates are kept; the caller
// collapses them.
func ParseEntries(raw string) []string {
	n := newNormalizer()
	var words []string
	for _, line := range strings.FieldsFunc(raw, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if word, ok := parseLine(n, line); ok {
			words = append(words, word)
		}
	}
	return words
}

func parseLine(n *normalizer, line string) (string, bool) {
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return "", false
	}

	entry, _, _ := strings.Cut(line, "/")
	entry, _, _ = strings.Cut(entry, "\t")
	entry, _, _ = strings.Cut(entry, " ")
	if entry == "" {
		return "", false
	}

	word := n.normalize(entry)
	if word == "" || strings.Contains(word, "-") || containsDigit(word) {
		return "", false
	}
	return word, true
}

func containsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
