// Package g2p converts normalized text into an ordered sequence of phoneme
// tokens. [ToPhonemes] is a pure function of its two arguments: the same
// text and language always produce the same tokens, with no I/O and no
// shared mutable state. It depends on [pkg/phoneme] for phoneme classes and
// [pkg/language] for locale resolution, and is in turn depended on by
// [pkg/prosody].
package g2p

import (
	"fmt"

	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/phoneme"
)

// ErrUnsupportedLanguage is returned when the requested language has no
// rule table registered. It is the same value as
// [language.ErrUnsupportedLanguage].
var ErrUnsupportedLanguage = language.ErrUnsupportedLanguage

// Stress marks the prominence of a vowel-bearing token. Consonants and
// silences are always [NoStress].
type Stress int

const (
	NoStress Stress = iota
	Secondary
	Primary
)

// String returns a short label for the stress level.
func (s Stress) String() string {
	switch s {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return "none"
	}
}

// Token is one phoneme event produced by the converter: an inventory key
// (see [phoneme.Inventory.Get]) paired with its stress level.
type Token struct {
	Phoneme string
	Stress  Stress
}

// ToPhonemes converts text into an ordered token sequence for lang. It is
// pure and deterministic: NFC-normalize, lowercase, strip everything except
// letters, digits, apostrophes, whitespace and punctuation, split into
// words, rewrite each word through lang's ordered longest-match rule table,
// assign stress, and insert silence tokens at commas and sentence-final
// punctuation.
//
// An unrecognised language returns [ErrUnsupportedLanguage]. Text that
// normalizes to nothing returns an empty, non-nil slice and a nil error.
func ToPhonemes(text string, lang language.Language) ([]Token, error) {
	return convert(text, lang, nil)
}

// convert is the shared engine behind [ToPhonemes] and [Converter.ToPhonemes].
// lookup, if non-nil, is consulted for each word before the rule table.
func convert(text string, lang language.Language, lookup func(lang language.Language, word string) ([]string, []Stress, bool)) ([]Token, error) {
	tab, err := tableFor(lang)
	if err != nil {
		return nil, err
	}

	units := tokenizeText(text)
	tokens := make([]Token, 0, len(units)*3)

	for _, u := range units {
		switch u.kind {
		case unitBreakShort:
			tokens = append(tokens, Token{Phoneme: "_", Stress: NoStress})
		case unitBreakLong:
			tokens = append(tokens, Token{Phoneme: "#", Stress: NoStress})
		case unitBreakQuestion:
			tokens = append(tokens, Token{Phoneme: "#?", Stress: NoStress})
		case unitWord:
			phons, stresses, ok := ([]string)(nil), ([]Stress)(nil), false
			if lookup != nil {
				phons, stresses, ok = lookup(lang, u.text)
			}
			if !ok {
				phons, err = applyRules(tab, u.text)
				if err != nil {
					return nil, err
				}
				stresses = assignStress(tab, phons, u.text)
			}
			for i, p := range phons {
				st := NoStress
				if i < len(stresses) {
					st = stresses[i]
				}
				tokens = append(tokens, Token{Phoneme: p, Stress: st})
			}
		}
	}
	return tokens, nil
}

// Inventory returns the phoneme inventory backing lang's rule table, for
// callers that need to resolve a [Token.Phoneme] to its [phoneme.Phoneme].
func Inventory(lang language.Language) (*phoneme.Inventory, error) {
	tab, err := tableFor(lang)
	if err != nil {
		return nil, err
	}
	return tab.inventory, nil
}

func tableFor(lang language.Language) (*ruleTable, error) {
	switch lang {
	case language.English:
		return englishTable(), nil
	case language.Spanish:
		return spanishTable(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLanguage, lang)
	}
}

// Lookup is implemented by lexicon exception/override sources consulted
// before the rule table; see [pkg/g2p/lexicon].
type Lookup interface {
	Lookup(lang language.Language, word string) (phonemes []string, stresses []Stress, found bool)
}

// Converter wraps [ToPhonemes] with an optional [Lookup] consulted for each
// word before falling through to the rule engine. The zero Converter (nil
// Lexicon) behaves exactly like the package-level [ToPhonemes].
type Converter struct {
	Lexicon Lookup
}

// ToPhonemes converts text the same way as the package-level [ToPhonemes],
// except each word is first offered to c.Lexicon.
func (c *Converter) ToPhonemes(text string, lang language.Language) ([]Token, error) {
	if c == nil || c.Lexicon == nil {
		return ToPhonemes(text, lang)
	}
	return convert(text, lang, c.Lexicon.Lookup)
}
