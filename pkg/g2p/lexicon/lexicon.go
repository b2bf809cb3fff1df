// Package lexicon supplies the exception layer consulted by a
// [github.com/klattspeak/klattspeak/pkg/g2p.Converter] before a word is run
// through its language's rule table: a small built-in table of irregular
// pronunciations, plus (in the pgstore and phonetic subpackages) optional
// operator-managed and phonetic-near-miss sources.
package lexicon

import (
	"strings"

	"github.com/klattspeak/klattspeak/pkg/g2p"
	"github.com/klattspeak/klattspeak/pkg/language"
)

// Entry is one exception pronunciation: a phoneme key sequence paired with
// its stress pattern.
type Entry struct {
	Phonemes []string
	Stresses []g2p.Stress
}

// Static is a small built-in exception table for words whose rule-table
// output would be linguistically wrong. It implements [g2p.Lookup] and is
// safe for concurrent use; it never mutates after package initialisation.
type Static struct {
	byLanguage map[language.Language]map[string]Entry
}

// NewStatic returns the default built-in exception table.
func NewStatic() *Static {
	return &Static{byLanguage: defaultExceptions()}
}

var _ g2p.Lookup = (*Static)(nil)

// Lookup implements [g2p.Lookup].
func (s *Static) Lookup(lang language.Language, word string) ([]string, []g2p.Stress, bool) {
	table, ok := s.byLanguage[lang]
	if !ok {
		return nil, nil, false
	}
	entry, ok := table[strings.ToLower(word)]
	if !ok {
		return nil, nil, false
	}
	return entry.Phonemes, entry.Stresses, true
}

// Words returns the exception words registered for lang, for callers (such
// as [pkg/g2p/lexicon/phonetic]) that need to search the table by
// similarity rather than exact match.
func (s *Static) Words(lang language.Language) []string {
	table := s.byLanguage[lang]
	words := make([]string, 0, len(table))
	for w := range table {
		words = append(words, w)
	}
	return words
}

// Entry exposes one exception by exact word, for callers that already know
// which word they want (e.g. after a phonetic match).
func (s *Static) Entry(lang language.Language, word string) (Entry, bool) {
	table, ok := s.byLanguage[lang]
	if !ok {
		return Entry{}, false
	}
	e, ok := table[strings.ToLower(word)]
	return e, ok
}

func defaultExceptions() map[language.Language]map[string]Entry {
	return map[language.Language]map[string]Entry{
		language.English: {
			"the":  {Phonemes: []string{"D", "@"}, Stresses: []g2p.Stress{g2p.NoStress, g2p.Primary}},
			"of":   {Phonemes: []string{"V", "v"}, Stresses: []g2p.Stress{g2p.Primary, g2p.NoStress}},
			"one":  {Phonemes: []string{"w", "V", "n"}, Stresses: []g2p.Stress{g2p.NoStress, g2p.Primary, g2p.NoStress}},
			"two":  {Phonemes: []string{"t", "u"}, Stresses: []g2p.Stress{g2p.NoStress, g2p.Primary}},
			"said": {Phonemes: []string{"s", "E", "d"}, Stresses: []g2p.Stress{g2p.NoStress, g2p.Primary, g2p.NoStress}},
			"women": {Phonemes: []string{"w", "I", "m", "I", "n"}, Stresses: []g2p.Stress{g2p.NoStress, g2p.Primary, g2p.NoStress, g2p.Secondary, g2p.NoStress}},
			"colonel": {Phonemes: []string{"k", "@", "r", "n", "E", "l"}, Stresses: []g2p.Stress{g2p.NoStress, g2p.NoStress, g2p.NoStress, g2p.Primary, g2p.NoStress, g2p.NoStress}},
		},
		language.Spanish: {
			"y":       {Phonemes: []string{"i"}, Stresses: []g2p.Stress{g2p.Primary}},
			"méxico":  {Phonemes: []string{"m", "e", "x", "i", "k", "o"}, Stresses: []g2p.Stress{g2p.NoStress, g2p.NoStress, g2p.NoStress, g2p.Primary, g2p.NoStress, g2p.NoStress}},
		},
	}
}
