package g2p

import (
	"sync"

	"github.com/klattspeak/klattspeak/pkg/phoneme"
)

var (
	spanishTableOnce sync.Once
	spanishTableVal  *ruleTable
)

// spanishTable returns the Spanish letter-to-phoneme rule table, covering
// every phoneme in [phoneme.Spanish] plus the digraphs and context rules
// (ñ is represented in source text as "ni"+vowel is NOT handled here —
// callers are expected to supply the Unicode "ñ" directly) needed for
// ordinary Spanish orthography.
func spanishTable() *ruleTable {
	spanishTableOnce.Do(func() {
		spanishTableVal = &ruleTable{
			rules:     spanishRules,
			inventory: phoneme.Spanish(),
			stress:    spanishStress,
		}
	})
	return spanishTableVal
}

var spanishRules = []rule{
	// --- Digits ---
	{pattern: "0", phonemes: []string{"s", "e", "r", "o"}},
	{pattern: "1", phonemes: []string{"u", "n", "o"}},
	{pattern: "2", phonemes: []string{"d", "o", "s"}},
	{pattern: "3", phonemes: []string{"t", "r", "e", "s"}},
	{pattern: "4", phonemes: []string{"k", "u", "a", "t", "r", "o"}},
	{pattern: "5", phonemes: []string{"s", "i", "n", "k", "o"}},
	{pattern: "6", phonemes: []string{"s", "e", "i", "s"}},
	{pattern: "7", phonemes: []string{"s", "j", "e", "t", "e"}},
	{pattern: "8", phonemes: []string{"o", "tS", "o"}},
	{pattern: "9", phonemes: []string{"n", "u", "e", "b", "e"}},

	// --- Apostrophe: transparent separator, no phoneme ---
	{pattern: "'"},

	// --- Digraphs and the Unicode letters ñ, ü ---
	{pattern: "ch", phonemes: []string{"tS"}},
	{pattern: "ll", phonemes: []string{"L"}},
	{pattern: "rr", phonemes: []string{"rr"}},
	{pattern: "qu", phonemes: []string{"k"}},
	{pattern: "ñ", phonemes: []string{"J"}},
	{pattern: "ü", phonemes: []string{"u"}},

	// --- "r" is trilled word-initially, tapped elsewhere ---
	{pattern: "r", phonemes: []string{"rr"}, before: ctxWordBoundary},
	{pattern: "r", phonemes: []string{"r"}},

	// --- c/g softening before a front vowel ---
	{pattern: "c", phonemes: []string{"s"}, after: ctxFrontVowel},
	{pattern: "g", phonemes: []string{"x"}, after: ctxFrontVowel},

	// --- "h" is silent except in "ch" (handled above) ---
	{pattern: "h", phonemes: nil},

	// --- Single-letter consonant defaults ---
	{pattern: "b", phonemes: []string{"b"}},
	{pattern: "c", phonemes: []string{"k"}},
	{pattern: "d", phonemes: []string{"d"}},
	{pattern: "f", phonemes: []string{"f"}},
	{pattern: "g", phonemes: []string{"g"}},
	{pattern: "j", phonemes: []string{"x"}},
	{pattern: "k", phonemes: []string{"k"}},
	{pattern: "l", phonemes: []string{"l"}},
	{pattern: "m", phonemes: []string{"m"}},
	{pattern: "n", phonemes: []string{"n"}},
	{pattern: "p", phonemes: []string{"p"}},
	{pattern: "s", phonemes: []string{"s"}},
	{pattern: "t", phonemes: []string{"t"}},
	{pattern: "v", phonemes: []string{"b"}},
	{pattern: "w", phonemes: []string{"w"}},
	{pattern: "x", phonemes: []string{"k", "s"}},
	{pattern: "y", phonemes: []string{"j"}, before: ctxWordBoundary},
	{pattern: "y", phonemes: []string{"i"}},
	{pattern: "z", phonemes: []string{"s"}},

	// --- Single-letter vowel defaults, including written-accent forms ---
	{pattern: "a", phonemes: []string{"a"}},
	{pattern: "á", phonemes: []string{"a"}},
	{pattern: "e", phonemes: []string{"e"}},
	{pattern: "é", phonemes: []string{"e"}},
	{pattern: "i", phonemes: []string{"i"}},
	{pattern: "í", phonemes: []string{"i"}},
	{pattern: "o", phonemes: []string{"o"}},
	{pattern: "ó", phonemes: []string{"o"}},
	{pattern: "u", phonemes: []string{"u"}},
	{pattern: "ú", phonemes: []string{"u"}},
}
