package g2p

import (
	"sync"

	"github.com/klattspeak/klattspeak/pkg/phoneme"
)

var (
	englishTableOnce sync.Once
	englishTableVal  *ruleTable
)

// englishTable returns the English letter-to-phoneme rule table. Rules are
// not an exhaustive solver for English orthography — they cover the common
// digraphs/trigraphs and enough context sensitivity (c/g softening,
// word-initial/-final "y") to produce plausible, fully deterministic output
// for ordinary text. No rule emits the "O", "U", "D" or "Z" keys of
// [phoneme.English]. Irregular words belong in the lexicon exception layer,
// not here.
func englishTable() *ruleTable {
	englishTableOnce.Do(func() {
		englishTableVal = &ruleTable{
			rules:     englishRules,
			inventory: phoneme.English(),
			stress:    englishStress,
		}
	})
	return englishTableVal
}

// englishRules need not be listed longest-pattern-first: at each position
// the engine keeps the longest matching pattern, so declaration order only
// matters as the tie-break between rules of equal matched length, e.g. the front-vowel-conditioned "c"/"g" rules
// must precede their unconditioned defaults.
var englishRules = []rule{
	// --- Digits, expanded digit-by-digit per the say-as "characters" rule ---
	{pattern: "0", phonemes: []string{"z", "i", "r", "o"}},
	{pattern: "1", phonemes: []string{"w", "V", "n"}},
	{pattern: "2", phonemes: []string{"t", "u"}},
	{pattern: "3", phonemes: []string{"T", "r", "i"}},
	{pattern: "4", phonemes: []string{"f", "o", "r"}},
	{pattern: "5", phonemes: []string{"f", "aI", "v"}},
	{pattern: "6", phonemes: []string{"s", "I", "k", "s"}},
	{pattern: "7", phonemes: []string{"s", "E", "v", "@", "n"}},
	{pattern: "8", phonemes: []string{"e", "t"}},
	{pattern: "9", phonemes: []string{"n", "aI", "n"}},

	// --- Apostrophe: transparent separator, no phoneme ---
	{pattern: "'"},

	// --- Trigraphs ---
	{pattern: "tch", phonemes: []string{"tS"}},
	{pattern: "dge", phonemes: []string{"dZ"}},
	{pattern: "igh", phonemes: []string{"aI"}},

	// --- Digraphs ---
	{pattern: "ch", phonemes: []string{"tS"}},
	{pattern: "sh", phonemes: []string{"S"}},
	{pattern: "th", phonemes: []string{"T"}},
	{pattern: "ph", phonemes: []string{"f"}},
	{pattern: "wh", phonemes: []string{"w"}},
	{pattern: "ck", phonemes: []string{"k"}},
	{pattern: "ng", phonemes: []string{"N"}},
	{pattern: "qu", phonemes: []string{"k", "w"}},
	{pattern: "ee", phonemes: []string{"i"}},
	{pattern: "ea", phonemes: []string{"i"}},
	{pattern: "oo", phonemes: []string{"u"}},
	{pattern: "ai", phonemes: []string{"e"}},
	{pattern: "ay", phonemes: []string{"e"}},
	{pattern: "oa", phonemes: []string{"o"}},
	{pattern: "ou", phonemes: []string{"aU"}},
	{pattern: "ow", phonemes: []string{"aU"}},
	{pattern: "oi", phonemes: []string{"OI"}},
	{pattern: "oy", phonemes: []string{"OI"}},

	// --- "y" context rules (earlier wins over the single-letter default) ---
	{pattern: "y", phonemes: []string{"j"}, before: ctxWordBoundary},
	{pattern: "y", phonemes: []string{"i"}, before: ctxConsonant, after: ctxWordBoundary},
	{pattern: "y", phonemes: []string{"I"}},

	// --- c/g softening before a front vowel (earlier wins over defaults) ---
	{pattern: "c", phonemes: []string{"s"}, after: ctxFrontVowel},
	{pattern: "g", phonemes: []string{"dZ"}, after: ctxFrontVowel},

	// --- Single-letter consonant defaults ---
	{pattern: "b", phonemes: []string{"b"}},
	{pattern: "c", phonemes: []string{"k"}},
	{pattern: "d", phonemes: []string{"d"}},
	{pattern: "f", phonemes: []string{"f"}},
	{pattern: "g", phonemes: []string{"g"}},
	{pattern: "h", phonemes: []string{"h"}},
	{pattern: "j", phonemes: []string{"dZ"}},
	{pattern: "k", phonemes: []string{"k"}},
	{pattern: "l", phonemes: []string{"l"}},
	{pattern: "m", phonemes: []string{"m"}},
	{pattern: "n", phonemes: []string{"n"}},
	{pattern: "p", phonemes: []string{"p"}},
	{pattern: "q", phonemes: []string{"k"}},
	{pattern: "r", phonemes: []string{"r"}},
	{pattern: "s", phonemes: []string{"s"}},
	{pattern: "t", phonemes: []string{"t"}},
	{pattern: "v", phonemes: []string{"v"}},
	{pattern: "w", phonemes: []string{"w"}},
	{pattern: "x", phonemes: []string{"k", "s"}},
	{pattern: "z", phonemes: []string{"z"}},

	// --- Single-letter vowel defaults ---
	{pattern: "a", phonemes: []string{"&"}},
	{pattern: "e", phonemes: []string{"E"}},
	{pattern: "i", phonemes: []string{"I"}},
	{pattern: "o", phonemes: []string{"A"}},
	{pattern: "u", phonemes: []string{"V"}},
}
