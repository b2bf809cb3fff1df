// Package phonetic borrows a known exception's pronunciation for a
// near-miss spelling using Double Metaphone phonetic codes plus
// Jaro-Winkler similarity, both from [github.com/antzucaro/matchr]. It
// never overrides the rule table for an ordinary word: a candidate only
// wins when its Double Metaphone code collides with a known exception's
// and its Jaro-Winkler similarity clears the configured threshold.
package phonetic

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/klattspeak/klattspeak/pkg/g2p"
	"github.com/klattspeak/klattspeak/pkg/g2p/lexicon"
	"github.com/klattspeak/klattspeak/pkg/language"
)

const defaultThreshold = 0.85

// Option configures a [Fallback].
type Option func(*Fallback)

// WithThreshold sets the minimum Jaro-Winkler score required to accept a
// phonetic near-miss. Default: 0.85.
func WithThreshold(threshold float64) Option {
	return func(f *Fallback) { f.threshold = threshold }
}

// Fallback is a [g2p.Lookup] that borrows a [lexicon.Static] entry's
// pronunciation for spellings that are not exact exception-table matches
// but are phonetically and orthographically close to one.
type Fallback struct {
	static    *lexicon.Static
	threshold float64
}

var _ g2p.Lookup = (*Fallback)(nil)

// New returns a Fallback layered over static.
func New(static *lexicon.Static, opts ...Option) *Fallback {
	f := &Fallback{static: static, threshold: defaultThreshold}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Lookup implements [g2p.Lookup]. It first tries an exact match against
// static, then a phonetic near-miss search, and otherwise reports a miss so
// the caller falls through to the rule engine.
func (f *Fallback) Lookup(lang language.Language, word string) ([]string, []g2p.Stress, bool) {
	word = strings.ToLower(word)
	if entry, ok := f.static.Entry(lang, word); ok {
		return entry.Phonemes, entry.Stresses, true
	}

	wordPrimary, wordAlt := matchr.DoubleMetaphone(word)
	if wordPrimary == "" && wordAlt == "" {
		return nil, nil, false
	}

	best := ""
	bestScore := 0.0
	for _, candidate := range f.static.Words(lang) {
		candPrimary, candAlt := matchr.DoubleMetaphone(candidate)
		if !codesCollide(wordPrimary, wordAlt, candPrimary, candAlt) {
			continue
		}
		score := matchr.JaroWinkler(word, candidate, false)
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if best == "" || bestScore < f.threshold {
		return nil, nil, false
	}
	entry, ok := f.static.Entry(lang, best)
	if !ok {
		return nil, nil, false
	}
	return entry.Phonemes, entry.Stresses, true
}

func codesCollide(aPrimary, aAlt, bPrimary, bAlt string) bool {
	for _, a := range []string{aPrimary, aAlt} {
		if a == "" {
			continue
		}
		if a == bPrimary || a == bAlt {
			return true
		}
	}
	return false
}
