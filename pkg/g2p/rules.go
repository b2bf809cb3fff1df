package g2p

import (
	"fmt"

	"github.com/klattspeak/klattspeak/pkg/phoneme"
)

// ctxClass constrains which letter classes may surround a rule's pattern.
type ctxClass int

const (
	ctxAny ctxClass = iota
	ctxVowel
	ctxConsonant
	ctxFrontVowel  // e, i or y — triggers c/g softening in English
	ctxWordBoundary
)

// rule rewrites one letter-window into zero or more phoneme keys. Rules are
// tried longest-pattern-first; among equal-length matches, the rule that
// appears earliest in the table wins.
type rule struct {
	pattern  string
	phonemes []string
	before   ctxClass // class required of the letter immediately preceding the match
	after    ctxClass // class required of the letter immediately following the match
}

// ruleTable bundles a language's ordered rule set with the inventory its
// phoneme keys are drawn from.
type ruleTable struct {
	rules     []rule
	inventory *phoneme.Inventory
	stress    stressPolicy
}

func satisfies(class ctxClass, letters []byte, pos int, isBefore bool) bool {
	switch class {
	case ctxAny:
		return true
	case ctxWordBoundary:
		if isBefore {
			return pos == 0
		}
		return pos == len(letters)
	case ctxVowel, ctxConsonant, ctxFrontVowel:
		var idx int
		if isBefore {
			if pos == 0 {
				return false
			}
			idx = pos - 1
		} else {
			if pos >= len(letters) {
				return false
			}
			idx = pos
		}
		c := letters[idx]
		switch class {
		case ctxVowel:
			return isVowelLetter(c)
		case ctxFrontVowel:
			return c == 'e' || c == 'i' || c == 'y'
		case ctxConsonant:
			return isLetterByte(c) && !isVowelLetter(c)
		}
	}
	return false
}

func isVowelLetter(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func isLetterByte(c byte) bool {
	return c >= 'a' && c <= 'z'
}

// applyRules rewrites word (already lowercase) into an ordered phoneme key
// sequence using tab's rule table. Matching runs over the word's bytes,
// apostrophes included: an apostrophe is consumed by its own rule, which
// emits no phoneme, and as a neighbouring character it satisfies neither a
// vowel nor a consonant context.
func applyRules(tab *ruleTable, word string) ([]string, error) {
	letters := []byte(word)
	var out []string
	pos := 0
	for pos < len(letters) {
		best := -1
		bestLen := 0
		for i := range tab.rules {
			r := &tab.rules[i]
			n := len(r.pattern)
			if pos+n > len(letters) {
				continue
			}
			if string(letters[pos:pos+n]) != r.pattern {
				continue
			}
			if !satisfies(r.before, letters, pos, true) {
				continue
			}
			if !satisfies(r.after, letters, pos+n, false) {
				continue
			}
			if n > bestLen {
				best = i
				bestLen = n
			}
		}
		if best == -1 {
			return nil, fmt.Errorf("g2p: no rule matches %q at position %d in %q", string(letters[pos]), pos, word)
		}
		r := tab.rules[best]
		out = append(out, r.phonemes...)
		pos += bestLen
	}
	return out, nil
}
