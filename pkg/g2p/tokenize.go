package g2p

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

type unitKind int

const (
	unitWord unitKind = iota
	unitBreakShort
	unitBreakLong
	unitBreakQuestion
)

type unit struct {
	kind unitKind
	text string // only set for unitWord
}

// tokenizeText normalizes text to NFC, lowercases it, and splits it into a
// sequence of words and phrase-break markers. Every other character —
// anything that is not a letter, digit, apostrophe, whitespace, or one of
// the recognised punctuation marks — is silently dropped.
func tokenizeText(text string) []unit {
	normalized := norm.NFC.String(strings.ToLower(text))

	var units []unit
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			units = append(units, unit{kind: unitWord, text: word.String()})
			word.Reset()
		}
	}

	for _, r := range normalized {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '\'':
			word.WriteRune(r)
		case r == ',', r == ';', r == ':':
			flush()
			units = append(units, unit{kind: unitBreakShort})
		case r == '.', r == '!':
			flush()
			units = append(units, unit{kind: unitBreakLong})
		case r == '?':
			flush()
			units = append(units, unit{kind: unitBreakQuestion})
		case unicode.IsSpace(r):
			flush()
		default:
			// stripped: neither a word character nor a recognised break
		}
	}
	flush()
	return units
}
