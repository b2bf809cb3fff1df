package g2p

import "github.com/klattspeak/klattspeak/pkg/phoneme"

// stressPolicy decides, for a word's letters and the phoneme keys its rules
// produced, which phoneme index (if any) carries primary stress. Every
// other vowel-bearing phoneme is marked [Secondary]; consonants and
// silences are always [NoStress].
type stressPolicy func(tab *ruleTable, word string, phonemes []string) int

func assignStress(tab *ruleTable, phonemes []string, word string) []Stress {
	out := make([]Stress, len(phonemes))
	vowelIdx := vowelIndices(tab, phonemes)
	if len(vowelIdx) == 0 {
		return out
	}
	primary := tab.stress(tab, word, phonemes)
	for _, i := range vowelIdx {
		if i == primary {
			out[i] = Primary
		} else {
			out[i] = Secondary
		}
	}
	return out
}

// vowelIndices returns the phoneme indices whose class bears stress (vowels
// and diphthongs).
func vowelIndices(tab *ruleTable, phonemes []string) []int {
	var idx []int
	for i, key := range phonemes {
		p, ok := tab.inventory.Get(key)
		if !ok {
			continue
		}
		if p.Class == phoneme.Vowel || p.Class == phoneme.Diphthong {
			idx = append(idx, i)
		}
	}
	return idx
}

// englishStress implements the penultimate-vowel-primary heuristic, falling
// back to the single vowel of a monosyllabic word.
func englishStress(tab *ruleTable, word string, phonemes []string) int {
	idx := vowelIndices(tab, phonemes)
	if len(idx) == 0 {
		return -1
	}
	if len(idx) == 1 {
		return idx[0]
	}
	return idx[len(idx)-2]
}

// spanishStress implements the Spanish stress rule: the penultimate vowel is
// primary unless the word's last orthographic letter is a consonant other
// than 'n' or 's', in which case the final vowel is primary. Monosyllables
// stress their only vowel.
func spanishStress(tab *ruleTable, word string, phonemes []string) int {
	idx := vowelIndices(tab, phonemes)
	if len(idx) == 0 {
		return -1
	}
	if len(idx) == 1 {
		return idx[0]
	}

	lastLetter := lastLetterOf(word)
	endsInConsonantNotNS := lastLetter != 0 &&
		!isVowelLetter(lastLetter) &&
		lastLetter != 'n' && lastLetter != 's'

	if endsInConsonantNotNS {
		return idx[len(idx)-1]
	}
	return idx[len(idx)-2]
}

// lastLetterOf returns the final a-z letter of word, ignoring any trailing
// apostrophes or digits, or 0 if there is none.
func lastLetterOf(word string) byte {
	for i := len(word) - 1; i >= 0; i-- {
		c := word[i]
		if isLetterByte(c) {
			return c
		}
	}
	return 0
}
