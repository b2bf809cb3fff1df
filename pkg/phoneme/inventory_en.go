package phoneme

import "sync"

// The five core vowel formants below are required exactly per §4.1 of the
// synthesis specification: i, ɛ, ɑ, ɔ, u. Every other English vowel
// interpolates from or extends this core with plausible cardinal-vowel
// values; only these five are load-bearing for conformance.
var (
	englishOnce sync.Once
	englishInv  *Inventory
)

// English returns the immutable English phoneme inventory: 12 monophthongs,
// 3 diphthongs, and 24 consonants, keyed by a compact ASCII alphabet.
// The inventory is built once and cached for the lifetime of the process.
func English() *Inventory {
	englishOnce.Do(func() {
		englishInv = newInventory("english", englishPhonemes())
	})
	return englishInv
}

func englishPhonemes() []Phoneme {
	return []Phoneme{
		// --- Monophthongs (12, exceeding the minimum of 11) ---
		{ASCII: "i", IPA: "i", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 270, F2: 2290, F3: 3010}.WithDefaultBandwidths()},
		{ASCII: "I", IPA: "ɪ", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 390, F2: 1990, F3: 2550}.WithDefaultBandwidths()},
		{ASCII: "e", IPA: "e", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 400, F2: 2300, F3: 2900}.WithDefaultBandwidths()},
		{ASCII: "E", IPA: "ɛ", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 610, F2: 1900, F3: 2530}.WithDefaultBandwidths()},
		{ASCII: "&", IPA: "æ", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 660, F2: 1720, F3: 2410}.WithDefaultBandwidths()},
		{ASCII: "A", IPA: "ɑ", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 730, F2: 1090, F3: 2440}.WithDefaultBandwidths()},
		{ASCII: "V", IPA: "ʌ", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 640, F2: 1190, F3: 2390}.WithDefaultBandwidths()},
		{ASCII: "O", IPA: "ɔ", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 570, F2: 840, F3: 2410}.WithDefaultBandwidths()},
		{ASCII: "o", IPA: "o", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 450, F2: 800, F3: 2830}.WithDefaultBandwidths()},
		{ASCII: "U", IPA: "ʊ", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 440, F2: 1020, F3: 2240}.WithDefaultBandwidths()},
		{ASCII: "u", IPA: "u", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 300, F2: 870, F3: 2240}.WithDefaultBandwidths()},
		{ASCII: "@", IPA: "ə", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 500, F2: 1500, F3: 2500}.WithDefaultBandwidths()},

		// --- Diphthongs (3) ---
		{ASCII: "aI", IPA: "aɪ", Class: Diphthong, Voiced: true, DefaultDurationMs: 150,
			Formants: Formants{F1: 730, F2: 1090, F3: 2440}.WithDefaultBandwidths(),
			Target:   &Formants{F1: 390, F2: 1990, F3: 2550, B1: 60, B2: 90, B3: 150}},
		{ASCII: "aU", IPA: "aʊ", Class: Diphthong, Voiced: true, DefaultDurationMs: 150,
			Formants: Formants{F1: 730, F2: 1090, F3: 2440}.WithDefaultBandwidths(),
			Target:   &Formants{F1: 440, F2: 1020, F3: 2240, B1: 60, B2: 90, B3: 150}},
		{ASCII: "OI", IPA: "ɔɪ", Class: Diphthong, Voiced: true, DefaultDurationMs: 150,
			Formants: Formants{F1: 570, F2: 840, F3: 2410}.WithDefaultBandwidths(),
			Target:   &Formants{F1: 390, F2: 1990, F3: 2550, B1: 60, B2: 90, B3: 150}},

		// --- Stops (6) ---
		{ASCII: "p", IPA: "p", Class: Stop, Voiced: false, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 700},
		{ASCII: "b", IPA: "b", Class: Stop, Voiced: true, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 700},
		{ASCII: "t", IPA: "t", Class: Stop, Voiced: false, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 3700},
		{ASCII: "d", IPA: "d", Class: Stop, Voiced: true, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 3700},
		{ASCII: "k", IPA: "k", Class: Stop, Voiced: false, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 1800},
		{ASCII: "g", IPA: "g", Class: Stop, Voiced: true, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 1800},

		// --- Fricatives (9) ---
		{ASCII: "f", IPA: "f", Class: Fricative, Voiced: false, DefaultDurationMs: 90, HighPassHz: 4500},
		{ASCII: "v", IPA: "v", Class: Fricative, Voiced: true, DefaultDurationMs: 90, HighPassHz: 4500},
		{ASCII: "T", IPA: "θ", Class: Fricative, Voiced: false, DefaultDurationMs: 90, HighPassHz: 6000},
		{ASCII: "D", IPA: "ð", Class: Fricative, Voiced: true, DefaultDurationMs: 90, HighPassHz: 6000},
		{ASCII: "s", IPA: "s", Class: Fricative, Voiced: false, DefaultDurationMs: 90, HighPassHz: 5000, ResonanceHz: 6500},
		{ASCII: "z", IPA: "z", Class: Fricative, Voiced: true, DefaultDurationMs: 90, HighPassHz: 5000, ResonanceHz: 6500},
		{ASCII: "S", IPA: "ʃ", Class: Fricative, Voiced: false, DefaultDurationMs: 90, HighPassHz: 2500, ResonanceHz: 3000},
		{ASCII: "Z", IPA: "ʒ", Class: Fricative, Voiced: true, DefaultDurationMs: 90, HighPassHz: 2500, ResonanceHz: 3000},
		{ASCII: "h", IPA: "h", Class: Fricative, Voiced: false, DefaultDurationMs: 60, HighPassHz: 500},

		// --- Affricates (2) ---
		{ASCII: "tS", IPA: "tʃ", Class: Affricate, Voiced: false, DefaultDurationMs: 120,
			ClosureMs: 50, ReleaseMs: 30, BurstHz: 2500, FricativeTailMs: 60, HighPassHz: 2500, ResonanceHz: 3000},
		{ASCII: "dZ", IPA: "dʒ", Class: Affricate, Voiced: true, DefaultDurationMs: 120,
			ClosureMs: 50, ReleaseMs: 30, BurstHz: 2500, FricativeTailMs: 60, HighPassHz: 2500, ResonanceHz: 3000},

		// --- Nasals (3) ---
		{ASCII: "m", IPA: "m", Class: Nasal, Voiced: true, DefaultDurationMs: 70,
			Formants: Formants{F1: 480, F2: 1270, F3: 2130}.WithDefaultBandwidths()},
		{ASCII: "n", IPA: "n", Class: Nasal, Voiced: true, DefaultDurationMs: 70,
			Formants: Formants{F1: 480, F2: 1740, F3: 2580}.WithDefaultBandwidths()},
		{ASCII: "N", IPA: "ŋ", Class: Nasal, Voiced: true, DefaultDurationMs: 70,
			Formants: Formants{F1: 480, F2: 1030, F3: 2190}.WithDefaultBandwidths()},

		// --- Liquids (2) ---
		{ASCII: "l", IPA: "l", Class: Liquid, Voiced: true, DefaultDurationMs: 70,
			Formants: Formants{F1: 360, F2: 1290, F3: 2700}.WithDefaultBandwidths()},
		{ASCII: "r", IPA: "ɹ", Class: Liquid, Voiced: true, DefaultDurationMs: 70,
			Formants: Formants{F1: 420, F2: 1300, F3: 1600}.WithDefaultBandwidths()},

		// --- Glides (2) ---
		{ASCII: "w", IPA: "w", Class: Glide, Voiced: true, DefaultDurationMs: 50,
			Formants: Formants{F1: 290, F2: 610, F3: 2150}.WithDefaultBandwidths()},
		{ASCII: "j", IPA: "j", Class: Glide, Voiced: true, DefaultDurationMs: 50,
			Formants: Formants{F1: 270, F2: 2290, F3: 3010}.WithDefaultBandwidths()},

		// --- Silence ---
		// "_" is the short pause inserted at commas; "#" and "#?" are the
		// longer pause inserted at sentence-final punctuation, distinguished
		// only so the prosody planner knows which sentence-level pitch
		// contour (falling vs. rising) to apply (§4.2 step 5, §4.3).
		{ASCII: "_", IPA: "", Class: Silence, Voiced: false, DefaultDurationMs: 60},
		{ASCII: "#", IPA: "", Class: Silence, Voiced: false, DefaultDurationMs: 250},
		{ASCII: "#?", IPA: "", Class: Silence, Voiced: false, DefaultDurationMs: 250},
	}
}
