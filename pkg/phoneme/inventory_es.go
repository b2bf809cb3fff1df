package phoneme

import "sync"

var (
	spanishOnce sync.Once
	spanishInv  *Inventory
)

// Spanish returns the immutable Spanish phoneme inventory: 5 vowels plus
// the documented consonant set, including "J" (ɲ), "L" (ʎ), "rr" (trill)
// and "r" (tap).
func Spanish() *Inventory {
	spanishOnce.Do(func() {
		spanishInv = newInventory("spanish", spanishPhonemes())
	})
	return spanishInv
}

func spanishPhonemes() []Phoneme {
	return []Phoneme{
		// --- Vowels (5) ---
		{ASCII: "a", IPA: "a", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 700, F2: 1200, F3: 2600}.WithDefaultBandwidths()},
		{ASCII: "e", IPA: "e", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 450, F2: 1800, F3: 2600}.WithDefaultBandwidths()},
		{ASCII: "i", IPA: "i", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 280, F2: 2250, F3: 3000}.WithDefaultBandwidths()},
		{ASCII: "o", IPA: "o", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 450, F2: 800, F3: 2600}.WithDefaultBandwidths()},
		{ASCII: "u", IPA: "u", Class: Vowel, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 300, F2: 800, F3: 2250}.WithDefaultBandwidths()},

		// --- Stops ---
		{ASCII: "p", IPA: "p", Class: Stop, Voiced: false, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 700},
		{ASCII: "b", IPA: "b", Class: Stop, Voiced: true, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 700},
		{ASCII: "t", IPA: "t", Class: Stop, Voiced: false, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 3700},
		{ASCII: "d", IPA: "d", Class: Stop, Voiced: true, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 3700},
		{ASCII: "k", IPA: "k", Class: Stop, Voiced: false, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 1800},
		{ASCII: "g", IPA: "g", Class: Stop, Voiced: true, DefaultDurationMs: 80, ClosureMs: 50, ReleaseMs: 30, BurstHz: 1800},

		// --- Fricatives ---
		{ASCII: "f", IPA: "f", Class: Fricative, Voiced: false, DefaultDurationMs: 90, HighPassHz: 4500},
		{ASCII: "s", IPA: "s", Class: Fricative, Voiced: false, DefaultDurationMs: 90, HighPassHz: 5000, ResonanceHz: 6500},
		{ASCII: "x", IPA: "x", Class: Fricative, Voiced: false, DefaultDurationMs: 90, HighPassHz: 1500},

		// --- Affricate ---
		{ASCII: "tS", IPA: "tʃ", Class: Affricate, Voiced: false, DefaultDurationMs: 120,
			ClosureMs: 50, ReleaseMs: 30, BurstHz: 2500, FricativeTailMs: 60, HighPassHz: 2500, ResonanceHz: 3000},

		// --- Nasals ---
		{ASCII: "m", IPA: "m", Class: Nasal, Voiced: true, DefaultDurationMs: 70,
			Formants: Formants{F1: 480, F2: 1270, F3: 2130}.WithDefaultBandwidths()},
		{ASCII: "n", IPA: "n", Class: Nasal, Voiced: true, DefaultDurationMs: 70,
			Formants: Formants{F1: 480, F2: 1740, F3: 2580}.WithDefaultBandwidths()},
		{ASCII: "J", IPA: "ɲ", Class: Nasal, Voiced: true, DefaultDurationMs: 70,
			Formants: Formants{F1: 480, F2: 2100, F3: 2700}.WithDefaultBandwidths()},

		// --- Liquids ---
		{ASCII: "l", IPA: "l", Class: Liquid, Voiced: true, DefaultDurationMs: 70,
			Formants: Formants{F1: 360, F2: 1290, F3: 2700}.WithDefaultBandwidths()},
		{ASCII: "L", IPA: "ʎ", Class: Liquid, Voiced: true, DefaultDurationMs: 70,
			Formants: Formants{F1: 380, F2: 1900, F3: 2700}.WithDefaultBandwidths()},
		{ASCII: "r", IPA: "ɾ", Class: Liquid, Voiced: true, DefaultDurationMs: 40,
			Formants: Formants{F1: 420, F2: 1300, F3: 1900}.WithDefaultBandwidths()},
		{ASCII: "rr", IPA: "r", Class: Liquid, Voiced: true, DefaultDurationMs: 90,
			Formants: Formants{F1: 420, F2: 1300, F3: 1900}.WithDefaultBandwidths()},

		// --- Glides ---
		{ASCII: "w", IPA: "w", Class: Glide, Voiced: true, DefaultDurationMs: 50,
			Formants: Formants{F1: 300, F2: 700, F3: 2300}.WithDefaultBandwidths()},
		{ASCII: "j", IPA: "j", Class: Glide, Voiced: true, DefaultDurationMs: 50,
			Formants: Formants{F1: 280, F2: 2250, F3: 3000}.WithDefaultBandwidths()},

		// --- Silence ---
		{ASCII: "_", IPA: "", Class: Silence, Voiced: false, DefaultDurationMs: 60},
		{ASCII: "#", IPA: "", Class: Silence, Voiced: false, DefaultDurationMs: 250},
		{ASCII: "#?", IPA: "", Class: Silence, Voiced: false, DefaultDurationMs: 250},
	}
}
