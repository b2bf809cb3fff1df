// Package phoneme defines the acoustic parameter database that backs the
// synthesis pipeline: phoneme records keyed by a compact ASCII alphabet,
// grouped into per-language immutable inventories.
//
// The package has no dependency on any other package in this module — the
// inventories are static literal tables, constructed once and shared
// read-only by every synthesizer instance.
package phoneme

// Class discriminates the acoustic behaviour of a phoneme. Go has no sum
// types, so Phoneme is a flat struct with a Class discriminant; fields that
// do not apply to a given class are left at their zero value.
type Class int

const (
	Vowel Class = iota
	Diphthong
	Stop
	Fricative
	Affricate
	Nasal
	Liquid
	Glide
	Silence
)

// String returns the lower-case class name used in logs and error messages.
func (c Class) String() string {
	switch c {
	case Vowel:
		return "vowel"
	case Diphthong:
		return "diphthong"
	case Stop:
		return "stop"
	case Fricative:
		return "fricative"
	case Affricate:
		return "affricate"
	case Nasal:
		return "nasal"
	case Liquid:
		return "liquid"
	case Glide:
		return "glide"
	case Silence:
		return "silence"
	default:
		return "unknown"
	}
}

// HasFormants reports whether phonemes of this class carry resonator targets.
func (c Class) HasFormants() bool {
	switch c {
	case Vowel, Diphthong, Nasal, Liquid, Glide:
		return true
	default:
		return false
	}
}

// Formants is a (F1, F2, F3) resonator target in Hz with matching bandwidths.
// A zero-valued Bn is resolved to the class default (60/90/150 Hz) by
// [Formants.WithDefaultBandwidths].
type Formants struct {
	F1, F2, F3 float64
	B1, B2, B3 float64
}

// DefaultBandwidths are applied when a phoneme does not specify its own,
// per §4.1 of the synthesis specification.
var DefaultBandwidths = Formants{B1: 60, B2: 90, B3: 150}

// WithDefaultBandwidths returns a copy of f with any zero bandwidth replaced
// by the corresponding default.
func (f Formants) WithDefaultBandwidths() Formants {
	if f.B1 == 0 {
		f.B1 = DefaultBandwidths.B1
	}
	if f.B2 == 0 {
		f.B2 = DefaultBandwidths.B2
	}
	if f.B3 == 0 {
		f.B3 = DefaultBandwidths.B3
	}
	return f
}

// Phoneme is the atomic acoustic unit produced by the G2P stage and consumed
// by the formant synthesizer. The header fields (ASCII, IPA, Voiced,
// DefaultDurationMs, Class) are shared by every class; the remaining fields
// are populated only for the classes that use them.
type Phoneme struct {
	// ASCII is the short (1-3 character) internal key, unique within a
	// language's inventory, e.g. "i", "&", "tS".
	ASCII string

	// IPA is the International Phonetic Alphabet spelling used for display
	// and for [pkg/voice] TextToPhonemes IPA rendering.
	IPA string

	Class  Class
	Voiced bool

	// DefaultDurationMs is the un-scaled duration used by the prosody
	// planner before rate/stress scaling.
	DefaultDurationMs int

	// Formants holds the (F1,F2,F3) resonator target. Populated only when
	// Class.HasFormants() is true. For Diphthong, this is the onset target.
	Formants Formants

	// Target is the second formant triple for diphthongs — the glide
	// interpolates Formants -> *Target across the segment. Nil for every
	// other class.
	Target *Formants

	// ClosureMs and ReleaseMs describe a Stop (or the stop portion of an
	// Affricate): a silent closure followed by a burst+aspiration release.
	ClosureMs int
	ReleaseMs int

	// BurstHz is the approximate spectral peak of the stop's release burst,
	// used to shape the 5ms noise spike that opens the release portion.
	BurstHz float64

	// FricativeTailMs is the length of the frication noise appended after
	// an Affricate's release burst. Unused outside Class == Affricate.
	FricativeTailMs int

	// HighPassHz and ResonanceHz shape the noise spectrum of a Fricative (or
	// an Affricate's tail / a Stop's aspiration). ResonanceHz of zero means
	// no extra resonant peak is applied on top of the high-pass noise.
	HighPassHz  float64
	ResonanceHz float64
}
