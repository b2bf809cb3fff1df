// Package ssml is a non-validating recognizer for a restricted SSML
// dialect: speak, break, prosody, emphasis, p, s, say-as, and sub. It
// produces a flat sequence of [Element]s — text runs carrying the
// multipliers active at that point in the markup, and explicit silences —
// for [pkg/voice] to turn into phonemes and events. Unknown elements pass
// their text through unchanged; unknown attributes are ignored.
package ssml

import "fmt"

// ParseError reports a malformed-markup failure at a byte offset into the
// input, per the engine's error taxonomy.
type ParseError struct {
	ByteOffset int64
	Message    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ssml: %s (byte %d)", e.Message, e.ByteOffset)
}

// Kind discriminates an [Element].
type Kind int

const (
	KindText Kind = iota
	KindBreak
)

// Element is one piece of parsed markup: either a run of text with the
// rate/pitch/volume/duration/amplitude multipliers active at that point
// (from enclosing prosody/emphasis elements), or an explicit silence.
type Element struct {
	Kind Kind

	// Text fields, valid when Kind == KindText.
	Text          string
	RateMult      float64
	PitchMult     float64
	VolumeMult    float64
	DurationMult  float64
	AmplitudeMult float64

	// BreakMs is valid when Kind == KindBreak: the silence length in
	// milliseconds, already capped at 10 000.
	BreakMs int
}
