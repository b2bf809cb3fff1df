package voice

// Audio is a fully-rendered synthesis result: mono 16-bit PCM at 22050 Hz.
type Audio struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// Chunk is one piece of a streamed synthesis result. Progress is the
// fraction of total planned samples emitted so far (including this chunk),
// monotonically non-decreasing across a stream and reaching exactly 1.0 on
// the final chunk.
type Chunk struct {
	Samples    []int16
	Progress   float64
	SampleRate int
	Channels   int
}

// Format selects how [Synthesizer.TextToPhonemes] renders its result.
type Format int

const (
	ASCII Format = iota
	IPA
)

// PhonemeSymbol is one element of a [Phonemes] result: a phoneme spelled in
// the requested [Format], together with its stress marking.
type PhonemeSymbol struct {
	Symbol string
	Stress string
}

// Phonemes is the result of [Synthesizer.TextToPhonemes]: the phoneme
// sequence G2P produced for the input text, with no prosody or synthesis
// applied.
type Phonemes struct {
	Symbols []PhonemeSymbol
}
