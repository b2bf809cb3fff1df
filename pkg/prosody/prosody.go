// Package prosody turns a [g2p.Token] sequence into a timed, pitched,
// amplitude-scaled [Event] stream ready for the formant synthesizer. It
// depends on [pkg/g2p]'s output type and [pkg/phoneme]'s inventories, but
// deliberately not on [pkg/voice]: [Config] is prosody's own narrow view of
// the handful of voice settings it needs, kept dependency-free so the
// module graph (inventory → G2P → prosody → synthesizer) has no cycle.
package prosody

import (
	"fmt"

	"github.com/klattspeak/klattspeak/pkg/g2p"
	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/phoneme"
)

const sampleRate = 22050

// Config carries the voice settings the planner needs: words-per-minute
// rate, a pitch offset in [-100, 100], a volume percentage, and the
// selected variant's base pitch in Hz. Callers (typically [pkg/voice])
// are responsible for clamping these to valid ranges before calling [Plan].
type Config struct {
	RateWPM     float64
	PitchOffset float64
	Volume      float64
	BasePitchHz float64
}

// Event is the unit handed to the synthesizer: a phoneme reference, its
// duration in samples at 22050 Hz, a linear pitch ramp across the event,
// an amplitude scale, and its stress level.
type Event struct {
	Phoneme         string
	Stress          g2p.Stress
	DurationSamples int
	F0StartHz       float64
	F0EndHz         float64
	Amplitude       float64
}

// Plan converts tokens into a timed Event stream for lang under cfg.
// Duration scales each phoneme's default duration by 175/RateWPM, with an
// additional ×1.2 for stressed phonemes (silences are scaled by rate only).
// Pitch follows a sentence-level contour: texts that end in a question
// mark rise from 0.95·base to 1.15·base across their last 30%; everything
// else falls from 1.05·base to 0.90·base across the whole utterance.
// Stressed syllables add a further +8%. Amplitude is Volume/100, attenuated
// ×0.6 for voiceless phonemes. Sample counts are rounded with a carried
// remainder so the cumulative duration across all events is exact.
func Plan(tokens []g2p.Token, lang language.Language, cfg Config) ([]Event, error) {
	if len(tokens) == 0 {
		return []Event{}, nil
	}

	inv, err := inventoryFor(lang)
	if err != nil {
		return nil, err
	}

	rateScale := 175.0 / effectiveRate(cfg.RateWPM)
	base := cfg.BasePitchHz * (1 + cfg.PitchOffset/100*0.5)
	question := isQuestion(tokens)

	type raw struct {
		p          phoneme.Phoneme
		tok        g2p.Token
		durationMs float64
		isSilence  bool
	}
	raws := make([]raw, len(tokens))
	var speechTotalMs float64
	for i, tok := range tokens {
		p, ok := inv.Get(tok.Phoneme)
		if !ok {
			return nil, fmt.Errorf("prosody: unknown phoneme key %q", tok.Phoneme)
		}
		durationMs := float64(p.DefaultDurationMs) * rateScale
		if tok.Stress != g2p.NoStress {
			durationMs *= 1.2
		}
		isSilence := p.Class == phoneme.Silence
		raws[i] = raw{p: p, tok: tok, durationMs: durationMs, isSilence: isSilence}
		if !isSilence {
			speechTotalMs += durationMs
		}
	}

	// Position along the utterance for the pitch contour is measured over
	// spoken sound only — trailing pauses do not count toward "the last
	// 30%", or a short sentence's rise would land entirely inside its own
	// final silence and never reach an audible phoneme.
	events := make([]Event, len(tokens))
	var cumulativeSpeechMs float64
	var cumulativeExactSamples float64
	var roundedSoFar int

	for i, r := range raws {
		posStart := 0.0
		if speechTotalMs > 0 {
			posStart = cumulativeSpeechMs / speechTotalMs
		}
		posEnd := posStart
		if !r.isSilence {
			cumulativeSpeechMs += r.durationMs
			if speechTotalMs > 0 {
				posEnd = cumulativeSpeechMs / speechTotalMs
			} else {
				posEnd = 1.0
			}
		}

		cumulativeExactSamples += r.durationMs / 1000 * sampleRate
		roundedCumulative := roundToInt(cumulativeExactSamples)
		durationSamples := roundedCumulative - roundedSoFar
		roundedSoFar = roundedCumulative

		ev := Event{Phoneme: r.tok.Phoneme, Stress: r.tok.Stress, DurationSamples: durationSamples}
		if r.isSilence {
			events[i] = ev
			continue
		}

		f0Start := base * contourFactor(posStart, question)
		f0End := base * contourFactor(posEnd, question)
		if r.tok.Stress != g2p.NoStress {
			f0Start *= 1.08
			f0End *= 1.08
		}
		ev.F0StartHz = f0Start
		ev.F0EndHz = f0End

		amplitude := cfg.Volume / 100
		if !r.p.Voiced {
			amplitude *= 0.6
		}
		ev.Amplitude = amplitude

		events[i] = ev
	}

	return events, nil
}

// TotalSamples returns the sum of every event's duration, matching the
// "total planned samples" a streaming driver computes once after planning
// and before audio generation.
func TotalSamples(events []Event) int {
	total := 0
	for _, e := range events {
		total += e.DurationSamples
	}
	return total
}

func effectiveRate(rate float64) float64 {
	if rate <= 0 {
		return 175
	}
	return rate
}

// contourFactor returns the pitch multiplier at normalized utterance
// position pos ∈ [0,1] for a declarative (falling) or question (rising)
// contour.
func contourFactor(pos float64, question bool) float64 {
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	if question {
		if pos < 0.7 {
			return 0.95
		}
		return 0.95 + (pos-0.7)/0.3*(1.15-0.95)
	}
	return 1.05 - 0.15*pos
}

// isQuestion reports whether the utterance's final sentence-break token is
// a question mark. A text with no terminal punctuation is declarative.
func isQuestion(tokens []g2p.Token) bool {
	q := false
	for _, t := range tokens {
		switch t.Phoneme {
		case "#?":
			q = true
		case "#":
			q = false
		}
	}
	return q
}

func roundToInt(x float64) int {
	if x < 0 {
		return int(x - 0.5)
	}
	return int(x + 0.5)
}

func inventoryFor(lang language.Language) (*phoneme.Inventory, error) {
	switch lang {
	case language.English:
		return phoneme.English(), nil
	case language.Spanish:
		return phoneme.Spanish(), nil
	default:
		return nil, fmt.Errorf("%w: %v", language.ErrUnsupportedLanguage, lang)
	}
}
