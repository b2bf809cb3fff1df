package voice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/klattspeak/klattspeak/internal/observe"
	"github.com/klattspeak/klattspeak/pkg/g2p"
	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/phoneme"
	"github.com/klattspeak/klattspeak/pkg/prosody"
	"github.com/klattspeak/klattspeak/pkg/ssml"
	"github.com/klattspeak/klattspeak/pkg/synth"
)

// Synthesizer is the engine's public entry point. It is stateless across
// calls — Synthesize/SynthesizeSSML/SynthesizeStream share no mutable state
// besides the Config the Set* methods adjust — and safe to use from one
// caller at a time; independent Synthesizer instances may run in parallel
// freely, since every inventory they reference is immutable and shared by
// reference.
type Synthesizer struct {
	mu  sync.RWMutex
	cfg Config

	// Lexicon, when set, is consulted before the rule-based G2P engine
	// (see [pkg/g2p/lexicon]). Nil means rules only.
	Lexicon g2p.Lookup
}

// New builds a Synthesizer from functional options, starting from
// [DefaultConfig]. It never fails today — every field is clamped into its
// valid range rather than rejected — but returns an error to keep the door
// open for future validation that cannot be resolved by clamping, matching
// the signature callers of the core engine depend on.
func New(opts ...Option) (*Synthesizer, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg = cfg.clamp()
	return &Synthesizer{cfg: cfg}, nil
}

func (s *Synthesizer) config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetLanguage changes the synthesis language for subsequent calls. It has
// no effect on a [Chunk] channel already returned by SynthesizeStream,
// which snapshots its Config at creation time.
func (s *Synthesizer) SetLanguage(lang language.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Language = lang
	s.cfg = s.cfg.clamp()
}

// SetRate changes the speaking rate in words per minute.
func (s *Synthesizer) SetRate(wpm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.RateWPM = wpm
	s.cfg = s.cfg.clamp()
}

// SetPitch changes the pitch offset.
func (s *Synthesizer) SetPitch(offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.PitchOffset = offset
	s.cfg = s.cfg.clamp()
}

// SetVolume changes the volume percentage.
func (s *Synthesizer) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Volume = volume
	s.cfg = s.cfg.clamp()
}

// Synthesize renders text to completion and returns the full audio buffer.
// Empty text returns an empty, valid [Audio] and no error.
func (s *Synthesizer) Synthesize(text string) (Audio, error) {
	ctx, span := observe.StartSpan(context.Background(), "voice.Synthesize")
	defer span.End()
	metrics := observe.DefaultMetrics()
	defer recordDuration(ctx, metrics.SynthesisDuration, time.Now())

	cfg := s.config()
	events, err := s.plan(ctx, text, cfg)
	if err != nil {
		metrics.RecordSynthesisError(ctx)
		return Audio{}, err
	}
	audio, err := s.render(ctx, events, cfg)
	if err != nil {
		metrics.RecordSynthesisError(ctx)
	}
	return audio, err
}

// SynthesizeSSML parses markup, applies its per-segment multipliers, and
// renders the result. A parse failure returns the underlying
// [*ssml.ParseError] unwrapped so callers can type-assert it directly.
func (s *Synthesizer) SynthesizeSSML(markup string) (Audio, error) {
	ctx, span := observe.StartSpan(context.Background(), "voice.SynthesizeSSML")
	defer span.End()
	metrics := observe.DefaultMetrics()
	defer recordDuration(ctx, metrics.SynthesisDuration, time.Now())

	cfg := s.config()
	elements, err := ssml.Parse(markup)
	if err != nil {
		metrics.RecordSynthesisError(ctx)
		return Audio{}, err
	}
	events, err := s.planSSML(ctx, elements, cfg)
	if err != nil {
		metrics.RecordSynthesisError(ctx)
		return Audio{}, err
	}
	audio, err := s.render(ctx, events, cfg)
	if err != nil {
		metrics.RecordSynthesisError(ctx)
	}
	return audio, err
}

// TextToPhonemes runs G2P only and renders the result in the requested
// [Format], with no prosody or synthesis applied.
func (s *Synthesizer) TextToPhonemes(text string, format Format) (Phonemes, error) {
	ctx, span := observe.StartSpan(context.Background(), "voice.TextToPhonemes")
	defer span.End()

	cfg := s.config()
	tokens, err := s.convert(ctx, text, cfg.Language)
	if err != nil {
		return Phonemes{}, err
	}
	inv, err := inventoryFor(cfg.Language)
	if err != nil {
		return Phonemes{}, err
	}

	symbols := make([]PhonemeSymbol, 0, len(tokens))
	for _, tok := range tokens {
		p, ok := inv.Get(tok.Phoneme)
		if !ok {
			return Phonemes{}, &SynthesisError{Cause: fmt.Errorf("unknown phoneme key %q", tok.Phoneme)}
		}
		symbol := p.ASCII
		if format == IPA {
			symbol = p.IPA
		}
		symbols = append(symbols, PhonemeSymbol{Symbol: symbol, Stress: tok.Stress.String()})
	}
	return Phonemes{Symbols: symbols}, nil
}

func (s *Synthesizer) convert(ctx context.Context, text string, lang language.Language) ([]g2p.Token, error) {
	ctx, span := observe.StartSpan(ctx, "voice.g2p")
	defer span.End()
	defer recordDuration(ctx, observe.DefaultMetrics().G2PDuration, time.Now())

	if s.Lexicon != nil {
		conv := &g2p.Converter{Lexicon: s.Lexicon}
		return conv.ToPhonemes(text, lang)
	}
	return g2p.ToPhonemes(text, lang)
}

func (s *Synthesizer) plan(ctx context.Context, text string, cfg Config) ([]prosody.Event, error) {
	slog.Debug("voice: synthesize", "chars", len(text), "language", cfg.Language, "variant", cfg.Variant)
	tokens, err := s.convert(ctx, text, cfg.Language)
	if err != nil {
		return nil, err
	}

	ctx, span := observe.StartSpan(ctx, "voice.prosody")
	defer span.End()
	defer recordDuration(ctx, observe.DefaultMetrics().ProsodyDuration, time.Now())

	return prosody.Plan(tokens, cfg.Language, cfg.prosodyConfig())
}

// planSSML converts each text [ssml.Element] into events under a per-
// segment [prosody.Config] derived from the base config and that segment's
// rate/pitch/volume multipliers, then scales duration and amplitude by the
// segment's emphasis multipliers and splices in explicit break silences.
func (s *Synthesizer) planSSML(ctx context.Context, elements []ssml.Element, cfg Config) ([]prosody.Event, error) {
	const silenceKey = "#"

	ctx, span := observe.StartSpan(ctx, "voice.planSSML")
	defer span.End()
	defer recordDuration(ctx, observe.DefaultMetrics().ProsodyDuration, time.Now())

	var events []prosody.Event
	for _, el := range elements {
		switch el.Kind {
		case ssml.KindBreak:
			events = append(events, breakEvent(silenceKey, el.BreakMs))
		case ssml.KindText:
			segCfg := cfg
			segCfg.RateWPM = clampFloat(cfg.RateWPM*el.RateMult, 50, 500)
			segCfg.PitchOffset = clampFloat(cfg.PitchOffset+(el.PitchMult-1)*100, -100, 100)
			segCfg.Volume = clampFloat(cfg.Volume*el.VolumeMult, 0, 200)

			tokens, err := s.convert(ctx, el.Text, segCfg.Language)
			if err != nil {
				return nil, err
			}
			segEvents, err := prosody.Plan(tokens, segCfg.Language, segCfg.prosodyConfig())
			if err != nil {
				return nil, err
			}
			for i := range segEvents {
				segEvents[i].DurationSamples = int(float64(segEvents[i].DurationSamples) * el.DurationMult)
				segEvents[i].Amplitude *= el.AmplitudeMult
			}
			events = append(events, segEvents...)
		}
	}
	return events, nil
}

func breakEvent(key string, ms int) prosody.Event {
	samples := ms * synth.SampleRate / 1000
	return prosody.Event{Phoneme: key, DurationSamples: samples}
}

func (s *Synthesizer) render(ctx context.Context, events []prosody.Event, cfg Config) (Audio, error) {
	_, span := observe.StartSpan(ctx, "voice.render")
	defer span.End()
	metrics := observe.DefaultMetrics()
	defer recordDuration(ctx, metrics.RenderDuration, time.Now())

	if inv, err := inventoryFor(cfg.Language); err == nil {
		for _, ev := range events {
			if p, ok := inv.Get(ev.Phoneme); ok {
				metrics.RecordPhonemeEvent(ctx, p.Class.String())
			}
		}
	}

	samples, err := synth.Render(events, cfg.Language, int64(cfg.seed1), int64(cfg.seed2), variantGain(cfg.Variant))
	if err != nil {
		return Audio{}, &SynthesisError{Cause: err}
	}
	return Audio{Samples: samples, SampleRate: synth.SampleRate, Channels: 1}, nil
}

// recordDuration records the elapsed time since start on h, the shared
// pattern every pipeline-stage histogram in this file uses.
func recordDuration(ctx context.Context, h metric.Float64Histogram, start time.Time) {
	h.Record(ctx, time.Since(start).Seconds())
}

// variantGain gives each voice variant a small output-level difference;
// every variant otherwise shares the same synthesis path.
func variantGain(v Variant) float64 {
	switch v {
	case Male1, Male2, Male3:
		return 1.05
	default:
		return 1.0
	}
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
