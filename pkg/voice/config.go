// Package voice is the public entry point of the synthesis engine: it wires
// [pkg/g2p], [pkg/prosody], and [pkg/synth] behind a small stateless
// [Synthesizer] type, and owns the only voice-variant table in the module.
package voice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/prosody"
)

// ErrInvalidConfig is returned by adapters that choose to reject an
// out-of-range configuration value instead of clamping it. The core
// [New]/[Synthesizer] never returns it — it clamps every field silently, as
// the engine's contract allows.
var ErrInvalidConfig = errors.New("voice: invalid config")

// Variant selects a voice's base pitch. The zero value is [Default].
type Variant int

const (
	Default Variant = iota
	Male1
	Male2
	Male3
	Female1
	Female2
	Female3
)

// basePitchHz gives each variant's base F0 in Hz, per the engine's voice
// table.
var basePitchHz = map[Variant]float64{
	Default: 130,
	Male1:   100,
	Male2:   120,
	Male3:   140,
	Female1: 180,
	Female2: 200,
	Female3: 220,
}

// String returns the variant's identifier, e.g. "Female1".
func (v Variant) String() string {
	switch v {
	case Default:
		return "Default"
	case Male1:
		return "Male1"
	case Male2:
		return "Male2"
	case Male3:
		return "Male3"
	case Female1:
		return "Female1"
	case Female2:
		return "Female2"
	case Female3:
		return "Female3"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant resolves a voice variant by name, case-insensitively
// (e.g. "female1", "Female1", "FEMALE1"). It is the inverse of
// [Variant.String], intended for config files and CLI flags.
func ParseVariant(s string) (Variant, bool) {
	switch strings.ToLower(s) {
	case "default":
		return Default, true
	case "male1":
		return Male1, true
	case "male2":
		return Male2, true
	case "male3":
		return Male3, true
	case "female1":
		return Female1, true
	case "female2":
		return Female2, true
	case "female3":
		return Female3, true
	default:
		return Default, false
	}
}

// Config holds everything a [Synthesizer] needs for one synthesis call:
// language, voice variant, speaking rate, pitch offset, and volume. The
// zero value is not valid; build one with [New] or [DefaultConfig] and
// [Option]s.
type Config struct {
	Language    language.Language
	Variant     Variant
	RateWPM     float64
	PitchOffset float64
	Volume      float64

	// ChunkSamples is the bounded chunk size [Synthesizer.SynthesizeStream]
	// emits, default 1024, floored at 64.
	ChunkSamples int

	seed1, seed2 uint64
}

// DefaultConfig returns the engine's documented defaults: English, the
// Default variant, 175 words per minute, no pitch offset, full volume.
func DefaultConfig() Config {
	return Config{
		Language:     language.English,
		Variant:      Default,
		RateWPM:      175,
		PitchOffset:  0,
		Volume:       100,
		ChunkSamples: defaultChunkSamples,
		seed1:        defaultSeed1,
		seed2:        defaultSeed2,
	}
}

// Option configures a [Config] passed to [New].
type Option func(*Config)

// WithLanguage sets the synthesis language.
func WithLanguage(lang language.Language) Option {
	return func(c *Config) { c.Language = lang }
}

// WithVariant selects the voice variant, which determines base pitch.
func WithVariant(v Variant) Option {
	return func(c *Config) { c.Variant = v }
}

// WithRate sets the speaking rate in words per minute, clamped to [50, 500].
func WithRate(wpm float64) Option {
	return func(c *Config) { c.RateWPM = wpm }
}

// WithPitch sets the pitch offset, clamped to [-100, 100].
func WithPitch(offset float64) Option {
	return func(c *Config) { c.PitchOffset = offset }
}

// WithVolume sets the volume percentage, clamped to [0, 200].
func WithVolume(volume float64) Option {
	return func(c *Config) { c.Volume = volume }
}

// WithSeed overrides the default deterministic noise seed. Two synthesizers
// built with the same seed produce bit-identical output for the same input.
func WithSeed(seed1, seed2 uint64) Option {
	return func(c *Config) { c.seed1, c.seed2 = seed1, seed2 }
}

// WithChunkSamples sets the chunk size [Synthesizer.SynthesizeStream]
// emits, floored at 64 samples.
func WithChunkSamples(n int) Option {
	return func(c *Config) { c.ChunkSamples = n }
}

const defaultChunkSamples = 1024

// clamp returns a copy of c with every numeric field folded into its valid
// range, the core engine's silent-clamp policy (§7 of the design notes).
func (c Config) clamp() Config {
	c.RateWPM = clampFloat(c.RateWPM, 50, 500)
	c.PitchOffset = clampFloat(c.PitchOffset, -100, 100)
	c.Volume = clampFloat(c.Volume, 0, 200)
	if _, ok := basePitchHz[c.Variant]; !ok {
		c.Variant = Default
	}
	if c.seed1 == 0 && c.seed2 == 0 {
		c.seed1, c.seed2 = defaultSeed1, defaultSeed2
	}
	switch {
	case c.ChunkSamples == 0:
		c.ChunkSamples = defaultChunkSamples
	case c.ChunkSamples < 64:
		c.ChunkSamples = 64
	}
	return c
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// prosodyConfig narrows Config to the fields [pkg/prosody] actually needs,
// converting the selected Variant to its base pitch. Kept on this side of
// the boundary so prosody never imports voice (see pkg/prosody's package
// doc).
func (c Config) prosodyConfig() prosody.Config {
	return prosody.Config{
		RateWPM:     c.RateWPM,
		PitchOffset: c.PitchOffset,
		Volume:      c.Volume,
		BasePitchHz: basePitchHz[c.Variant],
	}
}

const (
	defaultSeed1 uint64 = 0x4b4c415454535031
	defaultSeed2 uint64 = 0x766f696365656e67
)
