// Package config provides the YAML-driven runtime configuration for the
// engine's adapter binaries (cmd/speak, cmd/phonemes, cmd/synthmcp,
// cmd/synthws, cmd/discordspeak). The core [pkg/voice] package never reads
// a file or an environment variable: it takes its [voice.Config] as a plain
// struct built from [voice.Option] values, and this package is the only
// place those values are allowed to come from a file on disk.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/klattspeak/klattspeak/internal/mcp"
	"github.com/klattspeak/klattspeak/internal/resilience"
	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/voice"
)

// Config is the root configuration structure for the adapter binaries.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Voice   VoiceDefaults  `yaml:"voice"`
	Presets []PresetConfig `yaml:"presets"`
	Lexicon LexiconConfig  `yaml:"lexicon"`
	Observe ObserveConfig  `yaml:"observe"`
	MCP     MCPConfig      `yaml:"mcp"`
	Discord DiscordConfig  `yaml:"discord"`
}

// ServerConfig holds network and logging settings shared by every adapter
// binary that listens on a socket (synthmcp in streamable-http mode, synthws).
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls slog verbosity. Valid values: "debug", "info", "warn", "error".
	LogLevel LogLevel `yaml:"log_level"`
}

// LogLevel is a validated string enum mirroring [slog.Level]'s four named
// levels, kept as its own type (rather than a bare string) so the loader
// and the diff/watch machinery can reject typos at config-load time.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is one of the four recognised levels, or empty
// (meaning "use the default").
func (l LogLevel) IsValid() bool {
	switch l {
	case "", LogDebug, LogInfo, LogWarn, LogError:
		return true
	default:
		return false
	}
}

// Level converts l to an [slog.Level], defaulting to [slog.LevelInfo] for
// the empty value.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// VoiceDefaults holds the baseline [voice.Option] values an adapter binary
// applies when it builds its [*voice.Synthesizer], before any per-request or
// per-preset overrides. Every field is optional; a zero field means "leave
// the engine's own default in place" rather than "set it to zero".
type VoiceDefaults struct {
	// Language is an ISO-639-1-ish code resolved with [language.FromCode]
	// (e.g. "en", "es").
	Language string `yaml:"language"`

	// Variant names one of the engine's voice variants, case-insensitively
	// (e.g. "female1"). See [voice.ParseVariant].
	Variant string `yaml:"variant"`

	RateWPM      float64 `yaml:"rate_wpm"`
	PitchOffset  float64 `yaml:"pitch_offset"`
	Volume       float64 `yaml:"volume"`
	ChunkSamples int     `yaml:"chunk_samples"`
}

// Options translates v into the [voice.Option] values it describes,
// rejecting unresolvable language codes or variant names. Zero-valued
// numeric fields are omitted so the engine's own defaults apply.
func (v VoiceDefaults) Options() ([]voice.Option, error) {
	var opts []voice.Option

	if v.Language != "" {
		lang, ok := language.FromCode(v.Language)
		if !ok {
			return nil, fmt.Errorf("voice.language %q is not a supported language code", v.Language)
		}
		opts = append(opts, voice.WithLanguage(lang))
	}
	if v.Variant != "" {
		variant, ok := voice.ParseVariant(v.Variant)
		if !ok {
			return nil, fmt.Errorf("voice.variant %q is not a recognised voice variant", v.Variant)
		}
		opts = append(opts, voice.WithVariant(variant))
	}
	if v.RateWPM != 0 {
		opts = append(opts, voice.WithRate(v.RateWPM))
	}
	if v.PitchOffset != 0 {
		opts = append(opts, voice.WithPitch(v.PitchOffset))
	}
	if v.Volume != 0 {
		opts = append(opts, voice.WithVolume(v.Volume))
	}
	if v.ChunkSamples != 0 {
		opts = append(opts, voice.WithChunkSamples(v.ChunkSamples))
	}
	return opts, nil
}

// PresetConfig names a reusable voice configuration, e.g. a Discord bot
// mapping player-facing character names to a consistent voice without the
// caller needing to know the underlying rate/pitch/variant values.
type PresetConfig struct {
	Name          string `yaml:"name"`
	VoiceDefaults `yaml:",inline"`
}

// LexiconConfig configures the optional Postgres-backed pronunciation
// override store consulted ahead of the rule engine (see
// pkg/g2p/lexicon/pgstore). Leaving PostgresDSN empty disables it entirely;
// the engine then uses its rule tables alone.
// FallbackThreshold is loaded but not applied: no adapter binary builds the
// phonetic fallback of pkg/g2p/lexicon/phonetic.
type LexiconConfig struct {
	PostgresDSN       string               `yaml:"postgres_dsn"`
	FallbackThreshold float64              `yaml:"fallback_threshold"`
	CircuitBreaker    CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// CircuitBreakerConfig mirrors [resilience.CircuitBreakerConfig] in
// YAML-friendly units (whole seconds rather than [time.Duration] strings,
// matching the plain-field style the rest of this package uses).
type CircuitBreakerConfig struct {
	MaxFailures         int `yaml:"max_failures"`
	ResetTimeoutSeconds int `yaml:"reset_timeout_seconds"`
	HalfOpenMax         int `yaml:"half_open_max"`
}

// ResilienceConfig converts c to a [resilience.CircuitBreakerConfig] tagged
// with name for log messages. Zero fields are left zero; [resilience.NewCircuitBreaker]
// fills them with its own defaults.
func (c CircuitBreakerConfig) ResilienceConfig(name string) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Name:         name,
		MaxFailures:  c.MaxFailures,
		ResetTimeout: time.Duration(c.ResetTimeoutSeconds) * time.Second,
		HalfOpenMax:  c.HalfOpenMax,
	}
}

// ObserveConfig holds OpenTelemetry settings for the adapter binaries. The
// fields are loaded from YAML, but no adapter binary reads them and no OTLP
// exporter is started, whatever OTLPEndpoint holds.
type ObserveConfig struct {
	ServiceName  string `yaml:"service_name"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	Insecure     bool   `yaml:"insecure"`
}

// MCPConfig configures the transport cmd/synthmcp exposes its
// synthesize_speech tool over. It reuses [mcp.Transport] from the MCP
// client-hosting package rather than declaring a parallel enum, since the
// set of valid transports is identical whether this process is the client
// or the server.
type MCPConfig struct {
	Transport  mcp.Transport `yaml:"transport"`
	ListenAddr string        `yaml:"listen_addr"`
}

// DiscordConfig configures cmd/discordspeak's bot session.
type DiscordConfig struct {
	Token     string `yaml:"token"`
	GuildID   string `yaml:"guild_id"`
	ChannelID string `yaml:"channel_id"`
}
