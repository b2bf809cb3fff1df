package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/klattspeak/klattspeak/internal/mcp"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	// Voice defaults
	if _, err := cfg.Voice.Options(); err != nil {
		errs = append(errs, fmt.Errorf("voice: %w", err))
	}

	// Presets — duplicate name detection and per-preset field validation.
	presetNamesSeen := make(map[string]int, len(cfg.Presets))
	for i, p := range cfg.Presets {
		prefix := fmt.Sprintf("presets[%d]", i)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else {
			if prev, ok := presetNamesSeen[p.Name]; ok {
				errs = append(errs, fmt.Errorf("%s.name %q is a duplicate of presets[%d]", prefix, p.Name, prev))
			}
			presetNamesSeen[p.Name] = i
		}
		if _, err := p.VoiceDefaults.Options(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
		}
	}

	// Lexicon
	if cfg.Lexicon.PostgresDSN == "" && cfg.Lexicon.FallbackThreshold != 0 {
		slog.Warn("lexicon.fallback_threshold is set but lexicon.postgres_dsn is empty; no adapter applies the threshold")
	}
	if cfg.Lexicon.CircuitBreaker.MaxFailures < 0 {
		errs = append(errs, fmt.Errorf("lexicon.circuit_breaker.max_failures must be >= 0"))
	}
	if cfg.Lexicon.CircuitBreaker.ResetTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("lexicon.circuit_breaker.reset_timeout_seconds must be >= 0"))
	}

	// MCP
	if cfg.MCP.Transport != "" && !cfg.MCP.Transport.IsValid() {
		errs = append(errs, fmt.Errorf("mcp.transport %q is invalid; valid values: stdio, streamable-http", cfg.MCP.Transport))
	}
	if cfg.MCP.Transport == mcp.TransportStreamableHTTP && cfg.MCP.ListenAddr == "" {
		errs = append(errs, fmt.Errorf("mcp.listen_addr is required when mcp.transport is streamable-http"))
	}

	// Discord
	if cfg.Discord.Token == "" && (cfg.Discord.GuildID != "" || cfg.Discord.ChannelID != "") {
		slog.Warn("discord.guild_id or discord.channel_id is set but discord.token is empty; the Discord adapter will not be able to authenticate")
	}

	return errors.Join(errs...)
}
