package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klattspeak/klattspeak/pkg/voice"
)

// ErrPresetNotRegistered is returned by [PresetRegistry.Resolve] when no
// preset has been registered under the requested name.
var ErrPresetNotRegistered = errors.New("config: voice preset not registered")

// PresetRegistry maps preset names to the [voice.Option] values they expand
// to. Adapter binaries that serve more than one caller concurrently — a
// Discord bot voicing several characters, an MCP or WebSocket server
// fielding requests for different named voices — populate one of these from
// [Config.Presets] once at startup and resolve a preset name per request
// without touching the YAML again. It is safe for concurrent use.
type PresetRegistry struct {
	mu      sync.RWMutex
	presets map[string][]voice.Option
}

// NewPresetRegistry returns an empty, ready-to-use [PresetRegistry].
func NewPresetRegistry() *PresetRegistry {
	return &PresetRegistry{presets: make(map[string][]voice.Option)}
}

// LoadPresets replaces the registry's contents with the presets declared in
// cfg, built from each [PresetConfig]'s [VoiceDefaults]. Call [Validate] on
// cfg first; LoadPresets surfaces the same errors but does not itself log
// anything.
func (r *PresetRegistry) LoadPresets(cfg *Config) error {
	presets := make(map[string][]voice.Option, len(cfg.Presets))
	for _, p := range cfg.Presets {
		opts, err := p.VoiceDefaults.Options()
		if err != nil {
			return fmt.Errorf("config: preset %q: %w", p.Name, err)
		}
		presets[p.Name] = opts
	}
	r.mu.Lock()
	r.presets = presets
	r.mu.Unlock()
	return nil
}

// Register adds or overwrites a single preset directly, bypassing YAML.
// Subsequent calls with the same name overwrite the previous registration.
func (r *PresetRegistry) Register(name string, opts ...voice.Option) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[name] = opts
}

// Resolve builds a [*voice.Synthesizer] from the named preset, with extra
// applied on top so a caller can override individual fields (e.g. a one-off
// rate change) without redeclaring the whole preset.
// Returns [ErrPresetNotRegistered] if name has not been registered.
func (r *PresetRegistry) Resolve(name string, extra ...voice.Option) (*voice.Synthesizer, error) {
	r.mu.RLock()
	opts, ok := r.presets[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotRegistered, name)
	}
	all := make([]voice.Option, 0, len(opts)+len(extra))
	all = append(all, opts...)
	all = append(all, extra...)
	return voice.New(all...)
}

// Names returns the registered preset names in no particular order.
func (r *PresetRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	return names
}
