package config

// ConfigDiff describes what changed between two configs.
// Only fields that can be safely hot-reloaded are tracked — the Postgres
// DSN and circuit breaker tuning require a new lexicon store connection and
// are deliberately left out of this diff; the server/MCP/Discord connection
// settings require a process restart to take effect.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	PresetsChanged bool
	PresetChanges  []PresetDiff
}

// PresetDiff describes what changed for a single voice preset between two
// configs.
type PresetDiff struct {
	Name    string
	Added   bool
	Removed bool
	Changed bool
}

// Diff compares old and new configs and returns what changed.
// Only tracks changes that are safe to apply without restart.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	oldPresets := make(map[string]*PresetConfig, len(old.Presets))
	for i := range old.Presets {
		oldPresets[old.Presets[i].Name] = &old.Presets[i]
	}
	newPresets := make(map[string]*PresetConfig, len(new.Presets))
	for i := range new.Presets {
		newPresets[new.Presets[i].Name] = &new.Presets[i]
	}

	for name, oldPreset := range oldPresets {
		newPreset, exists := newPresets[name]
		if !exists {
			d.PresetChanges = append(d.PresetChanges, PresetDiff{Name: name, Removed: true})
			d.PresetsChanged = true
			continue
		}
		if oldPreset.VoiceDefaults != newPreset.VoiceDefaults {
			d.PresetChanges = append(d.PresetChanges, PresetDiff{Name: name, Changed: true})
			d.PresetsChanged = true
		}
	}
	for name := range newPresets {
		if _, exists := oldPresets[name]; !exists {
			d.PresetChanges = append(d.PresetChanges, PresetDiff{Name: name, Added: true})
			d.PresetsChanged = true
		}
	}

	return d
}
