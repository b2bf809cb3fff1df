package main

import (
	"strings"
	"testing"

	"github.com/klattspeak/klattspeak/internal/config"
)

func TestBuildSynthesizer_DefaultsOnly(t *testing.T) {
	cfg := &config.Config{}
	presets := config.NewPresetRegistry()

	synth, err := buildSynthesizer(cfg, presets, SynthesizeInput{Text: "hello"})
	if err != nil {
		t.Fatalf("buildSynthesizer: %v", err)
	}
	if synth == nil {
		t.Fatal("buildSynthesizer returned nil synthesizer")
	}
}

func TestBuildSynthesizer_UnknownLanguage(t *testing.T) {
	cfg := &config.Config{}
	presets := config.NewPresetRegistry()

	_, err := buildSynthesizer(cfg, presets, SynthesizeInput{Text: "hi", Language: "zz"})
	if err == nil {
		t.Fatal("expected error for unknown language code")
	}
}

func TestBuildSynthesizer_UnknownPreset(t *testing.T) {
	cfg := &config.Config{}
	presets := config.NewPresetRegistry()

	_, err := buildSynthesizer(cfg, presets, SynthesizeInput{Text: "hi", Preset: "narrator"})
	if err == nil || !strings.Contains(err.Error(), "narrator") {
		t.Fatalf("expected preset-not-registered error mentioning the name, got %v", err)
	}
}

func TestBuildSynthesizer_RegisteredPreset(t *testing.T) {
	cfg := &config.Config{}
	presets := config.NewPresetRegistry()
	presets.Register("narrator")

	synth, err := buildSynthesizer(cfg, presets, SynthesizeInput{Text: "hi", Preset: "narrator", Rate: 220})
	if err != nil {
		t.Fatalf("buildSynthesizer: %v", err)
	}
	if synth == nil {
		t.Fatal("buildSynthesizer returned nil synthesizer")
	}
}

func TestInt16sToBytes_RoundTrips(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768}
	b := int16sToBytes(samples)
	if len(b) != len(samples)*2 {
		t.Fatalf("byte length = %d, want %d", len(b), len(samples)*2)
	}
	for i, want := range samples {
		got := int16(b[i*2]) | int16(b[i*2+1])<<8
		if got != want {
			t.Errorf("sample[%d] = %d, want %d", i, got, want)
		}
	}
}
