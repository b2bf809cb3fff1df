// Package espeakcompat is a thin, espeak-ng-named adapter over [pkg/voice]
// for callers migrating from that API. It holds one package-level
// [voice.Synthesizer], matching espeak-ng's own process-global usage
// pattern, and is not part of the core engine.
package espeakcompat

import (
	"fmt"
	"sync"

	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/voice"
)

var (
	mu  sync.Mutex
	syn *voice.Synthesizer
)

// Initialize creates the package-level synthesizer and returns its output
// sample rate. outputType and pathOrNull are accepted for signature
// compatibility and otherwise unused: this engine never writes audio
// devices or files from the core. bufferLengthMs and options are likewise
// accepted and ignored.
func Initialize(outputType string, bufferLengthMs int, pathOrNull string, options int) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	s, err := voice.New()
	if err != nil {
		return 0, err
	}
	syn = s
	return 22050, nil
}

// SetVoiceByName selects the language by espeak-style voice/locale name.
func SetVoiceByName(languageCode string) error {
	mu.Lock()
	defer mu.Unlock()
	if syn == nil {
		return fmt.Errorf("espeakcompat: not initialized")
	}
	lang, err := language.MustFromCode(languageCode)
	if err != nil {
		return err
	}
	syn.SetLanguage(lang)
	return nil
}

// Synth synthesizes text in languageCode and returns the rendered audio.
func Synth(text, languageCode string) (voice.Audio, error) {
	mu.Lock()
	defer mu.Unlock()
	if syn == nil {
		return voice.Audio{}, fmt.Errorf("espeakcompat: not initialized")
	}
	lang, err := language.MustFromCode(languageCode)
	if err != nil {
		return voice.Audio{}, err
	}
	syn.SetLanguage(lang)
	return syn.Synthesize(text)
}

// TextToPhonemes runs G2P only and renders the phoneme sequence as a
// space-separated string, IPA symbols if useIPA is set, ASCII keys
// otherwise.
func TextToPhonemes(text, languageCode string, useIPA bool) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if syn == nil {
		return "", fmt.Errorf("espeakcompat: not initialized")
	}
	lang, err := language.MustFromCode(languageCode)
	if err != nil {
		return "", err
	}
	syn.SetLanguage(lang)

	format := voice.ASCII
	if useIPA {
		format = voice.IPA
	}
	phonemes, err := syn.TextToPhonemes(text, format)
	if err != nil {
		return "", err
	}

	out := ""
	for _, sym := range phonemes.Symbols {
		if sym.Symbol == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += sym.Symbol
	}
	return out, nil
}

// Terminate releases the package-level synthesizer. A no-op beyond that:
// the core engine opens no sockets, files, or audio devices to close.
func Terminate() {
	mu.Lock()
	defer mu.Unlock()
	syn = nil
}
