// Command phonemes runs grapheme-to-phoneme conversion only, printing the
// resulting phoneme sequence without rendering audio.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/voice"
)

// CLI defines the command-line interface for phonemes.
type CLI struct {
	Text     string `arg:"" name:"text" help:"Text to convert to phonemes."`
	Language string `help:"Language code (e.g. en, es)." default:"en"`
	Format   string `help:"Phoneme notation: ascii or ipa." enum:"ascii,ipa" default:"ascii"`
}

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("phonemes"),
		kong.Description("Convert text to its phoneme sequence using the klattspeak G2P engine."),
		kong.UsageOnError(),
	)

	lang, ok := language.FromCode(cli.Language)
	if !ok {
		fmt.Fprintf(os.Stderr, "phonemes: %v: %q\n", language.ErrUnsupportedLanguage, cli.Language)
		return 1
	}

	synth, err := voice.New(voice.WithLanguage(lang))
	if err != nil {
		fmt.Fprintf(os.Stderr, "phonemes: %v\n", err)
		return 1
	}

	format := voice.ASCII
	if cli.Format == "ipa" {
		format = voice.IPA
	}

	result, err := synth.TextToPhonemes(cli.Text, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "phonemes: %v\n", err)
		return 1
	}

	fmt.Println(formatSymbols(result))
	return 0
}

func formatSymbols(p voice.Phonemes) string {
	parts := make([]string, 0, len(p.Symbols))
	for _, s := range p.Symbols {
		if s.Stress != "" && s.Stress != "none" {
			parts = append(parts, fmt.Sprintf("%s[%s]", s.Symbol, s.Stress))
			continue
		}
		parts = append(parts, s.Symbol)
	}
	return strings.Join(parts, " ")
}
