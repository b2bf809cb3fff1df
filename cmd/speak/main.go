// Command speak renders text to a WAV file using the klattspeak engine.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klattspeak/klattspeak/internal/config"
	"github.com/klattspeak/klattspeak/internal/wavfile"
	"github.com/klattspeak/klattspeak/pkg/g2p/lexicon/pgstore"
	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/voice"
)

// CLI defines the command-line interface for speak.
type CLI struct {
	Text     string  `arg:"" name:"text" help:"Text to synthesize."`
	Config   string  `help:"Path to a YAML config file providing voice defaults." type:"existingfile"`
	Output   string  `short:"o" help:"Output WAV file path." default:"out.wav"`
	Language string  `help:"Language code (e.g. en, es)." default:"en"`
	Variant  string  `help:"Voice variant (default, male1, male2, male3, female1, female2, female3)." default:"default"`
	Rate     float64 `help:"Speaking rate in words per minute." default:"175"`
	Pitch    float64 `help:"Pitch offset, -100 to 100." default:"0"`
	Volume   float64 `help:"Volume percentage, 0 to 200." default:"100"`
	SSML     bool    `help:"Interpret text as SSML markup."`
}

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("speak"),
		kong.Description("Synthesize text to a WAV file using the klattspeak engine."),
		kong.UsageOnError(),
	)

	ctx := context.Background()
	synth, err := buildSynthesizer(ctx, cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "speak: %v\n", err)
		return 1
	}

	var audio voice.Audio
	if cli.SSML {
		audio, err = synth.SynthesizeSSML(cli.Text)
	} else {
		audio, err = synth.Synthesize(cli.Text)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "speak: %v\n", err)
		return 1
	}

	if err := writeWAV(cli.Output, audio); err != nil {
		fmt.Fprintf(os.Stderr, "speak: %v\n", err)
		return 1
	}

	slog.Info("wrote audio", "path", cli.Output, "samples", len(audio.Samples))
	return 0
}

func buildSynthesizer(ctx context.Context, cli *CLI) (*voice.Synthesizer, error) {
	opts := []voice.Option{}
	var lexCfg config.LexiconConfig

	if cli.Config != "" {
		cfg, err := config.Load(cli.Config)
		if err != nil {
			return nil, fmt.Errorf("io: %w", err)
		}
		defaults, err := cfg.Voice.Options()
		if err != nil {
			return nil, err
		}
		opts = append(opts, defaults...)
		lexCfg = cfg.Lexicon
	}

	lang, ok := language.FromCode(cli.Language)
	if !ok {
		return nil, fmt.Errorf("%w: %q", language.ErrUnsupportedLanguage, cli.Language)
	}
	opts = append(opts, voice.WithLanguage(lang))

	variant, ok := voice.ParseVariant(cli.Variant)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognised voice variant %q", voice.ErrInvalidConfig, cli.Variant)
	}
	opts = append(opts, voice.WithVariant(variant))

	opts = append(opts,
		voice.WithRate(cli.Rate),
		voice.WithPitch(cli.Pitch),
		voice.WithVolume(cli.Volume),
	)

	syn, err := voice.New(opts...)
	if err != nil {
		return nil, err
	}

	if lexCfg.PostgresDSN != "" {
		lookup, err := buildLexicon(ctx, lexCfg)
		if err != nil {
			return nil, fmt.Errorf("lexicon: %w", err)
		}
		syn.Lexicon = lookup
	}

	return syn, nil
}

// buildLexicon connects the Postgres-backed pronunciation override store
// and wraps it in a circuit breaker: a down or slow database degrades to a
// cache miss on every lookup rather than failing synthesis.
func buildLexicon(ctx context.Context, lexCfg config.LexiconConfig) (*pgstore.Guarded, error) {
	pool, err := pgxpool.New(ctx, lexCfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	store := pgstore.New(pool)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	breakerCfg := lexCfg.CircuitBreaker.ResilienceConfig("pgstore")
	return pgstore.NewGuarded(store, breakerCfg, slog.Default()), nil
}

func writeWAV(path string, audio voice.Audio) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("io: %w", err)
	}
	defer f.Close()

	if err := wavfile.Write(f, audio.Samples, audio.SampleRate, audio.Channels); err != nil {
		return fmt.Errorf("io: %w", err)
	}
	return nil
}
