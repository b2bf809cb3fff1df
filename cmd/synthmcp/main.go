// Command synthmcp exposes the klattspeak engine as a single Model Context
// Protocol tool, synthesize_speech, so an LLM agent can call it the same way
// it would call any other tool server.
//
// There is no server-side MCP SDK usage to imitate anywhere in this
// module's lineage — every prior use of github.com/modelcontextprotocol/go-sdk
// in this codebase is client-side (connecting out to tool servers). This
// file's use of mcp.NewServer/mcp.AddTool follows the SDK's documented
// server construction shape instead of an in-repo precedent.
package main

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/klattspeak/klattspeak/internal/config"
	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/voice"
)

// SynthesizeInput is the synthesize_speech tool's input schema, inferred by
// the SDK from these JSON tags.
type SynthesizeInput struct {
	Text     string  `json:"text" jsonschema:"the text to synthesize"`
	Language string  `json:"language,omitempty" jsonschema:"ISO-639-1-ish language code, e.g. en or es"`
	Preset   string  `json:"preset,omitempty" jsonschema:"name of a configured voice preset"`
	Rate     float64 `json:"rate,omitempty" jsonschema:"speaking rate in words per minute"`
	Pitch    float64 `json:"pitch,omitempty" jsonschema:"pitch offset, -100 to 100"`
	Volume   float64 `json:"volume,omitempty" jsonschema:"volume percentage, 0 to 200"`
}

// SynthesizeOutput is the synthesize_speech tool's result: base64-encoded
// little-endian 16-bit PCM plus the sample rate and channel count needed to
// play it back.
type SynthesizeOutput struct {
	AudioBase64 string `json:"audio_base64"`
	SampleRate  int    `json:"sample_rate"`
	Channels    int    `json:"channels"`
}

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "synthmcp: %v\n", err)
		return 1
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Server.LogLevel.Level()})))

	presets := config.NewPresetRegistry()
	if err := presets.LoadPresets(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "synthmcp: %v\n", err)
		return 1
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "klattspeak", Version: "1.0.0"}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "synthesize_speech",
		Description: "Synthesize text to speech and return base64-encoded PCM audio.",
	}, synthesizeHandler(cfg, presets))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.MCP.Transport {
	case "", "stdio":
		slog.Info("synthmcp serving over stdio")
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "synthmcp: %v\n", err)
			return 1
		}
	default:
		slog.Info("synthmcp serving streamable HTTP", "addr", cfg.MCP.ListenAddr)
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
		httpServer := &http.Server{Addr: cfg.MCP.ListenAddr, Handler: handler}
		go func() {
			<-ctx.Done()
			_ = httpServer.Close()
		}()
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "synthmcp: %v\n", err)
			return 1
		}
	}

	slog.Info("synthmcp shut down")
	return 0
}

func synthesizeHandler(cfg *config.Config, presets *config.PresetRegistry) func(context.Context, *mcp.CallToolRequest, SynthesizeInput) (*mcp.CallToolResult, SynthesizeOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SynthesizeInput) (*mcp.CallToolResult, SynthesizeOutput, error) {
		synth, err := buildSynthesizer(cfg, presets, input)
		if err != nil {
			return nil, SynthesizeOutput{}, err
		}

		audio, err := synth.Synthesize(input.Text)
		if err != nil {
			return nil, SynthesizeOutput{}, err
		}

		return nil, SynthesizeOutput{
			AudioBase64: base64.StdEncoding.EncodeToString(int16sToBytes(audio.Samples)),
			SampleRate:  audio.SampleRate,
			Channels:    audio.Channels,
		}, nil
	}
}

func buildSynthesizer(cfg *config.Config, presets *config.PresetRegistry, input SynthesizeInput) (*voice.Synthesizer, error) {
	var extra []voice.Option
	if input.Language != "" {
		lang, ok := language.FromCode(input.Language)
		if !ok {
			return nil, fmt.Errorf("%w: %q", language.ErrUnsupportedLanguage, input.Language)
		}
		extra = append(extra, voice.WithLanguage(lang))
	}
	if input.Rate != 0 {
		extra = append(extra, voice.WithRate(input.Rate))
	}
	if input.Pitch != 0 {
		extra = append(extra, voice.WithPitch(input.Pitch))
	}
	if input.Volume != 0 {
		extra = append(extra, voice.WithVolume(input.Volume))
	}

	if input.Preset != "" {
		return presets.Resolve(input.Preset, extra...)
	}

	defaults, err := cfg.Voice.Options()
	if err != nil {
		return nil, err
	}
	return voice.New(append(defaults, extra...)...)
}

// int16sToBytes encodes PCM samples as little-endian bytes, the wire format
// synthesize_speech's callers expect once base64-decoded.
func int16sToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}
