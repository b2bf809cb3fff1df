// Command synthws serves the klattspeak engine over a WebSocket: a client
// sends one text message and receives back a sequence of binary PCM chunk
// frames produced by [voice.Synthesizer.SynthesizeStream].
package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/websocket"

	"github.com/klattspeak/klattspeak/internal/config"
	"github.com/klattspeak/klattspeak/internal/observe"
	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/voice"
)

// synthesizeRequest is the single text message a client sends to start a
// stream.
type synthesizeRequest struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Preset   string  `json:"preset,omitempty"`
	Rate     float64 `json:"rate,omitempty"`
	Pitch    float64 `json:"pitch,omitempty"`
	Volume   float64 `json:"volume,omitempty"`
}

// chunkHeader precedes each binary frame: 4 bytes sample rate, 1 byte
// channel count, 4 bytes IEEE-754 progress fraction, then raw little-endian
// PCM samples.
const chunkHeaderSize = 9

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
		fmt.Fprintf(os.Stderr, "synthws: %v\n", err)
		return 1
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Server.LogLevel.Level()})))

	presets := config.NewPresetRegistry()
	if err := presets.LoadPresets(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "synthws: %v\n", err)
		return 1
	}

	metrics := observe.DefaultMetrics()

	mux := http.NewServeMux()
	mux.Handle("/synthesize", observe.Middleware(metrics)(synthesizeHandler(cfg, presets, metrics)))

	srv := &http.Server{Addr: cfg.Server.ListenAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	slog.Info("synthws listening", "addr", cfg.Server.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "synthws: %v\n", err)
		return 1
	}
	slog.Info("synthws shut down")
	return 0
}

func synthesizeHandler(cfg *config.Config, presets *config.PresetRegistry, metrics *observe.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			slog.Error("websocket accept failed", "err", err)
			return
		}
		defer conn.Close(websocket.StatusInternalError, "synthws: handler returned")

		ctx := r.Context()
		_, payload, err := conn.Read(ctx)
		if err != nil {
			slog.Warn("websocket read failed", "err", err)
			return
		}

		var req synthesizeRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			_ = conn.Close(websocket.StatusUnsupportedData, "invalid request")
			return
		}

		synth, err := buildStreamSynthesizer(cfg, presets, req)
		if err != nil {
			_ = conn.Close(websocket.StatusUnsupportedData, err.Error())
			return
		}

		metrics.ActiveStreams.Add(ctx, 1)
		defer metrics.ActiveStreams.Add(ctx, -1)

		chunks, err := synth.SynthesizeStream(ctx, req.Text)
		if err != nil {
			metrics.RecordSynthesisError(ctx)
			_ = conn.Close(websocket.StatusInternalError, err.Error())
			return
		}

		for chunk := range chunks {
			frame := encodeChunk(chunk)
			if err := conn.Write(ctx, websocket.MessageBinary, frame); err != nil {
				metrics.RecordStreamChunk(ctx, "error")
				return
			}
			metrics.RecordStreamChunk(ctx, "ok")
		}

		conn.Close(websocket.StatusNormalClosure, "stream complete")
	}
}

func buildStreamSynthesizer(cfg *config.Config, presets *config.PresetRegistry, req synthesizeRequest) (*voice.Synthesizer, error) {
	var extra []voice.Option
	if req.Language != "" {
		lang, ok := language.FromCode(req.Language)
		if !ok {
			return nil, fmt.Errorf("%w: %q", language.ErrUnsupportedLanguage, req.Language)
		}
		extra = append(extra, voice.WithLanguage(lang))
	}
	if req.Rate != 0 {
		extra = append(extra, voice.WithRate(req.Rate))
	}
	if req.Pitch != 0 {
		extra = append(extra, voice.WithPitch(req.Pitch))
	}
	if req.Volume != 0 {
		extra = append(extra, voice.WithVolume(req.Volume))
	}

	if req.Preset != "" {
		return presets.Resolve(req.Preset, extra...)
	}
	defaults, err := cfg.Voice.Options()
	if err != nil {
		return nil, err
	}
	return voice.New(append(defaults, extra...)...)
}

// encodeChunk serializes a Chunk as a fixed header (sample rate, channel
// count, progress) followed by its raw little-endian PCM payload.
func encodeChunk(c voice.Chunk) []byte {
	buf := make([]byte, chunkHeaderSize+len(c.Samples)*2)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(c.SampleRate))
	buf[4] = byte(c.Channels)
	binary.LittleEndian.PutUint32(buf[5:9], math.Float32bits(float32(c.Progress)))
	for i, s := range c.Samples {
		binary.LittleEndian.PutUint16(buf[chunkHeaderSize+i*2:], uint16(s))
	}
	return buf
}
