// Command discordspeak joins a single Discord voice channel, synthesizes a
// phrase with the klattspeak engine, plays it, then disconnects. It is the
// minimal playback counterpart to the teacher's voice-input pipeline: where
// that pipeline treated Discord as a source of PCM to transcribe, this one
// treats it purely as a sink for PCM we generate.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/klattspeak/klattspeak/internal/config"
	"github.com/klattspeak/klattspeak/pkg/audio"
	discordaudio "github.com/klattspeak/klattspeak/pkg/audio/discord"
	"github.com/klattspeak/klattspeak/pkg/voice"
)

// discordSampleRate and discordChannels are what Discord's voice transport
// requires of outgoing PCM before Opus encoding; klattspeak's engine always
// renders at 22050Hz mono, so every utterance is converted before playback.
const (
	discordSampleRate = 48000
	discordChannels   = 2

	// playbackSettle gives the voice connection's send loop time to flush the
	// last Opus frames to Discord before we tear the connection down.
	playbackSettle = 500 * time.Millisecond
)

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: discordspeak <text> [config.yaml]")
		return 1
	}
	text := os.Args[1]
	configPath := "config.yaml"
	if len(os.Args) > 2 {
		configPath = os.Args[2]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "discordspeak: %v\n", err)
		return 1
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Server.LogLevel.Level()})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	samples, err := synthesizePhrase(cfg, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "discordspeak: %v\n", err)
		return 1
	}

	if err := speakInVoiceChannel(ctx, cfg.Discord, samples); err != nil {
		fmt.Fprintf(os.Stderr, "discordspeak: %v\n", err)
		return 1
	}

	slog.Info("discordspeak done")
	return 0
}

// synthesizePhrase renders text to 22050Hz mono PCM using the voice defaults
// from cfg.
func synthesizePhrase(cfg *config.Config, text string) (voice.Audio, error) {
	opts, err := cfg.Voice.Options()
	if err != nil {
		return voice.Audio{}, err
	}
	synth, err := voice.New(opts...)
	if err != nil {
		return voice.Audio{}, err
	}
	return synth.Synthesize(text)
}

// speakInVoiceChannel opens a Discord session, joins the configured voice
// channel, plays audio, then disconnects.
func speakInVoiceChannel(ctx context.Context, dc config.DiscordConfig, synthAudio voice.Audio) error {
	session, err := discordgo.New("Bot " + dc.Token)
	if err != nil {
		return fmt.Errorf("discordspeak: create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates

	if err := session.Open(); err != nil {
		return fmt.Errorf("discordspeak: open session: %w", err)
	}
	defer session.Close()

	platform := discordaudio.New(session, dc.GuildID)
	conn, err := platform.Connect(ctx, dc.ChannelID)
	if err != nil {
		return fmt.Errorf("discordspeak: connect voice channel: %w", err)
	}
	defer conn.Disconnect()

	frame := convertForDiscord(synthAudio)

	select {
	case conn.OutputStream() <- frame:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-time.After(playbackDuration(frame) + playbackSettle):
	case <-ctx.Done():
	}

	return nil
}

// convertForDiscord converts klattspeak's native 22050Hz mono output into a
// single 48kHz stereo [audio.AudioFrame] ready for Opus encoding.
func convertForDiscord(a voice.Audio) audio.AudioFrame {
	conv := audio.FormatConverter{Target: audio.Format{SampleRate: discordSampleRate, Channels: discordChannels}}
	return conv.Convert(audio.AudioFrame{
		Data:       int16sToBytes(a.Samples),
		SampleRate: a.SampleRate,
		Channels:   a.Channels,
	})
}

// playbackDuration estimates how long a converted frame takes to play, so we
// know how long to keep the voice connection open after handing it off.
func playbackDuration(frame audio.AudioFrame) time.Duration {
	if frame.SampleRate == 0 || frame.Channels == 0 {
		return 0
	}
	bytesPerSample := 2
	frames := len(frame.Data) / (bytesPerSample * frame.Channels)
	return time.Duration(frames) * time.Second / time.Duration(frame.SampleRate)
}

// int16sToBytes encodes PCM samples as little-endian bytes.
func int16sToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	return buf
}
