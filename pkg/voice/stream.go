package voice

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/klattspeak/klattspeak/internal/observe"
	"github.com/klattspeak/klattspeak/pkg/prosody"
	"github.com/klattspeak/klattspeak/pkg/synth"
)

// SynthesizeStream renders text incrementally. Progress is cumulative
// samples emitted divided by total planned samples, monotonically
// non-decreasing and exactly 1.0 on the final chunk. An empty planned
// event list closes the channel immediately with no chunks. Cancelling ctx
// stops the producer goroutine and releases its event list and resonator
// state. A consumer that stops reading without cancelling ctx leaves the
// producer blocked on its next send until ctx is cancelled.
//
// cfg is snapshotted at call time: a later SetLanguage/SetRate/SetPitch/
// SetVolume has no effect on a stream already in flight.
func (s *Synthesizer) SynthesizeStream(ctx context.Context, text string) (<-chan Chunk, error) {
	planCtx, planSpan := observe.StartSpan(ctx, "voice.SynthesizeStream.plan")
	cfg := s.config()
	events, err := s.plan(planCtx, text, cfg)
	planSpan.End()
	if err != nil {
		observe.DefaultMetrics().RecordSynthesisError(ctx)
		return nil, err
	}
	return startStream(ctx, events, cfg), nil
}

// startStream renders the full event list once (resonator state must stay
// continuous across formant transitions, so the DSP pass itself cannot be
// split across goroutines) and then hands the PCM off chunk by chunk on a
// single-slot-buffered channel: the producer goroutine prepares the next
// chunk while the consumer is still draining the previous one, the same
// one-ahead pipelining the driver is specified to use.
func startStream(ctx context.Context, events []prosody.Event, cfg Config) <-chan Chunk {
	out := make(chan Chunk, 1)
	total := prosody.TotalSamples(events)
	if total == 0 || len(events) == 0 {
		close(out)
		return out
	}

	metrics := observe.DefaultMetrics()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(out)

		renderCtx, renderSpan := observe.StartSpan(gctx, "voice.render")
		renderStart := time.Now()
		samples, err := synth.Render(events, cfg.Language, int64(cfg.seed1), int64(cfg.seed2), variantGain(cfg.Variant))
		metrics.RenderDuration.Record(renderCtx, time.Since(renderStart).Seconds())
		renderSpan.End()
		if err != nil {
			metrics.RecordSynthesisError(renderCtx)
			return err
		}

		chunkSize := cfg.ChunkSamples
		emitted := 0
		for emitted < len(samples) {
			end := emitted + chunkSize
			if end > len(samples) {
				end = len(samples)
			}
			chunk := Chunk{
				Samples:    samples[emitted:end],
				SampleRate: synth.SampleRate,
				Channels:   1,
			}
			emitted = end
			chunk.Progress = float64(emitted) / float64(total)
			if emitted >= len(samples) {
				chunk.Progress = 1.0
			}

			select {
			case out <- chunk:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	return out
}
