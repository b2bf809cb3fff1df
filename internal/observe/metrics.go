// Package observe provides application-wide observability primitives for the
// adapter binaries: OpenTelemetry metrics, distributed tracing, structured
// logging, and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "github.com/klattspeak/klattspeak"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// G2PDuration tracks grapheme-to-phoneme conversion latency.
	G2PDuration metric.Float64Histogram

	// ProsodyDuration tracks duration/pitch/amplitude planning latency.
	ProsodyDuration metric.Float64Histogram

	// RenderDuration tracks Klatt formant rendering (DSP) latency.
	RenderDuration metric.Float64Histogram

	// SynthesisDuration tracks end-to-end Synthesize/SynthesizeSSML latency.
	SynthesisDuration metric.Float64Histogram

	// --- Counters ---

	// PhonemeEvents counts rendered phoneme events. Use with attribute:
	//   attribute.String("class", ...)
	PhonemeEvents metric.Int64Counter

	// LexiconLookups counts G2P exception-table lookups. Use with attributes:
	//   attribute.String("source", ...), attribute.Bool("hit", ...)
	// where source is "static", "postgres", or "phonetic".
	LexiconLookups metric.Int64Counter

	// LexiconFallbacks counts phonetic near-miss fallback invocations —
	// lookups that missed the exact dictionary entry and fell through to
	// Double-Metaphone ranking.
	LexiconFallbacks metric.Int64Counter

	// StreamChunksEmitted counts chunks emitted by SynthesizeStream. Use with
	// attribute: attribute.String("status", "ok"|"cancelled"|"error")
	StreamChunksEmitted metric.Int64Counter

	// SynthesisErrors counts failed Synthesize/SynthesizeSSML/SynthesizeStream calls.
	SynthesisErrors metric.Int64Counter

	// --- Gauges ---

	// ActiveStreams tracks the number of in-flight SynthesizeStream calls.
	ActiveStreams metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) optimised
// for synthesis latencies, which run from sub-millisecond (single-word
// calls) to a few seconds (long paragraphs).
var latencyBuckets = []float64{
	0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.G2PDuration, err = m.Float64Histogram("klattspeak.g2p.duration",
		metric.WithDescription("Latency of grapheme-to-phoneme conversion."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ProsodyDuration, err = m.Float64Histogram("klattspeak.prosody.duration",
		metric.WithDescription("Latency of duration/pitch/amplitude planning."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.RenderDuration, err = m.Float64Histogram("klattspeak.render.duration",
		metric.WithDescription("Latency of Klatt formant rendering."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SynthesisDuration, err = m.Float64Histogram("klattspeak.synthesis.duration",
		metric.WithDescription("End-to-end Synthesize/SynthesizeSSML latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.PhonemeEvents, err = m.Int64Counter("klattspeak.phoneme.events",
		metric.WithDescription("Total phoneme events rendered, by class."),
	); err != nil {
		return nil, err
	}
	if met.LexiconLookups, err = m.Int64Counter("klattspeak.lexicon.lookups",
		metric.WithDescription("Total G2P exception-table lookups, by source and hit/miss."),
	); err != nil {
		return nil, err
	}
	if met.LexiconFallbacks, err = m.Int64Counter("klattspeak.lexicon.fallbacks",
		metric.WithDescription("Total phonetic near-miss fallback invocations."),
	); err != nil {
		return nil, err
	}
	if met.StreamChunksEmitted, err = m.Int64Counter("klattspeak.stream.chunks",
		metric.WithDescription("Total chunks emitted by SynthesizeStream, by status."),
	); err != nil {
		return nil, err
	}
	if met.SynthesisErrors, err = m.Int64Counter("klattspeak.synthesis.errors",
		metric.WithDescription("Total failed synthesis calls."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveStreams, err = m.Int64UpDownCounter("klattspeak.active_streams",
		metric.WithDescription("Number of in-flight SynthesizeStream calls."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("klattspeak.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordPhonemeEvent is a convenience method that records a phoneme event
// counter increment for the given phoneme class.
func (m *Metrics) RecordPhonemeEvent(ctx context.Context, class string) {
	m.PhonemeEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("class", class)))
}

// RecordLexiconLookup is a convenience method that records a lexicon lookup
// counter increment with the standard attribute set.
func (m *Metrics) RecordLexiconLookup(ctx context.Context, source string, hit bool) {
	m.LexiconLookups.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("source", source),
			attribute.Bool("hit", hit),
		),
	)
}

// RecordLexiconFallback is a convenience method that records a phonetic
// fallback counter increment.
func (m *Metrics) RecordLexiconFallback(ctx context.Context) {
	m.LexiconFallbacks.Add(ctx, 1)
}

// RecordStreamChunk is a convenience method that records a stream chunk
// counter increment with the given status.
func (m *Metrics) RecordStreamChunk(ctx context.Context, status string) {
	m.StreamChunksEmitted.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordSynthesisError is a convenience method that records a synthesis
// error counter increment.
func (m *Metrics) RecordSynthesisError(ctx context.Context) {
	m.SynthesisErrors.Add(ctx, 1)
}
