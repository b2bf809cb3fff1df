// Package synth renders a [prosody.Event] stream into 16-bit PCM samples
// using a classic Klatt-style source-filter formant synthesizer: a
// Rosenberg glottal pulse or seeded noise source excites three parallel
// bandpass resonators, whose outputs are summed, tuned to each phoneme's
// formant targets, with
// stop/affricate bursts and fricative noise shaped separately.
package synth

import (
	"fmt"
	"math"

	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/phoneme"
	"github.com/klattspeak/klattspeak/pkg/prosody"
)

// SampleRate is the fixed output sample rate in Hz for the whole pipeline.
const SampleRate = 22050

// formantBlendMs is the length of the formant-transition blend applied at
// the shared boundary of two adjacent formant-bearing phonemes.
const formantBlendMs = 20

// Render synthesizes events into mono 16-bit PCM samples. seed1 and seed2
// together fix the noise source's PCG state so identical input always
// produces identical output; both are load-bearing, not just seed1 — a
// caller varying only seed2 gets a different noise sequence. A zero pair
// falls back to built-in constants. variantGain is an output-level
// multiplier applied after the per-event amplitude the prosody planner
// already computed (voice variants differ in overall loudness as well as
// base pitch).
func Render(events []prosody.Event, lang language.Language, seed1, seed2 int64, variantGain float64) ([]int16, error) {
	inv, err := inventoryFor(lang)
	if err != nil {
		return nil, err
	}
	if variantGain <= 0 {
		variantGain = 1
	}

	total := prosody.TotalSamples(events)
	out := make([]float64, total)

	noiseSeed1, noiseSeed2 := defaultSeed, defaultSeed2
	if seed1 != 0 {
		noiseSeed1 = uint64(seed1)
	}
	if seed2 != 0 {
		noiseSeed2 = uint64(seed2)
	}

	r := &renderer{
		inv:    inv,
		glotal: &glottalSource{},
		noise:  newNoiseSource(noiseSeed1, noiseSeed2),
		casc:   &cascade{},
	}

	offset := 0
	for i, ev := range events {
		p, ok := inv.Get(ev.Phoneme)
		if !ok {
			return nil, fmt.Errorf("synth: unknown phoneme key %q", ev.Phoneme)
		}

		var prev, next *phoneme.Phoneme
		if i > 0 {
			if pp, ok := inv.Get(events[i-1].Phoneme); ok && pp.Class.HasFormants() {
				prev = &pp
			}
		}
		if i < len(events)-1 {
			if np, ok := inv.Get(events[i+1].Phoneme); ok && np.Class.HasFormants() {
				next = &np
			}
		}

		n := ev.DurationSamples
		seg := out[offset : offset+n]

		switch p.Class {
		case phoneme.Silence:
			// already zero
		case phoneme.Stop:
			r.renderStop(seg, p, ev)
		case phoneme.Affricate:
			r.renderAffricate(seg, p, ev)
		case phoneme.Fricative:
			r.renderFricative(seg, p, ev)
		default: // Vowel, Diphthong, Nasal, Liquid, Glide
			r.renderFormantSegment(seg, p, ev, prev, next)
		}

		offset += n
	}

	return quantize(out, variantGain), nil
}

type renderer struct {
	inv    *phoneme.Inventory
	glotal *glottalSource
	noise  *noiseSource
	casc   *cascade
}

// renderFormantSegment renders a voiced, formant-bearing phoneme: a glottal
// pulse train through the three-resonator cascade, its formant targets
// optionally ramping across the segment (diphthongs ramp onset to Target
// over the full event; monophthongs hold constant) and blended for the
// first/last formantBlendMs with the adjacent segment's formants when the
// neighbor is itself formant-bearing, so the resonators do not jump
// discontinuously across a phoneme boundary.
func (r *renderer) renderFormantSegment(seg []float64, p phoneme.Phoneme, ev prosody.Event, prev, next *phoneme.Phoneme) {
	n := len(seg)
	if n == 0 {
		return
	}

	onset := p.Formants
	target := p.Formants
	if p.Class == phoneme.Diphthong && p.Target != nil {
		target = *p.Target
	}

	blendIn := minInt(msToSamples(formantBlendMs), n/2)
	blendOut := minInt(msToSamples(formantBlendMs), n/2)

	ramp := envelopeRampSamples()

	for i := 0; i < n; i++ {
		frac := 0.0
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		f := lerpFormants(onset, target, frac)

		if prev != nil && blendIn > 0 && i < blendIn {
			blendFrac := float64(i) / float64(blendIn)
			f = lerpFormants(prev.Formants, f, blendFrac)
		}
		if next != nil && blendOut > 0 && i >= n-blendOut {
			blendFrac := float64(i-(n-blendOut)) / float64(blendOut)
			nextOnset := next.Formants
			f = lerpFormants(f, nextOnset, blendFrac)
		}

		r.casc.tune(f)

		f0 := lerp(ev.F0StartHz, ev.F0EndHz, frac)
		source := r.glotal.next(f0)
		filtered := r.casc.process(source)

		env := trapezoid(i, n, ramp)
		seg[i] = filtered * ev.Amplitude * env
	}
}

// renderStop renders a plosive: silence during closure (with a low-level
// voice bar substituted for voiced stops, since the vocal folds keep
// vibrating behind a closed oral tract), then a short noise burst shaped
// around BurstHz followed by an aspiration tail filling the rest of the
// release portion.
func (r *renderer) renderStop(seg []float64, p phoneme.Phoneme, ev prosody.Event) {
	n := len(seg)
	if n == 0 {
		return
	}
	closureSamples := minInt(msToSamples(float64(p.ClosureMs)), n)
	releaseSamples := n - closureSamples

	if p.Voiced {
		for i := 0; i < closureSamples; i++ {
			seg[i] = r.glotal.next(ev.F0StartHz) * ev.Amplitude * 0.15
		}
	}

	if releaseSamples <= 0 {
		return
	}
	burst := &resonator{}
	burst.tune(p.BurstHz, 300)
	burstSamples := minInt(msToSamples(5), releaseSamples)
	for i := 0; i < releaseSamples; i++ {
		idx := closureSamples + i
		noise := r.noise.next()
		shaped := burst.process(noise)
		gain := 1.0
		if i >= burstSamples {
			// aspiration tail decays linearly to the segment end
			gain = 0.5 * (1 - float64(i-burstSamples)/float64(releaseSamples-burstSamples+1))
		}
		seg[idx] = shaped * ev.Amplitude * gain
	}
}

// renderFricative renders sustained frication noise: white noise high-pass
// filtered at HighPassHz, with an optional resonant peak at ResonanceHz
// mixed in, and for voiced fricatives a softly-attenuated glottal pulse
// mixed underneath the noise.
func (r *renderer) renderFricative(seg []float64, p phoneme.Phoneme, ev prosody.Event) {
	n := len(seg)
	if n == 0 {
		return
	}
	hp := &highpass1{}
	hp.tune(p.HighPassHz)
	var peak *resonator
	if p.ResonanceHz > 0 {
		peak = &resonator{}
		peak.tune(p.ResonanceHz, 200)
	}
	ramp := envelopeRampSamples()

	for i := 0; i < n; i++ {
		noise := r.noise.next()
		shaped := hp.process(noise)
		if peak != nil {
			shaped = 0.6*shaped + 0.4*peak.process(shaped)
		}
		sample := shaped
		if p.Voiced {
			sample = 0.7*shaped + 0.3*r.glotal.next(ev.F0StartHz)
		}
		env := trapezoid(i, n, ramp)
		seg[i] = sample * ev.Amplitude * env
	}
}

// renderAffricate renders a stop closure+burst immediately followed by a
// short frication tail, the standard decomposition of an affricate into
// its plosive onset and fricative release.
func (r *renderer) renderAffricate(seg []float64, p phoneme.Phoneme, ev prosody.Event) {
	n := len(seg)
	if n == 0 {
		return
	}
	tailSamples := minInt(msToSamples(float64(p.FricativeTailMs)), n)
	stopSamples := n - tailSamples

	if stopSamples > 0 {
		r.renderStop(seg[:stopSamples], p, ev)
	}
	if tailSamples > 0 {
		r.renderFricative(seg[stopSamples:], p, ev)
	}
}

// highpass1 is a one-pole high-pass filter (y[n] = x[n] - x[n-1] + a*y[n-1])
// used to push white noise's spectral energy above a fricative's
// characteristic frequency.
type highpass1 struct {
	a        float64
	prevX    float64
	prevY    float64
	cutoffHz float64
}

func (h *highpass1) tune(cutoffHz float64) {
	if cutoffHz == h.cutoffHz {
		return
	}
	h.cutoffHz = cutoffHz
	if cutoffHz <= 0 {
		h.a = 0
		return
	}
	rc := 1 / (2 * math.Pi * cutoffHz)
	dt := 1.0 / SampleRate
	h.a = rc / (rc + dt)
}

func (h *highpass1) process(x float64) float64 {
	y := h.a * (h.prevY + x - h.prevX)
	h.prevX = x
	h.prevY = y
	return y
}

func lerp(a, b, frac float64) float64 {
	return a + (b-a)*frac
}

func lerpFormants(a, b phoneme.Formants, frac float64) phoneme.Formants {
	return phoneme.Formants{
		F1: lerp(a.F1, b.F1, frac),
		F2: lerp(a.F2, b.F2, frac),
		F3: lerp(a.F3, b.F3, frac),
		B1: lerp(a.B1, b.B1, frac),
		B2: lerp(a.B2, b.B2, frac),
		B3: lerp(a.B3, b.B3, frac),
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func inventoryFor(lang language.Language) (*phoneme.Inventory, error) {
	switch lang {
	case language.English:
		return phoneme.English(), nil
	case language.Spanish:
		return phoneme.Spanish(), nil
	default:
		return nil, fmt.Errorf("%w: %v", language.ErrUnsupportedLanguage, lang)
	}
}

// softClip applies a smooth limiter above 0.6 full scale, holding samples
// below that threshold untouched and asymptotically approaching ±1 beyond
// it, rather than hard-clipping which would add audible distortion
// harmonics on the occasional overlapping-formant peak.
func softClip(x float64) float64 {
	const threshold = 0.6
	sign := 1.0
	if x < 0 {
		sign = -1.0
		x = -x
	}
	if x <= threshold {
		return sign * x
	}
	y := threshold + (1-threshold)*math.Tanh((x-threshold)/(1-threshold))
	return sign * y
}

func quantize(samples []float64, gain float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		clamped := softClip(s * gain)
		out[i] = int16(math.Round(clamped * 32767))
	}
	return out
}
