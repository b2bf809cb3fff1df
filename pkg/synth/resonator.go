package synth

import (
	"math"

	"github.com/klattspeak/klattspeak/pkg/phoneme"
)

// resonator is a single second-order IIR bandpass filter, the digital
// realization of the continuous-time prototype H(s) = bw*s / (s^2 + bw*s +
// w0^2) under the standard bilinear transform (the same derivation behind
// the classic "Audio EQ Cookbook" bandpass biquad, constant 0 dB peak
// gain). Coefficients are recomputed only when the tuned center
// frequency or bandwidth changes; filter memory (x1,x2,y1,y2) persists
// across recomputation so cascaded resonators stay continuous through
// formant transitions.
type resonator struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64

	centerHz, bandwidthHz float64
}

// tune recomputes coefficients for a new center frequency and bandwidth, a
// no-op if neither has changed. Filter memory is preserved.
func (r *resonator) tune(centerHz, bandwidthHz float64) {
	if centerHz == r.centerHz && bandwidthHz == r.bandwidthHz {
		return
	}
	r.centerHz, r.bandwidthHz = centerHz, bandwidthHz

	if centerHz <= 0 || bandwidthHz <= 0 {
		r.b0, r.b1, r.b2, r.a1, r.a2 = 0, 0, 0, 0, 0
		return
	}

	q := centerHz / bandwidthHz
	w0 := 2 * math.Pi * centerHz / SampleRate
	alpha := math.Sin(w0) / (2 * q)
	cosW0 := math.Cos(w0)

	a0 := 1 + alpha
	r.b0 = alpha / a0
	r.b1 = 0
	r.b2 = -alpha / a0
	r.a1 = -2 * cosW0 / a0
	r.a2 = (1 - alpha) / a0
}

// process filters one input sample and advances the resonator's memory.
func (r *resonator) process(x float64) float64 {
	y := r.b0*x + r.b1*r.x1 + r.b2*r.x2 - r.a1*r.y1 - r.a2*r.y2
	r.x2, r.x1 = r.x1, x
	r.y2, r.y1 = r.y1, y
	return y
}

// reset clears filter memory without forgetting the tuned frequency, used
// between unrelated sonorant runs (e.g. after a silence or unvoiced
// segment) so a resonator does not ring from an earlier, unrelated sound.
func (r *resonator) reset() {
	r.x1, r.x2, r.y1, r.y2 = 0, 0, 0, 0
}

// cascade is three resonators tuned to F1/F2/F3, each fed the same source
// signal in parallel and summed at the output, per the Klatt parallel
// formant-synthesizer topology.
type cascade struct {
	stages [3]resonator
}

func (c *cascade) tune(f phoneme.Formants) {
	c.stages[0].tune(f.F1, f.B1)
	c.stages[1].tune(f.F2, f.B2)
	c.stages[2].tune(f.F3, f.B3)
}

func (c *cascade) reset() {
	for i := range c.stages {
		c.stages[i].reset()
	}
}

func (c *cascade) process(x float64) float64 {
	var sum float64
	for i := range c.stages {
		sum += c.stages[i].process(x)
	}
	return sum
}
