package prosody_test

import (
	"math"
	"testing"

	"github.com/klattspeak/klattspeak/pkg/g2p"
	"github.com/klattspeak/klattspeak/pkg/language"
	"github.com/klattspeak/klattspeak/pkg/phoneme"
	"github.com/klattspeak/klattspeak/pkg/prosody"
)

func defaultConfig() prosody.Config {
	return prosody.Config{RateWPM: 175, PitchOffset: 0, Volume: 100, BasePitchHz: 130}
}

func TestPlanEmptyTokensIsEmpty(t *testing.T) {
	events, err := prosody.Plan(nil, language.English, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected zero events, got %v", events)
	}
}

func TestPlanUnknownPhonemeErrors(t *testing.T) {
	tokens := []g2p.Token{{Phoneme: "zzz", Stress: g2p.NoStress}}
	if _, err := prosody.Plan(tokens, language.English, defaultConfig()); err == nil {
		t.Fatal("expected an error for an unknown phoneme key")
	}
}

func TestPlanCumulativeDurationExact(t *testing.T) {
	tokens, err := g2p.ToPhonemes("the quick brown fox jumps over the lazy dog", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, err := prosody.Plan(tokens, language.English, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range events {
		if e.DurationSamples < 0 {
			t.Fatalf("negative duration sample count: %+v", e)
		}
	}

	inv := phoneme.English()
	var exact float64
	for _, tok := range tokens {
		p, _ := inv.Get(tok.Phoneme)
		ms := float64(p.DefaultDurationMs)
		if tok.Stress != g2p.NoStress {
			ms *= 1.2
		}
		exact += ms / 1000 * 22050
	}
	if got, want := prosody.TotalSamples(events), int(math.Round(exact)); got != want {
		t.Fatalf("total samples = %d, want %d (rounded exact sum of durations)", got, want)
	}
}

func TestPlanRateInversionHalvesSampleCount(t *testing.T) {
	tokens, err := g2p.ToPhonemes("hello world", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slow := defaultConfig()
	slow.RateWPM = 175
	fast := defaultConfig()
	fast.RateWPM = 350

	slowEvents, err := prosody.Plan(tokens, language.English, slow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fastEvents, err := prosody.Plan(tokens, language.English, fast)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slowTotal := prosody.TotalSamples(slowEvents)
	fastTotal := prosody.TotalSamples(fastEvents)

	want := slowTotal / 2
	diff := want - fastTotal
	if diff < 0 {
		diff = -diff
	}
	maxAllowed := len(slowEvents) // within ±1 sample per event
	if diff > maxAllowed {
		t.Fatalf("doubling rate did not roughly halve sample count: slow=%d fast=%d want~=%d (tolerance %d)", slowTotal, fastTotal, want, maxAllowed)
	}
}

func TestPlanStressedVowelLongerThanUnstressed(t *testing.T) {
	tokens := []g2p.Token{
		{Phoneme: "&", Stress: g2p.Primary},
	}
	stressedEvents, err := prosody.Plan(tokens, language.English, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tokens[0].Stress = g2p.NoStress
	plainEvents, err := prosody.Plan(tokens, language.English, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stressedEvents[0].DurationSamples <= plainEvents[0].DurationSamples {
		t.Fatalf("expected stressed phoneme to be longer: stressed=%d plain=%d",
			stressedEvents[0].DurationSamples, plainEvents[0].DurationSamples)
	}
}

func TestPlanVoicelessAmplitudeAttenuated(t *testing.T) {
	tokens := []g2p.Token{{Phoneme: "s", Stress: g2p.NoStress}, {Phoneme: "z", Stress: g2p.NoStress}}
	events, err := prosody.Plan(tokens, language.English, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events[0].Amplitude >= events[1].Amplitude {
		t.Fatalf("expected voiceless 's' amplitude (%v) to be less than voiced 'z' (%v)", events[0].Amplitude, events[1].Amplitude)
	}
}

func TestPlanQuestionRisesAtEnd(t *testing.T) {
	tokens, err := g2p.ToPhonemes("really?", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, err := prosody.Plan(tokens, language.English, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var firstVowelF0, lastVowelF0 float64
	firstSet := false
	for _, e := range events {
		if e.F0StartHz == 0 {
			continue
		}
		if !firstSet {
			firstVowelF0 = e.F0StartHz
			firstSet = true
		}
		lastVowelF0 = e.F0EndHz
	}
	if lastVowelF0 <= firstVowelF0 {
		t.Fatalf("expected pitch to rise toward the end of a question: first=%v last=%v", firstVowelF0, lastVowelF0)
	}
}

func TestPlanUnsupportedLanguage(t *testing.T) {
	_, err := prosody.Plan([]g2p.Token{{Phoneme: "a"}}, language.Language(42), defaultConfig())
	if err == nil {
		t.Fatal("expected an error for an unsupported language")
	}
}
