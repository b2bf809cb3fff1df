package g2p_test

import (
	"errors"
	"testing"

	"github.com/klattspeak/klattspeak/pkg/g2p"
	"github.com/klattspeak/klattspeak/pkg/language"
)

func phonemesOf(tokens []g2p.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Phoneme
	}
	return out
}

func mustEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v (%d tokens), want %v (%d tokens)", got, len(got), want, len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %q, want %q (full got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}

func TestToPhonemesEmptyTextIsEmptyNotError(t *testing.T) {
	tokens, err := g2p.ToPhonemes("   ", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(tokens) != 0 {
		t.Fatalf("expected zero tokens, got %v", tokens)
	}
}

func TestToPhonemesUnsupportedLanguage(t *testing.T) {
	_, err := g2p.ToPhonemes("hello", language.Language(99))
	if !errors.Is(err, g2p.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestToPhonemesDigraphs(t *testing.T) {
	tokens, err := g2p.ToPhonemes("ship", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustEqual(t, phonemesOf(tokens), []string{"S", "I", "p"})
}

func TestToPhonemesSoftCAndG(t *testing.T) {
	tokens, err := g2p.ToPhonemes("cat", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustEqual(t, phonemesOf(tokens), []string{"k", "&", "t"})

	tokens, err = g2p.ToPhonemes("cent", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustEqual(t, phonemesOf(tokens), []string{"s", "E", "n", "t"})
}

func TestToPhonemesApostropheTransparent(t *testing.T) {
	tokens, err := g2p.ToPhonemes("don't", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustEqual(t, phonemesOf(tokens), []string{"d", "A", "n", "t"})
}

func TestToPhonemesDigitExpansion(t *testing.T) {
	tokens, err := g2p.ToPhonemes("7", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustEqual(t, phonemesOf(tokens), []string{"s", "E", "v", "@", "n"})
}

func TestToPhonemesPunctuationSilence(t *testing.T) {
	tokens, err := g2p.ToPhonemes("hi, bye.", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	phons := phonemesOf(tokens)
	if phons[len(phons)-1] != "#" {
		t.Fatalf("expected trailing long silence, got %v", phons)
	}
	foundShort := false
	for _, p := range phons {
		if p == "_" {
			foundShort = true
		}
	}
	if !foundShort {
		t.Fatalf("expected a short silence at the comma, got %v", phons)
	}
}

func TestToPhonemesMonosyllableStressesItsOnlyVowel(t *testing.T) {
	tokens, err := g2p.ToPhonemes("cat", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tok := range tokens {
		if tok.Phoneme == "&" && tok.Stress != g2p.Primary {
			t.Fatalf("expected the only vowel to carry primary stress, got %v", tok.Stress)
		}
	}
}

func TestToPhonemesSpanishPenultimateStress(t *testing.T) {
	// "casa" (house): two vowels, ends in a vowel -> penultimate "a" is primary.
	tokens, err := g2p.ToPhonemes("casa", language.Spanish)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var vowelStresses []g2p.Stress
	for _, tok := range tokens {
		if tok.Phoneme == "a" {
			vowelStresses = append(vowelStresses, tok.Stress)
		}
	}
	if len(vowelStresses) != 2 || vowelStresses[0] != g2p.Primary || vowelStresses[1] != g2p.Secondary {
		t.Fatalf("expected first 'a' primary and second secondary, got %v", vowelStresses)
	}
}

func TestToPhonemesSpanishFinalStressOnConsonantEnding(t *testing.T) {
	// "reloj" ends in a consonant other than n/s -> final vowel stressed.
	tokens, err := g2p.ToPhonemes("reloj", language.Spanish)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var last g2p.Stress
	for _, tok := range tokens {
		switch tok.Phoneme {
		case "e", "o":
			last = tok.Stress
		}
	}
	_ = last // the final vowel "o" must be primary; checked below explicitly
	var oStress g2p.Stress
	found := false
	for _, tok := range tokens {
		if tok.Phoneme == "o" {
			oStress = tok.Stress
			found = true
		}
	}
	if !found || oStress != g2p.Primary {
		t.Fatalf("expected final vowel 'o' to carry primary stress, got tokens=%v", tokens)
	}
}

func TestToPhonemesDeterministic(t *testing.T) {
	a, err := g2p.ToPhonemes("The quick brown fox.", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := g2p.ToPhonemes("The quick brown fox.", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustEqual(t, phonemesOf(a), phonemesOf(b))
}

type fakeLookup struct{}

func (fakeLookup) Lookup(lang language.Language, word string) ([]string, []g2p.Stress, bool) {
	if word == "the" {
		return []string{"D", "@"}, []g2p.Stress{g2p.NoStress, g2p.Primary}, true
	}
	return nil, nil, false
}

func TestConverterConsultsLexiconBeforeRules(t *testing.T) {
	c := &g2p.Converter{Lexicon: fakeLookup{}}
	tokens, err := c.ToPhonemes("the cat", language.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	phons := phonemesOf(tokens)
	mustEqual(t, phons, []string{"D", "@", "k", "&", "t"})
}
