package language_test

import (
	"errors"
	"testing"

	"github.com/klattspeak/klattspeak/pkg/language"
)

func TestFromCodeAliases(t *testing.T) {
	cases := map[string]language.Language{
		"en":      language.English,
		"ENG":     language.English,
		"English": language.English,
		"en-US":   language.English,
		"en-gb":   language.English,
		"es":      language.Spanish,
		"spa":     language.Spanish,
		"Spanish": language.Spanish,
		"es-ES":   language.Spanish,
		"es-mx":   language.Spanish,
	}
	for code, want := range cases {
		got, ok := language.FromCode(code)
		if !ok {
			t.Errorf("FromCode(%q): not recognised", code)
			continue
		}
		if got != want {
			t.Errorf("FromCode(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestFromCodeRejectsUnknown(t *testing.T) {
	if _, ok := language.FromCode("fr-FR"); ok {
		t.Error("expected fr-FR to be unrecognised")
	}
	if _, ok := language.FromCode(""); ok {
		t.Error("expected empty code to be unrecognised")
	}
}

func TestMustFromCodeWrapsSentinel(t *testing.T) {
	_, err := language.MustFromCode("klingon")
	if !errors.Is(err, language.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}
