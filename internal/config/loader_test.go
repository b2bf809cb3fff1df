package config_test

import (
	"strings"
	"testing"

	"github.com/klattspeak/klattspeak/internal/config"
)

func TestValidate_DuplicatePresetNames(t *testing.T) {
	t.Parallel()
	yaml := `
presets:
  - name: narrator
    variant: male1
  - name: narrator
    variant: female1
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for duplicate preset names, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: bananas
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for an invalid log level, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
}

func TestValidate_NegativeCircuitBreakerFieldsRejected(t *testing.T) {
	t.Parallel()
	yaml := `
lexicon:
  circuit_breaker:
    max_failures: -1
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for negative max_failures, got nil")
	}
}

func TestValidate_ValidConfigProducesNoError(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  listen_addr: ":8080"
  log_level: debug
voice:
  language: en
  variant: male3
presets:
  - name: hero
    language: en
    variant: male1
  - name: sidekick
    language: en
    variant: female3
lexicon:
  postgres_dsn: "postgres://localhost/test"
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MultipleErrorsAreJoined(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: bananas
presets:
  - name: a
    variant: male1
  - name: a
    variant: female1
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected errors, got nil")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
	if !strings.Contains(errStr, "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
}
