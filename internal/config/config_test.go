package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "5175" || cfg.Language != "en" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.RoundTTL != 6*time.Hour || cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected durations: %v / %v", cfg.RoundTTL, cfg.SessionTTL)
	}
	if cfg.LexiconDSN != "" {
		t.Fatalf("lexicon dsn should default to empty, got %q", cfg.LexiconDSN)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LANGUAGE", "en-GB")
	t.Setenv("ROUND_TTL", "30m")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "9000" || cfg.Language != "en-GB" || cfg.RoundTTL != 30*time.Minute || !cfg.LogPretty {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestParseError(t *testing.T) {
	t.Setenv("ROUND_TTL", "soon")

	_, err := Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
