package cmd

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/brandmatch/internal/model"
	"github.com/spigell/brandmatch/internal/secrets"
)

func TestResolveDirectionFromFlag(t *testing.T) {
	d, err := resolveDirection("influencer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != model.InfluencerToBrand {
		t.Fatalf("expected influencer direction, got %q", d)
	}

	if _, err := resolveDirection("agency"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestNewGeneratorDisabled(t *testing.T) {
	gen, err := newGenerator(context.Background(), &AIConfig{Enabled: false}, zap.NewNop())
	if err != nil || gen != nil {
		t.Fatalf("expected nil generator without error, got %v, %v", gen, err)
	}
}

func TestNewGeneratorWithoutKey(t *testing.T) {
	gen, err := newGenerator(context.Background(), &AIConfig{Enabled: true, Gemini: &GeminiConfig{}}, zap.NewNop())
	if !errors.Is(err, secrets.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if gen != nil {
		t.Fatal("expected nil generator")
	}
}

func TestNewGeneratorUnsupportedProvider(t *testing.T) {
	_, err := newGenerator(context.Background(), &AIConfig{Enabled: true, Provider: "openai"}, zap.NewNop())
	if err == nil || errors.Is(err, secrets.ErrNotConfigured) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestRedactedHidesAPIKey(t *testing.T) {
	cfg := &Config{AI: &AIConfig{Gemini: &GeminiConfig{APIKey: "secret", Model: "m"}}}

	out := redacted(cfg)
	if out.AI.Gemini.APIKey != "***" {
		t.Fatalf("expected redacted key, got %q", out.AI.Gemini.APIKey)
	}
	if cfg.AI.Gemini.APIKey != "secret" {
		t.Fatal("original config must not be modified")
	}
	if out.AI.Gemini.Model != "m" {
		t.Fatalf("expected model to survive, got %q", out.AI.Gemini.Model)
	}
}

func TestPrepareFiltersDefaults(t *testing.T) {
	steps := prepareFilters(nil)
	if len(steps) != 3 {
		t.Fatalf("expected three filters, got %d", len(steps))
	}
	for _, s := range steps {
		if !s.IsEnabled() {
			t.Fatalf("filter %s should be enabled", s.Name())
		}
	}
}

func TestPrepareFiltersDisabledInConfig(t *testing.T) {
	steps := prepareFilters(&FiltersConfig{Location: "india", Disable: []string{" location "}})

	for _, s := range steps {
		if s.Name() == "location" && s.IsEnabled() {
			t.Fatal("location filter should be disabled")
		}
		if s.Name() != "location" && !s.IsEnabled() {
			t.Fatalf("filter %s should stay enabled", s.Name())
		}
	}
}
