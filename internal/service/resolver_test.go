package service

import (
	"errors"
	"testing"

	"github.com/cracyfrog/Metodo-Fast/internal/model"
)

func TestSplitTerms(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want []string
	}{
		{"single term", "marketing", []string{"marketing"}},
		{"multiple terms", "seo,growth", []string{"seo", "growth"}},
		{"trims each term", " seo , growth ", []string{"seo", "growth"}},
		{"drops empty tokens", "seo,,growth,", []string{"seo", "growth"}},
		{"duplicates kept", "seo,seo", []string{"seo", "seo"}},
		{"empty", "", nil},
		{"only commas", ",,,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTerms(tt.q)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitTerms(%q) = %v, want %v", tt.q, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("term %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolve_EmptyQueryRejected(t *testing.T) {
	r := NewResolver(5)
	_, _, err := r.Resolve(RawParams{Query: "  "})
	var invalid *model.InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidRequestError", err)
	}
}

func TestResolve_Defaults(t *testing.T) {
	r := NewResolver(5)
	cfg, terms, err := r.Resolve(RawParams{Query: "marketing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 1 || terms[0] != "marketing" {
		t.Errorf("terms = %v", terms)
	}
	if cfg.MinViews != DefaultMinViews {
		t.Errorf("MinViews = %d, want %d", cfg.MinViews, DefaultMinViews)
	}
	if cfg.MaxSubs == nil || *cfg.MaxSubs != DefaultMaxSubs {
		t.Errorf("MaxSubs = %v, want %d", cfg.MaxSubs, DefaultMaxSubs)
	}
	if cfg.MinDurationSec != DefaultMinDurationSec {
		t.Errorf("MinDurationSec = %d", cfg.MinDurationSec)
	}
	if cfg.Days != DefaultDays || cfg.Pages != DefaultPages {
		t.Errorf("Days/Pages = %d/%d", cfg.Days, cfg.Pages)
	}
	if cfg.Mode != model.ModeNormal {
		t.Errorf("Mode = %q, want normal", cfg.Mode)
	}
	if !cfg.LangAllowed("en") || cfg.LangAllowed("de") {
		t.Errorf("default language set should be exactly {en}")
	}
}

func TestResolve_ExplicitBeatsPresetBeatsDefault(t *testing.T) {
	r := NewResolver(5)
	cfg, _, err := r.Resolve(RawParams{
		Query:    "seo",
		Model:    "hidden-gems", // preset: minViews 100k, maxSubs 10k, days 30
		MinViews: "250000",      // explicit wins
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MinViews != 250_000 {
		t.Errorf("explicit MinViews = %d, want 250000", cfg.MinViews)
	}
	if cfg.MaxSubs == nil || *cfg.MaxSubs != 10_000 {
		t.Errorf("preset MaxSubs = %v, want 10000", cfg.MaxSubs)
	}
	if cfg.Pages != DefaultPages {
		t.Errorf("default Pages = %d, want %d", cfg.Pages, DefaultPages)
	}
}

func TestResolve_BadNumbersFallBackSilently(t *testing.T) {
	r := NewResolver(5)
	cfg, _, err := r.Resolve(RawParams{
		Query:    "seo",
		MinViews: "lots",
		Days:     "soon",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MinViews != DefaultMinViews || cfg.Days != DefaultDays {
		t.Errorf("unparseable numbers must fall back: MinViews=%d Days=%d", cfg.MinViews, cfg.Days)
	}
}

func TestResolve_NoCeilingSentinel(t *testing.T) {
	r := NewResolver(5)

	cfg, _, err := r.Resolve(RawParams{Query: "seo", MaxSubs: "-1"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxSubs != nil {
		t.Errorf("explicit -1 should disable the ceiling, got %d", *cfg.MaxSubs)
	}

	cfg, _, err = r.Resolve(RawParams{Query: "seo", Model: "viral"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxSubs != nil {
		t.Errorf("viral preset should disable the ceiling, got %d", *cfg.MaxSubs)
	}

	// An explicit ceiling still overrides a no-ceiling preset.
	cfg, _, err = r.Resolve(RawParams{Query: "seo", Model: "viral", MaxSubs: "20000"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxSubs == nil || *cfg.MaxSubs != 20_000 {
		t.Errorf("explicit MaxSubs = %v, want 20000", cfg.MaxSubs)
	}
}

func TestResolve_PageBudgetClamped(t *testing.T) {
	r := NewResolver(5)
	cfg, _, err := r.Resolve(RawParams{Query: "seo", Pages: "50"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pages != 5 {
		t.Errorf("Pages = %d, want clamped to 5", cfg.Pages)
	}

	cfg, _, err = r.Resolve(RawParams{Query: "seo", Pages: "0"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pages != 1 {
		t.Errorf("Pages = %d, want floored to 1", cfg.Pages)
	}
}

func TestResolve_NegativeThresholdsFloored(t *testing.T) {
	r := NewResolver(5)
	cfg, _, err := r.Resolve(RawParams{Query: "seo", MinViews: "-5", MinDurationSec: "-10", Days: "0"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MinViews != 0 || cfg.MinDurationSec != 0 || cfg.Days != 1 {
		t.Errorf("got MinViews=%d MinDurationSec=%d Days=%d", cfg.MinViews, cfg.MinDurationSec, cfg.Days)
	}
}

func TestResolve_StreakMode(t *testing.T) {
	r := NewResolver(5)

	cfg, _, err := r.Resolve(RawParams{Query: "fitness", Mode: "streak"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != model.ModeStreak {
		t.Errorf("Mode = %q, want streak", cfg.Mode)
	}

	cfg, _, err = r.Resolve(RawParams{Query: "fitness", Model: "streak"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != model.ModeStreak {
		t.Errorf("Model=streak should select streak mode, got %q", cfg.Mode)
	}
}

func TestResolve_CustomLangs(t *testing.T) {
	r := NewResolver(5)
	cfg, _, err := r.Resolve(RawParams{Query: "seo", Langs: "en, DE ,xx-long,pt"})
	if err != nil {
		t.Fatal(err)
	}
	for _, lang := range []string{"en", "de", "pt"} {
		if !cfg.LangAllowed(lang) {
			t.Errorf("%s should be allowed", lang)
		}
	}
	if cfg.LangAllowed("xx") {
		t.Error("malformed entries must be dropped, not truncated into codes")
	}
}
