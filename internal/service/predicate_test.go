package service

import (
	"testing"
	"time"

	"github.com/cracyfrog/Metodo-Fast/internal/model"
	"github.com/cracyfrog/Metodo-Fast/internal/ytapi"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"hours minutes seconds", "PT1H2M5S", 3725},
		{"minutes only", "PT10M", 600},
		{"seconds only", "PT45S", 45},
		{"hours only", "PT2H", 7200},
		{"minutes and seconds", "PT4M20S", 260},
		{"empty", "", 0},
		{"garbage", "banana", 0},
		{"date component unsupported", "P1DT2H", 0},
		{"trailing whitespace", " PT3M ", 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseISODuration(tt.code); got != tt.want {
				t.Errorf("ParseISODuration(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestNormalizeLang(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want string
	}{
		{"region suffix stripped", "en-US", "en"},
		{"underscore suffix stripped", "pt_BR", "pt"},
		{"already base", "de", "de"},
		{"uppercased input", "EN", "en"},
		{"empty", "", ""},
		{"single letter", "e", ""},
		{"three letter", "eng", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLang(tt.tag); got != tt.want {
				t.Errorf("NormalizeLang(%q) = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		name   string
		thumbs []ytapi.Thumbnail
		want   float64
	}{
		{
			name:   "widescreen",
			thumbs: []ytapi.Thumbnail{{Width: 1280, Height: 720}},
			want:   1280.0 / 720.0,
		},
		{
			name:   "vertical",
			thumbs: []ytapi.Thumbnail{{Width: 720, Height: 1280}},
			want:   720.0 / 1280.0,
		},
		{
			name: "skips variants without dimensions",
			thumbs: []ytapi.Thumbnail{
				{URL: "maxres.jpg"},
				{Width: 640, Height: 480},
			},
			want: 640.0 / 480.0,
		},
		{
			name:   "no dimensions defaults to 16:9",
			thumbs: []ytapi.Thumbnail{{URL: "only-url.jpg"}},
			want:   16.0 / 9.0,
		},
		{
			name:   "no thumbnails defaults to 16:9",
			thumbs: nil,
			want:   16.0 / 9.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AspectRatio(tt.thumbs); got != tt.want {
				t.Errorf("AspectRatio() = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestLangHintForCountry(t *testing.T) {
	if hint := LangHintForCountry("US"); hint == nil || *hint != "en" {
		t.Errorf("LangHintForCountry(US) = %v, want en", hint)
	}
	if hint := LangHintForCountry("br"); hint == nil || *hint != "pt" {
		t.Errorf("LangHintForCountry(br) = %v, want pt (case-insensitive)", hint)
	}
	if hint := LangHintForCountry("ZZ"); hint != nil {
		t.Errorf("LangHintForCountry(ZZ) = %q, want nil (no guessing)", *hint)
	}
	if hint := LangHintForCountry(""); hint != nil {
		t.Errorf("LangHintForCountry(\"\") = %q, want nil", *hint)
	}
}

func TestPassesVideoFloors(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	windowStart := now.AddDate(0, 0, -30)
	floors := Floors{MinViews: 50_000, MinDurationSec: 180}

	base := model.VideoCandidate{
		VideoID:     "v1",
		Title:       "Organic growth deep dive",
		PublishedAt: now.AddDate(0, 0, -5),
		ViewCount:   200_000,
		DurationSec: 600,
		AspectRatio: 16.0 / 9.0,
	}

	tests := []struct {
		name   string
		mutate func(v *model.VideoCandidate)
		want   bool
	}{
		{"all floors met", func(v *model.VideoCandidate) {}, true},
		{"views below floor", func(v *model.VideoCandidate) { v.ViewCount = 49_999 }, false},
		{"views exactly at floor", func(v *model.VideoCandidate) { v.ViewCount = 50_000 }, true},
		{"too old", func(v *model.VideoCandidate) { v.PublishedAt = windowStart.Add(-time.Second) }, false},
		{"exactly at window start", func(v *model.VideoCandidate) { v.PublishedAt = windowStart }, true},
		{"too short", func(v *model.VideoCandidate) { v.DurationSec = 179 }, false},
		{"vertical format", func(v *model.VideoCandidate) { v.AspectRatio = 9.0 / 16.0 }, false},
		{"ratio exactly at floor", func(v *model.VideoCandidate) { v.AspectRatio = 1.2 }, true},
		{"shorts marker lowercase", func(v *model.VideoCandidate) { v.Title = "quick tip #shorts" }, false},
		{"shorts marker mixed case", func(v *model.VideoCandidate) { v.Title = "Quick Tip #ShOrTs" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base
			tt.mutate(&v)
			if got := PassesVideoFloors(v, floors, windowStart); got != tt.want {
				t.Errorf("PassesVideoFloors() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveLanguage(t *testing.T) {
	en := "en"
	de := "de"
	chWithHint := &model.ChannelInfo{LangHint: &de}
	chNoHint := &model.ChannelInfo{}

	if got := ResolveLanguage(&en, chWithHint); got == nil || *got != "en" {
		t.Errorf("declared tag should win over channel hint, got %v", got)
	}
	if got := ResolveLanguage(nil, chWithHint); got == nil || *got != "de" {
		t.Errorf("channel hint should fill missing tag, got %v", got)
	}
	if got := ResolveLanguage(nil, chNoHint); got != nil {
		t.Errorf("no tag and no hint should stay unresolved, got %q", *got)
	}
	if got := ResolveLanguage(nil, nil); got != nil {
		t.Errorf("nil channel should stay unresolved, got %q", *got)
	}
}

func TestQualifies_LanguageMembership(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	windowStart := now.AddDate(0, 0, -30)
	floors := Floors{MinViews: 1000, MinDurationSec: 60}
	cfg := model.FilterConfig{Langs: map[string]struct{}{"en": {}}}

	de := "de"
	v := model.VideoCandidate{
		Title:       "ok",
		PublishedAt: now,
		ViewCount:   5000,
		DurationSec: 300,
		AspectRatio: 1.78,
	}

	us := "US"
	enHint := "en"
	if !Qualifies(v, &model.ChannelInfo{Country: &us, LangHint: &enHint}, floors, windowStart, cfg) {
		t.Error("hinted en should qualify")
	}
	if Qualifies(v, &model.ChannelInfo{}, floors, windowStart, cfg) {
		t.Error("unresolved language must disqualify")
	}
	v.Language = &de
	if Qualifies(v, &model.ChannelInfo{LangHint: &enHint}, floors, windowStart, cfg) {
		t.Error("declared de must override en hint and disqualify")
	}
}
