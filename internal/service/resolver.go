package service

import (
	"strconv"
	"strings"

	"github.com/cracyfrog/Metodo-Fast/internal/model"
)

// Global defaults, applied when neither an explicit parameter nor a preset
// provides a value.
const (
	DefaultMinViews       int64 = 50_000
	DefaultMaxSubs        int64 = 50_000
	DefaultMinDurationSec       = 180
	DefaultDays                 = 30
	DefaultPages                = 2
)

// DefaultLangs is the built-in language allow-list.
var DefaultLangs = []string{"en"}

// RawParams is the parsed-but-unvalidated query parameter bag handed over by
// the HTTP layer. Everything except Query is optional.
type RawParams struct {
	Query          string
	Model          string
	Mode           string
	MinViews       string
	MaxSubs        string
	MinDurationSec string
	Days           string
	Pages          string
	Langs          string
}

// preset binds specific threshold values to a name. Pointer fields left nil
// fall through to the global default.
type preset struct {
	minViews *int64
	maxSubs  *int64
	// noCeiling disables the subscriber ceiling outright.
	noCeiling      bool
	minDurationSec *int
	days           *int
	pages          *int
	mode           model.Mode
}

var presets = map[string]preset{
	"hidden-gems": {
		minViews: i64(100_000),
		maxSubs:  i64(10_000),
		days:     iptr(30),
	},
	"rising": {
		minViews: i64(50_000),
		maxSubs:  i64(50_000),
		days:     iptr(7),
	},
	"viral": {
		minViews:  i64(500_000),
		noCeiling: true,
		days:      iptr(3),
	},
	"streak": {
		mode: model.ModeStreak,
	},
}

// Resolver merges explicit query parameters with a named preset and global
// defaults into one validated FilterConfig. Resolution order is
// explicit > preset > default. It has no side effects and makes no calls.
type Resolver struct {
	maxPages int
}

func NewResolver(maxPages int) *Resolver {
	if maxPages <= 0 {
		maxPages = DefaultPages
	}
	return &Resolver{maxPages: maxPages}
}

// SplitTerms parses the comma-separated search text into terms. Duplicates
// are kept; each is queried independently.
func SplitTerms(q string) []string {
	var terms []string
	for _, t := range strings.Split(q, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// Resolve produces the request's FilterConfig. Numeric parameters that fail
// to parse fall back silently; an empty search text is the only error.
func (r *Resolver) Resolve(p RawParams) (model.FilterConfig, []string, error) {
	terms := SplitTerms(p.Query)
	if len(terms) == 0 {
		return model.FilterConfig{}, nil, &model.InvalidRequestError{Reason: "q parameter is required"}
	}

	name := p.Model
	if name == "" {
		name = p.Mode
	}
	ps := presets[strings.ToLower(strings.TrimSpace(name))]

	cfg := model.FilterConfig{
		MinViews:       pickInt64(p.MinViews, ps.minViews, DefaultMinViews),
		MinDurationSec: pickInt(p.MinDurationSec, ps.minDurationSec, DefaultMinDurationSec),
		Days:           pickInt(p.Days, ps.days, DefaultDays),
		Pages:          pickInt(p.Pages, ps.pages, DefaultPages),
		Langs:          parseLangs(p.Langs),
		Mode:           model.ModeNormal,
	}
	if ps.mode != "" {
		cfg.Mode = ps.mode
	}
	if strings.EqualFold(strings.TrimSpace(p.Mode), string(model.ModeStreak)) {
		cfg.Mode = model.ModeStreak
	}

	cfg.MaxSubs = resolveCeiling(p.MaxSubs, ps)

	// Clamp and floor-correct.
	if cfg.MinViews < 0 {
		cfg.MinViews = 0
	}
	if cfg.MinDurationSec < 0 {
		cfg.MinDurationSec = 0
	}
	if cfg.Days < 1 {
		cfg.Days = 1
	}
	if cfg.Pages < 1 {
		cfg.Pages = 1
	}
	if cfg.Pages > r.maxPages {
		cfg.Pages = r.maxPages
	}

	return cfg, terms, nil
}

// resolveCeiling applies the subscriber ceiling precedence. A negative
// explicit value is the "no ceiling" sentinel.
func resolveCeiling(explicit string, ps preset) *int64 {
	if explicit != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(explicit), 10, 64); err == nil {
			if n < 0 {
				return nil
			}
			return &n
		}
	}
	if ps.noCeiling {
		return nil
	}
	if ps.maxSubs != nil {
		v := *ps.maxSubs
		return &v
	}
	v := DefaultMaxSubs
	return &v
}

func parseLangs(raw string) map[string]struct{} {
	codes := DefaultLangs
	if raw != "" {
		var parsed []string
		for _, c := range strings.Split(raw, ",") {
			c = strings.ToLower(strings.TrimSpace(c))
			if len(c) == 2 {
				parsed = append(parsed, c)
			}
		}
		if len(parsed) > 0 {
			codes = parsed
		}
	}
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

func pickInt64(explicit string, fromPreset *int64, fallback int64) int64 {
	if explicit != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(explicit), 10, 64); err == nil {
			return n
		}
	}
	if fromPreset != nil {
		return *fromPreset
	}
	return fallback
}

func pickInt(explicit string, fromPreset *int, fallback int) int {
	if explicit != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(explicit)); err == nil {
			return n
		}
	}
	if fromPreset != nil {
		return *fromPreset
	}
	return fallback
}

func i64(v int64) *int64 { return &v }
func iptr(v int) *int    { return &v }
