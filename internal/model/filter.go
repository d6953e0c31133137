package model

// Mode selects which pipeline variant serves a discovery request.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeStreak Mode = "streak"
)

// FilterConfig is the fully resolved filter set for one request, produced by
// merging explicit query parameters, an optional named preset and global
// defaults. All numeric thresholds are non-negative and Days is at least 1.
type FilterConfig struct {
	MinViews       int64
	MaxSubs        *int64 // nil disables the subscriber ceiling
	MinDurationSec int
	Days           int
	Pages          int
	Langs          map[string]struct{}
	Mode           Mode
}

// LangAllowed reports whether a base language code is in the allowed set.
func (f FilterConfig) LangAllowed(lang string) bool {
	_, ok := f.Langs[lang]
	return ok
}
