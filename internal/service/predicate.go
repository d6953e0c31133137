package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cracyfrog/Metodo-Fast/internal/model"
	"github.com/cracyfrog/Metodo-Fast/internal/ytapi"
)

// MinAspectRatio is the horizontal-format floor. Vertical clips (shorts
// re-uploads, phone footage) fall well below it.
const MinAspectRatio = 1.2

// defaultAspectRatio is assumed when no thumbnail dimensions are available.
const defaultAspectRatio = 16.0 / 9.0

// shortsMarker flags shorts content by title, matched case-insensitively.
const shortsMarker = "#shorts"

var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts a compact ISO-8601 duration code (PT1H2M5S) to
// seconds. Absent or unparseable codes parse to 0, which then fails any
// positive duration floor.
func ParseISODuration(code string) int {
	m := durationRe.FindStringSubmatch(strings.TrimSpace(code))
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	min, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	s, _ := strconv.Atoi(zeroIfEmpty(m[3]))
	return h*3600 + min*60 + s
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// AspectRatio computes width/height from the best available thumbnail.
// Thumbnails arrive best-resolution first; the first variant with usable
// dimensions wins. With no dimensions at all, 16:9 is assumed.
func AspectRatio(thumbs []ytapi.Thumbnail) float64 {
	for _, t := range thumbs {
		if t.Width > 0 && t.Height > 0 {
			return float64(t.Width) / float64(t.Height)
		}
	}
	return defaultAspectRatio
}

// NormalizeLang reduces a declared language tag to its lowercase 2-letter
// base form ("en-US" -> "en"). Empty or malformed tags yield "".
func NormalizeLang(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	if len(tag) != 2 {
		return ""
	}
	return tag
}

// countryLang maps a channel's declared country to a language hint, used only
// when a video carries no language tag of its own. Countries absent from the
// table yield no hint rather than a guess.
var countryLang = map[string]string{
	"US": "en", "GB": "en", "CA": "en", "AU": "en", "NZ": "en", "IE": "en",
	"DE": "de", "AT": "de", "CH": "de",
	"FR": "fr", "BE": "fr",
	"ES": "es", "MX": "es", "AR": "es", "CO": "es", "CL": "es", "PE": "es",
	"BR": "pt", "PT": "pt",
	"IT": "it",
	"NL": "nl",
	"JP": "ja",
	"KR": "ko",
	"RU": "ru",
	"IN": "hi",
	"TR": "tr",
	"PL": "pl",
	"SE": "sv",
	"NO": "no",
	"DK": "da",
	"FI": "fi",
	"ID": "id",
	"VN": "vi",
	"TH": "th",
	"SA": "ar", "AE": "ar", "EG": "ar",
}

// LangHintForCountry returns the language hint for an uppercase ISO country
// code, or nil when the table has no entry.
func LangHintForCountry(country string) *string {
	if lang, ok := countryLang[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return &lang
	}
	return nil
}

// ResolveLanguage joins the video-declared language with the channel's
// country-derived hint. The declared tag wins; nil means unresolved, which
// disqualifies the video from any language-filtered result.
func ResolveLanguage(videoLang *string, ch *model.ChannelInfo) *string {
	if videoLang != nil && *videoLang != "" {
		return videoLang
	}
	if ch != nil && ch.LangHint != nil {
		return ch.LangHint
	}
	return nil
}

// Floors holds the numeric thresholds the per-video predicate checks. Normal
// and streak mode substitute their own values.
type Floors struct {
	MinViews       int64
	MinDurationSec int
}

// PassesVideoFloors evaluates the language-independent predicate conditions:
// view count, recency, duration, aspect ratio and the shorts title marker.
func PassesVideoFloors(v model.VideoCandidate, fl Floors, windowStart time.Time) bool {
	if v.ViewCount < fl.MinViews {
		return false
	}
	if v.PublishedAt.Before(windowStart) {
		return false
	}
	if v.DurationSec < fl.MinDurationSec {
		return false
	}
	if v.AspectRatio < MinAspectRatio {
		return false
	}
	if strings.Contains(strings.ToLower(v.Title), shortsMarker) {
		return false
	}
	return true
}

// Qualifies is the full per-video predicate: floors plus language membership,
// with the channel's country hint as fallback. Used as-is by the streak scan.
func Qualifies(v model.VideoCandidate, ch *model.ChannelInfo, fl Floors, windowStart time.Time, cfg model.FilterConfig) bool {
	if !PassesVideoFloors(v, fl, windowStart) {
		return false
	}
	lang := ResolveLanguage(v.Language, ch)
	return lang != nil && cfg.LangAllowed(*lang)
}
