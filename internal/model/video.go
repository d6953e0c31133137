package model

import "time"

// VideoCandidate is a fully enriched video record, built from the upstream
// videos.list response after Candidate Discovery produced its identifier.
type VideoCandidate struct {
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	ChannelID   string    `json:"channelId"`
	PublishedAt time.Time `json:"publishedAt"`
	ViewCount   int64     `json:"viewCount"`
	DurationSec int       `json:"durationSec"`
	AspectRatio float64   `json:"-"`
	Thumbnail   string    `json:"thumbnailUrl,omitempty"`
	// Language is the video's declared language tag normalized to its
	// 2-letter base form, nil when the upload carries no tag.
	Language *string `json:"-"`
}

// QualifiedVideo is a VideoCandidate joined with its channel's info after it
// survived the composite filter. Constructed once, never mutated.
type QualifiedVideo struct {
	VideoID        string    `json:"videoId"`
	Title          string    `json:"title"`
	ChannelID      string    `json:"channelId"`
	PublishedAt    time.Time `json:"publishedAt"`
	ViewCount      int64     `json:"viewCount"`
	DurationSec    int       `json:"durationSec"`
	Thumbnail      string    `json:"thumbnailUrl,omitempty"`
	Language       string    `json:"language"`
	Subscribers    *int64    `json:"subscriberCount,omitempty"`
	ChannelCountry string    `json:"channelCountry,omitempty"`
}
