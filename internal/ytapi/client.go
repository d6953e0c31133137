package ytapi

import (
	"context"
	"time"
)

// Duration buckets understood by the upstream search capability.
const (
	DurationAny    = "any"
	DurationMedium = "medium" // roughly 4-20 minutes
	DurationLong   = "long"   // roughly 20+ minutes
)

// BatchLimit is the upstream maximum number of identifiers per list call.
const BatchLimit = 50

// SearchQuery describes one paginated search call.
type SearchQuery struct {
	Term           string
	PublishedAfter time.Time
	Duration       string // one of the Duration* constants, or empty
	PageToken      string
}

// SearchPage is one page of search results. Identifier order follows the
// upstream's popularity ordering.
type SearchPage struct {
	VideoIDs      []string
	ChannelIDs    []string
	NextPageToken string
}

// Thumbnail is a single thumbnail variant.
type Thumbnail struct {
	URL    string
	Width  int64
	Height int64
}

// VideoRecord is the raw enriched video metadata, before predicate mapping.
// Thumbnails are ordered best-resolution first.
type VideoRecord struct {
	ID                   string
	Title                string
	ChannelID            string
	PublishedAt          time.Time
	ViewCount            int64
	Duration             string // compact ISO-8601 code, e.g. PT1H2M5S
	DefaultLanguage      string
	DefaultAudioLanguage string
	Thumbnails           []Thumbnail
}

// ChannelRecord is the raw enriched channel metadata.
// Subscribers is nil when the upstream marks the count as hidden.
type ChannelRecord struct {
	ID              string
	Title           string
	Subscribers     *int64
	Country         string
	BrandingCountry string
	UploadsPlaylist string
}

// UploadEntry is one entry of a channel's upload history.
type UploadEntry struct {
	VideoID     string
	PublishedAt time.Time
}

// UploadsPage is one page of a channel's upload history, most recent first.
type UploadsPage struct {
	Entries       []UploadEntry
	NextPageToken string
}

// Client is the read-only upstream capability the pipeline depends on. All
// implementations surface non-success upstream responses as
// *model.UpstreamError and respect context cancellation.
type Client interface {
	// SearchVideos runs one paginated search call ordered by descending
	// popularity, restricted to videos published after the window start.
	SearchVideos(ctx context.Context, q SearchQuery) (*SearchPage, error)

	// ListVideos fetches statistics and metadata for up to BatchLimit
	// video identifiers.
	ListVideos(ctx context.Context, ids []string) ([]VideoRecord, error)

	// ListChannels fetches statistics and metadata for up to BatchLimit
	// channel identifiers.
	ListChannels(ctx context.Context, ids []string) ([]ChannelRecord, error)

	// ListUploads fetches one page of a channel's upload history via its
	// uploads playlist reference.
	ListUploads(ctx context.Context, playlistID, pageToken string) (*UploadsPage, error)
}
