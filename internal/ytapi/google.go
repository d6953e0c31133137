package ytapi

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/cracyfrog/Metodo-Fast/internal/model"
)

// Capability labels, used by the metrics hook.
const (
	CapSearch   = "search"
	CapVideos   = "videos"
	CapChannels = "channels"
	CapUploads  = "uploads"
)

// GoogleClient adapts the YouTube Data API v3 to the Client interface.
//
// Calls are deliberately sequential and token-paced: one token is taken
// before every upstream call so bursts stay under the API's rate limit.
type GoogleClient struct {
	svc     *youtube.Service
	limiter *rate.Limiter
	// OnCall, when set, is invoked with the capability label before each
	// upstream call. Used for metrics.
	OnCall func(capability string)
}

// NewGoogleClient builds the real upstream adapter. pacing is the fixed
// minimum delay between successive upstream calls.
func NewGoogleClient(ctx context.Context, apiKey string, pacing time.Duration) (*GoogleClient, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GoogleClient{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Every(pacing), 1),
	}, nil
}

func (c *GoogleClient) pace(ctx context.Context, capability string) error {
	if c.OnCall != nil {
		c.OnCall(capability)
	}
	return c.limiter.Wait(ctx)
}

// SearchVideos implements Client.
func (c *GoogleClient) SearchVideos(ctx context.Context, q SearchQuery) (*SearchPage, error) {
	if err := c.pace(ctx, CapSearch); err != nil {
		return nil, err
	}

	call := c.svc.Search.List([]string{"id", "snippet"}).
		Q(q.Term).
		Type("video").
		Order("viewCount").
		PublishedAfter(q.PublishedAfter.UTC().Format(time.RFC3339)).
		MaxResults(BatchLimit).
		Context(ctx)
	if q.Duration != "" && q.Duration != DurationAny {
		call = call.VideoDuration(q.Duration)
	}
	if q.PageToken != "" {
		call = call.PageToken(q.PageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, mapErr(err)
	}

	page := &SearchPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			page.VideoIDs = append(page.VideoIDs, item.Id.VideoId)
		}
		if item.Snippet != nil && item.Snippet.ChannelId != "" {
			page.ChannelIDs = append(page.ChannelIDs, item.Snippet.ChannelId)
		}
	}
	return page, nil
}

// ListVideos implements Client.
func (c *GoogleClient) ListVideos(ctx context.Context, ids []string) ([]VideoRecord, error) {
	if err := c.pace(ctx, CapVideos); err != nil {
		return nil, err
	}

	resp, err := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(ids...).
		MaxResults(BatchLimit).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapErr(err)
	}

	records := make([]VideoRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		rec := VideoRecord{ID: item.Id}
		if item.Snippet != nil {
			rec.Title = item.Snippet.Title
			rec.ChannelID = item.Snippet.ChannelId
			rec.PublishedAt = parseTimestamp(item.Snippet.PublishedAt)
			rec.DefaultLanguage = item.Snippet.DefaultLanguage
			rec.DefaultAudioLanguage = item.Snippet.DefaultAudioLanguage
			rec.Thumbnails = flattenThumbnails(item.Snippet.Thumbnails)
		}
		if item.ContentDetails != nil {
			rec.Duration = item.ContentDetails.Duration
		}
		if item.Statistics != nil {
			rec.ViewCount = int64(item.Statistics.ViewCount)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ListChannels implements Client.
func (c *GoogleClient) ListChannels(ctx context.Context, ids []string) ([]ChannelRecord, error) {
	if err := c.pace(ctx, CapChannels); err != nil {
		return nil, err
	}

	resp, err := c.svc.Channels.List([]string{"snippet", "statistics", "contentDetails", "brandingSettings"}).
		Id(ids...).
		MaxResults(BatchLimit).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapErr(err)
	}

	records := make([]ChannelRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		rec := ChannelRecord{ID: item.Id}
		if item.Snippet != nil {
			rec.Title = item.Snippet.Title
			rec.Country = item.Snippet.Country
		}
		if item.Statistics != nil && !item.Statistics.HiddenSubscriberCount {
			subs := int64(item.Statistics.SubscriberCount)
			rec.Subscribers = &subs
		}
		if item.BrandingSettings != nil && item.BrandingSettings.Channel != nil {
			rec.BrandingCountry = item.BrandingSettings.Channel.Country
		}
		if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
			rec.UploadsPlaylist = item.ContentDetails.RelatedPlaylists.Uploads
		}
		records = append(records, rec)
	}
	return records, nil
}

// ListUploads implements Client.
func (c *GoogleClient) ListUploads(ctx context.Context, playlistID, pageToken string) (*UploadsPage, error) {
	if err := c.pace(ctx, CapUploads); err != nil {
		return nil, err
	}

	call := c.svc.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(BatchLimit).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, mapErr(err)
	}

	page := &UploadsPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
			continue
		}
		page.Entries = append(page.Entries, UploadEntry{
			VideoID:     item.ContentDetails.VideoId,
			PublishedAt: parseTimestamp(item.ContentDetails.VideoPublishedAt),
		})
	}
	return page, nil
}

// flattenThumbnails orders the available variants best-resolution first.
func flattenThumbnails(t *youtube.ThumbnailDetails) []Thumbnail {
	if t == nil {
		return nil
	}
	var out []Thumbnail
	for _, v := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if v == nil {
			continue
		}
		out = append(out, Thumbnail{URL: v.Url, Width: v.Width, Height: v.Height})
	}
	return out
}

func parseTimestamp(s string) time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// mapErr converts googleapi errors into the UpstreamError taxonomy so the
// upstream status code and body surface verbatim.
func mapErr(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		body := gerr.Body
		if body == "" {
			body = gerr.Message
		}
		return &model.UpstreamError{StatusCode: gerr.Code, Body: body}
	}
	return err
}
