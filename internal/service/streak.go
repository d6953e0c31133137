package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cracyfrog/Metodo-Fast/internal/model"
	"github.com/cracyfrog/Metodo-Fast/internal/ytapi"
)

// Streak mode thresholds. The scan substitutes these for the request's
// normal-mode floors.
const (
	StreakMinViews       int64 = 15_000
	StreakMinDurationSec       = 120
	StreakMaxSubs        int64 = 50_000
	RequiredStreakLen          = 14
	StreakWindowDays           = 30
)

// StreakService evaluates channels for a run of consecutive qualifying
// uploads, most recent first.
type StreakService struct {
	yt          ytapi.Client
	enrich      *EnrichmentService
	maxChannels int
	log         zerolog.Logger
}

// NewStreakService builds the streak evaluator. maxChannels bounds how many
// channel candidates are scanned per request; candidates beyond the bound are
// ignored in discovery order. This is an acknowledged completeness trade-off
// to keep worst-case latency bounded.
func NewStreakService(yt ytapi.Client, enrich *EnrichmentService, maxChannels int, log zerolog.Logger) *StreakService {
	if maxChannels <= 0 {
		maxChannels = 8
	}
	return &StreakService{yt: yt, enrich: enrich, maxChannels: maxChannels, log: log}
}

// Evaluate scans each candidate channel's upload history and returns the
// channels whose current streak meets the required length, subscriber ceiling
// and language filter.
func (s *StreakService) Evaluate(ctx context.Context, channelIDs []string, cfg model.FilterConfig, now time.Time) ([]model.StreakResult, error) {
	if len(channelIDs) > s.maxChannels {
		channelIDs = channelIDs[:s.maxChannels]
	}

	infos, err := s.enrich.Channels(ctx, channelIDs)
	if err != nil {
		return nil, err
	}

	windowStart := now.AddDate(0, 0, -StreakWindowDays)
	floors := Floors{MinViews: StreakMinViews, MinDurationSec: StreakMinDurationSec}

	var results []model.StreakResult
	for _, id := range channelIDs {
		info, ok := infos[id]
		if !ok || info.UploadsPlaylist == "" {
			continue
		}
		// Hidden subscriber counts and channels over the ceiling can
		// never qualify; skip the upload walk entirely.
		if info.Subscribers == nil || *info.Subscribers > StreakMaxSubs {
			s.log.Debug().Str("channel_id", id).Msg("skipping channel failing subscriber ceiling")
			continue
		}

		streak, latest, err := s.scanChannel(ctx, &info, floors, windowStart, cfg)
		if err != nil {
			return nil, err
		}
		if streak < RequiredStreakLen || latest == nil {
			continue
		}

		results = append(results, model.StreakResult{
			ChannelID:   info.ChannelID,
			Title:       info.Title,
			Streak:      streak,
			Subscribers: info.Subscribers,
			LatestVideo: *latest,
		})
	}
	return results, nil
}

// scanChannel walks one channel's uploads most-recent-first and counts the
// maximal prefix of qualifying uploads. The scan halts at the first
// non-qualifying upload; later uploads are never counted even if they would
// qualify individually.
func (s *StreakService) scanChannel(ctx context.Context, info *model.ChannelInfo, floors Floors, windowStart time.Time, cfg model.FilterConfig) (int, *model.QualifiedVideo, error) {
	entries, err := s.collectUploads(ctx, info.UploadsPlaylist, windowStart)
	if err != nil {
		return 0, nil, err
	}
	if len(entries) == 0 {
		return 0, nil, nil
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.VideoID)
	}
	videos, err := s.enrich.Videos(ctx, ids)
	if err != nil {
		return 0, nil, err
	}

	byID := make(map[string]model.VideoCandidate, len(videos))
	for _, v := range videos {
		byID[v.VideoID] = v
	}

	streak := 0
	var latest *model.QualifiedVideo
	for _, e := range entries {
		v, ok := byID[e.VideoID]
		if !ok || !Qualifies(v, info, floors, windowStart, cfg) {
			break
		}
		streak++
		if latest == nil {
			q := joinVideo(v, *info, ResolveLanguage(v.Language, info))
			latest = &q
		}
	}
	return streak, latest, nil
}

// collectUploads pages through the uploads playlist, gathering in-window
// entries. It stops early once enough entries for the streak check are
// gathered, or once a page's oldest entry already falls outside the window.
func (s *StreakService) collectUploads(ctx context.Context, playlistID string, windowStart time.Time) ([]ytapi.UploadEntry, error) {
	var entries []ytapi.UploadEntry
	token := ""
	for {
		page, err := s.yt.ListUploads(ctx, playlistID, token)
		if err != nil {
			return nil, err
		}

		pastWindow := false
		for _, e := range page.Entries {
			if e.PublishedAt.Before(windowStart) {
				pastWindow = true
				continue
			}
			entries = append(entries, e)
		}

		if len(entries) > RequiredStreakLen || pastWindow || page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}
	return entries, nil
}
