package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cracyfrog/Metodo-Fast/internal/model"
	"github.com/cracyfrog/Metodo-Fast/internal/ytapi"
)

// EnrichmentService batch-fetches video and channel metadata, applying the
// upstream batch-size limit and the cache-aside layer.
type EnrichmentService struct {
	yt    ytapi.Client
	cache *CacheService
	log   zerolog.Logger

	// OnCacheHit and OnCacheMiss, when set, feed the cache metrics.
	OnCacheHit  func()
	OnCacheMiss func()
}

func NewEnrichmentService(yt ytapi.Client, cache *CacheService, log zerolog.Logger) *EnrichmentService {
	return &EnrichmentService{yt: yt, cache: cache, log: log}
}

// Videos fetches full records for the given identifiers in batches of at most
// ytapi.BatchLimit and maps them to VideoCandidates. Records come back in
// input order so downstream ordering stays deterministic.
func (s *EnrichmentService) Videos(ctx context.Context, ids []string) ([]model.VideoCandidate, error) {
	byID := make(map[string]model.VideoCandidate, len(ids))
	for batch := range batches(ids, ytapi.BatchLimit) {
		records, err := s.fetchVideoBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			byID[rec.ID] = mapVideoRecord(rec)
		}
	}

	// Upstream may omit records for deleted or private videos; keep input
	// order for the ones that came back.
	candidates := make([]model.VideoCandidate, 0, len(byID))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			candidates = append(candidates, v)
		}
	}
	return candidates, nil
}

func (s *EnrichmentService) fetchVideoBatch(ctx context.Context, batch []string) ([]ytapi.VideoRecord, error) {
	cached, err := s.cache.GetVideoBatch(ctx, batch)
	if err != nil {
		s.log.Warn().Err(err).Msg("cache: video batch get failed")
	}
	if cached != nil {
		s.hit()
		return cached, nil
	}
	s.miss()

	records, err := s.yt.ListVideos(ctx, batch)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetVideoBatch(ctx, batch, records); err != nil {
		s.log.Warn().Err(err).Msg("cache: video batch set failed")
	}
	return records, nil
}

// Channels fetches ChannelInfo for the given identifiers, checking the cache
// per channel and batching the remainder.
func (s *EnrichmentService) Channels(ctx context.Context, ids []string) (map[string]model.ChannelInfo, error) {
	infos := make(map[string]model.ChannelInfo, len(ids))

	var missing []string
	for _, id := range ids {
		cached, err := s.cache.GetChannel(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("channel_id", id).Msg("cache: channel get failed")
		}
		if cached != nil {
			s.hit()
			infos[id] = *cached
			continue
		}
		s.miss()
		missing = append(missing, id)
	}

	for batch := range batches(missing, ytapi.BatchLimit) {
		records, err := s.yt.ListChannels(ctx, batch)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			info := mapChannelRecord(rec)
			infos[info.ChannelID] = info
			if err := s.cache.SetChannel(ctx, info); err != nil {
				s.log.Warn().Err(err).Str("channel_id", info.ChannelID).Msg("cache: channel set failed")
			}
		}
	}
	return infos, nil
}

func (s *EnrichmentService) hit() {
	if s.OnCacheHit != nil {
		s.OnCacheHit()
	}
}

func (s *EnrichmentService) miss() {
	if s.OnCacheMiss != nil {
		s.OnCacheMiss()
	}
}

// batches yields consecutive sub-slices of at most size elements.
func batches(ids []string, size int) func(yield func([]string) bool) {
	return func(yield func([]string) bool) {
		for start := 0; start < len(ids); start += size {
			end := min(start+size, len(ids))
			if !yield(ids[start:end]) {
				return
			}
		}
	}
}

func mapVideoRecord(rec ytapi.VideoRecord) model.VideoCandidate {
	v := model.VideoCandidate{
		VideoID:     rec.ID,
		Title:       rec.Title,
		ChannelID:   rec.ChannelID,
		PublishedAt: rec.PublishedAt,
		ViewCount:   rec.ViewCount,
		DurationSec: ParseISODuration(rec.Duration),
		AspectRatio: AspectRatio(rec.Thumbnails),
	}
	if len(rec.Thumbnails) > 0 {
		v.Thumbnail = rec.Thumbnails[0].URL
	}
	// The audio language is the stronger signal when both are declared.
	if lang := NormalizeLang(rec.DefaultAudioLanguage); lang != "" {
		v.Language = &lang
	} else if lang := NormalizeLang(rec.DefaultLanguage); lang != "" {
		v.Language = &lang
	}
	return v
}

func mapChannelRecord(rec ytapi.ChannelRecord) model.ChannelInfo {
	info := model.ChannelInfo{
		ChannelID:       rec.ID,
		Title:           rec.Title,
		Subscribers:     rec.Subscribers,
		UploadsPlaylist: rec.UploadsPlaylist,
	}
	country := rec.Country
	if country == "" {
		country = rec.BrandingCountry
	}
	if country != "" {
		upper := strings.ToUpper(country)
		info.Country = &upper
		info.LangHint = LangHintForCountry(upper)
	}
	return info
}
