package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/cracyfrog/Metodo-Fast/internal/model"
)

// PipelineService runs the request-scoped filtering pipeline: discovery,
// enrichment, composite filtering and ranking — or the streak variant.
// All upstream calls are sequential; intermediate state is owned by the run.
type PipelineService struct {
	discovery *DiscoveryService
	enrich    *EnrichmentService
	streak    *StreakService
	log       zerolog.Logger
}

func NewPipelineService(discovery *DiscoveryService, enrich *EnrichmentService, streak *StreakService, log zerolog.Logger) *PipelineService {
	return &PipelineService{discovery: discovery, enrich: enrich, streak: streak, log: log}
}

// Run executes the pipeline for one resolved request and returns the response
// envelope. Any upstream failure aborts the run; no partial results.
func (p *PipelineService) Run(ctx context.Context, cfg model.FilterConfig, terms []string, now time.Time) (*model.DiscoverResponse, error) {
	if cfg.Mode == model.ModeStreak {
		return p.runStreak(ctx, cfg, terms, now)
	}
	return p.runNormal(ctx, cfg, terms, now)
}

func (p *PipelineService) runNormal(ctx context.Context, cfg model.FilterConfig, terms []string, now time.Time) (*model.DiscoverResponse, error) {
	windowStart := now.AddDate(0, 0, -cfg.Days)

	candidates, err := p.discovery.Collect(ctx, terms, windowStart, cfg.Pages, DurationBuckets(cfg.MinDurationSec))
	if err != nil {
		return nil, err
	}
	p.log.Debug().Int("candidates", len(candidates.VideoIDs)).Msg("discovery complete")

	videos, err := p.enrich.Videos(ctx, candidates.VideoIDs)
	if err != nil {
		return nil, err
	}

	floors := Floors{MinViews: cfg.MinViews, MinDurationSec: cfg.MinDurationSec}
	survivors := videos[:0:0]
	channelSet := NewCandidateSet()
	for _, v := range videos {
		if PassesVideoFloors(v, floors, windowStart) {
			survivors = append(survivors, v)
			channelSet.AddChannel(v.ChannelID)
		}
	}

	channels, err := p.enrich.Channels(ctx, channelSet.ChannelIDs)
	if err != nil {
		return nil, err
	}

	qualified := make([]model.QualifiedVideo, 0, len(survivors))
	for _, v := range survivors {
		ch, ok := channels[v.ChannelID]
		if !ok {
			continue
		}
		lang := ResolveLanguage(v.Language, &ch)
		if lang == nil || !cfg.LangAllowed(*lang) {
			continue
		}
		// nil subscriber counts fail any ceiling; only a nil ceiling
		// skips the check.
		if cfg.MaxSubs != nil {
			if ch.Subscribers == nil || *ch.Subscribers > *cfg.MaxSubs {
				continue
			}
		}
		qualified = append(qualified, joinVideo(v, ch, lang))
	}

	// Stable: ties keep discovery order so identical upstream data yields
	// identical output.
	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].ViewCount > qualified[j].ViewCount
	})

	return &model.DiscoverResponse{
		Items: qualified,
		Meta:  model.Meta{Total: len(qualified), Mode: string(model.ModeNormal)},
	}, nil
}

func (p *PipelineService) runStreak(ctx context.Context, cfg model.FilterConfig, terms []string, now time.Time) (*model.DiscoverResponse, error) {
	windowStart := now.AddDate(0, 0, -StreakWindowDays)

	candidates, err := p.discovery.Collect(ctx, terms, windowStart, cfg.Pages, []string{""})
	if err != nil {
		return nil, err
	}
	p.log.Debug().Int("channels", len(candidates.ChannelIDs)).Msg("streak discovery complete")

	results, err := p.streak.Evaluate(ctx, candidates.ChannelIDs, cfg, now)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.StreakResult{}
	}

	return &model.DiscoverResponse{
		Items: results,
		Meta:  model.Meta{Total: len(results), Mode: string(model.ModeStreak)},
	}, nil
}

// joinVideo builds the immutable QualifiedVideo from a surviving candidate
// and its channel's info.
func joinVideo(v model.VideoCandidate, ch model.ChannelInfo, lang *string) model.QualifiedVideo {
	q := model.QualifiedVideo{
		VideoID:     v.VideoID,
		Title:       v.Title,
		ChannelID:   v.ChannelID,
		PublishedAt: v.PublishedAt,
		ViewCount:   v.ViewCount,
		DurationSec: v.DurationSec,
		Thumbnail:   v.Thumbnail,
		Subscribers: ch.Subscribers,
	}
	if lang != nil {
		q.Language = *lang
	}
	if ch.Country != nil {
		q.ChannelCountry = *ch.Country
	}
	return q
}
