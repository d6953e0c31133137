package service

import (
	"context"
	"time"

	"github.com/cracyfrog/Metodo-Fast/internal/ytapi"
)

// CandidateSet accumulates deduplicated identifiers across search calls.
// First-seen insertion order is preserved so two runs over the same upstream
// dataset produce identical output ordering.
type CandidateSet struct {
	VideoIDs   []string
	ChannelIDs []string
	seenVideo  map[string]struct{}
	seenChan   map[string]struct{}
}

func NewCandidateSet() *CandidateSet {
	return &CandidateSet{
		seenVideo: make(map[string]struct{}),
		seenChan:  make(map[string]struct{}),
	}
}

func (s *CandidateSet) AddVideo(id string) {
	if _, ok := s.seenVideo[id]; ok {
		return
	}
	s.seenVideo[id] = struct{}{}
	s.VideoIDs = append(s.VideoIDs, id)
}

func (s *CandidateSet) AddChannel(id string) {
	if _, ok := s.seenChan[id]; ok {
		return
	}
	s.seenChan[id] = struct{}{}
	s.ChannelIDs = append(s.ChannelIDs, id)
}

// DiscoveryService turns search terms into a bounded candidate set via
// paginated upstream search calls.
type DiscoveryService struct {
	yt ytapi.Client
}

func NewDiscoveryService(yt ytapi.Client) *DiscoveryService {
	return &DiscoveryService{yt: yt}
}

// DurationBuckets picks the upstream duration buckets worth searching for a
// given duration floor, so obviously-too-short results are pre-filtered.
func DurationBuckets(minDurationSec int) []string {
	switch {
	case minDurationSec >= 1200:
		return []string{ytapi.DurationLong}
	case minDurationSec >= 240:
		return []string{ytapi.DurationMedium, ytapi.DurationLong}
	default:
		return []string{ytapi.DurationAny}
	}
}

// Collect issues up to pages search calls per (term x bucket) combination,
// following continuation tokens until exhausted or the budget is reached.
// Any non-success upstream response aborts the whole collection; no partial
// set is returned.
func (d *DiscoveryService) Collect(ctx context.Context, terms []string, windowStart time.Time, pages int, buckets []string) (*CandidateSet, error) {
	set := NewCandidateSet()
	for _, term := range terms {
		for _, bucket := range buckets {
			token := ""
			for page := 0; page < pages; page++ {
				result, err := d.yt.SearchVideos(ctx, ytapi.SearchQuery{
					Term:           term,
					PublishedAfter: windowStart,
					Duration:       bucket,
					PageToken:      token,
				})
				if err != nil {
					return nil, err
				}
				for _, id := range result.VideoIDs {
					set.AddVideo(id)
				}
				for _, id := range result.ChannelIDs {
					set.AddChannel(id)
				}
				token = result.NextPageToken
				if token == "" {
					break
				}
			}
		}
	}
	return set, nil
}
