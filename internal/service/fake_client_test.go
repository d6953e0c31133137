package service

import (
	"context"
	"strconv"

	"github.com/cracyfrog/Metodo-Fast/internal/ytapi"
)

// fakeClient is a finite in-memory upstream used by the pipeline tests.
// Search pages are keyed by "term|bucket"; continuation tokens are page
// indexes carried in each stored page's NextPageToken.
type fakeClient struct {
	searchPages map[string][]ytapi.SearchPage
	videos      map[string]ytapi.VideoRecord
	channels    map[string]ytapi.ChannelRecord
	uploads     map[string][]ytapi.UploadsPage

	searchCalls  int
	videoCalls   int
	channelCalls int
	uploadCalls  int

	searchErr  error
	videosErr  error
	channelErr error
}

func (f *fakeClient) SearchVideos(_ context.Context, q ytapi.SearchQuery) (*ytapi.SearchPage, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	pages := f.searchPages[q.Term+"|"+q.Duration]
	idx := 0
	if q.PageToken != "" {
		idx, _ = strconv.Atoi(q.PageToken)
	}
	if idx >= len(pages) {
		return &ytapi.SearchPage{}, nil
	}
	page := pages[idx]
	return &page, nil
}

func (f *fakeClient) ListVideos(_ context.Context, ids []string) ([]ytapi.VideoRecord, error) {
	f.videoCalls++
	if f.videosErr != nil {
		return nil, f.videosErr
	}
	var records []ytapi.VideoRecord
	for _, id := range ids {
		if rec, ok := f.videos[id]; ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (f *fakeClient) ListChannels(_ context.Context, ids []string) ([]ytapi.ChannelRecord, error) {
	f.channelCalls++
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	var records []ytapi.ChannelRecord
	for _, id := range ids {
		if rec, ok := f.channels[id]; ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (f *fakeClient) ListUploads(_ context.Context, playlistID, pageToken string) (*ytapi.UploadsPage, error) {
	f.uploadCalls++
	pages := f.uploads[playlistID]
	idx := 0
	if pageToken != "" {
		idx, _ = strconv.Atoi(pageToken)
	}
	if idx >= len(pages) {
		return &ytapi.UploadsPage{}, nil
	}
	page := pages[idx]
	return &page, nil
}
