package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cracyfrog/Metodo-Fast/internal/model"
	"github.com/cracyfrog/Metodo-Fast/internal/ytapi"
	"github.com/cracyfrog/Metodo-Fast/pkg/hash"
)

// Cache TTLs. Video statistics move fast, channel metadata does not.
const (
	VideoBatchCacheTTL = 5 * time.Minute
	ChannelCacheTTL    = 15 * time.Minute
)

// CacheService is a Redis cache-aside layer for upstream metadata lookups.
// It caches raw upstream records (a quota saver), never filtered results.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, the returned service has a nil client and every cache
// operation becomes a no-op.
func NewCacheService(redisURL string, logf func(format string, v ...any)) *CacheService {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if redisURL == "" {
		logf("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	logf("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetVideoBatch retrieves a cached videos.list batch response. The key is
// derived from the sorted id set, so request ordering does not fragment the
// cache. Returns nil on miss or when caching is disabled.
func (c *CacheService) GetVideoBatch(ctx context.Context, ids []string) ([]ytapi.VideoRecord, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, videoBatchKey(ids)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []ytapi.VideoRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SetVideoBatch stores a videos.list batch response.
func (c *CacheService) SetVideoBatch(ctx context.Context, ids []string, records []ytapi.VideoRecord) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, videoBatchKey(ids), b, VideoBatchCacheTTL).Err()
}

// GetChannel retrieves a cached ChannelInfo. Returns nil on miss.
func (c *CacheService) GetChannel(ctx context.Context, channelID string) (*model.ChannelInfo, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, channelKey(channelID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var info channelCacheEntry
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return info.toChannelInfo(), nil
}

// SetChannel stores a ChannelInfo.
func (c *CacheService) SetChannel(ctx context.Context, info model.ChannelInfo) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(newChannelCacheEntry(info))
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, channelKey(info.ChannelID), b, ChannelCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// channelCacheEntry keeps the fields the public JSON shape omits.
type channelCacheEntry struct {
	ChannelID       string  `json:"channelId"`
	Title           string  `json:"title,omitempty"`
	Subscribers     *int64  `json:"subscriberCount,omitempty"`
	Country         *string `json:"country,omitempty"`
	LangHint        *string `json:"langHint,omitempty"`
	UploadsPlaylist string  `json:"uploadsPlaylist,omitempty"`
}

func newChannelCacheEntry(info model.ChannelInfo) channelCacheEntry {
	return channelCacheEntry{
		ChannelID:       info.ChannelID,
		Title:           info.Title,
		Subscribers:     info.Subscribers,
		Country:         info.Country,
		LangHint:        info.LangHint,
		UploadsPlaylist: info.UploadsPlaylist,
	}
}

func (e channelCacheEntry) toChannelInfo() *model.ChannelInfo {
	return &model.ChannelInfo{
		ChannelID:       e.ChannelID,
		Title:           e.Title,
		Subscribers:     e.Subscribers,
		Country:         e.Country,
		LangHint:        e.LangHint,
		UploadsPlaylist: e.UploadsPlaylist,
	}
}

func videoBatchKey(ids []string) string {
	return fmt.Sprintf("vbatch:%s", hash.BatchKey(ids))
}

func channelKey(channelID string) string {
	return fmt.Sprintf("channel:%s", channelID)
}
