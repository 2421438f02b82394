package transcribe

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedVideoTranscriber memoizes video transcripts by video ID. Fetching the
// same video twice within the TTL reuses the first result instead of paying
// for another upstream transcription.
type CachedVideoTranscriber struct {
	inner VideoTranscriber
	cache *cache.Cache
}

var _ VideoTranscriber = &CachedVideoTranscriber{}

func NewCachedVideoTranscriber(inner VideoTranscriber, ttl time.Duration) *CachedVideoTranscriber {
	return &CachedVideoTranscriber{
		inner: inner,
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *CachedVideoTranscriber) TranscribeVideo(ctx context.Context, videoID string) (string, error) {
	if x, found := c.cache.Get(videoID); found {
		return x.(string), nil
	}

	text, err := c.inner.TranscribeVideo(ctx, videoID)
	if err != nil {
		return "", err
	}

	c.cache.Set(videoID, text, cache.DefaultExpiration)
	return text, nil
}
