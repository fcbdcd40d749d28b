package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
	"ridesboard/internal/transport"

	"github.com/patrickmn/go-cache"
)

type RideLister interface {
	List(ctx context.Context) ([]models.Ride, error)
}

type FeedMetrics interface {
	FeedBuilt(items int)
	FeedCacheHit()
	FeedCacheMiss()
}

// FeedService merges the current ride snapshot with the bus timetable and
// caches the result per filter until the next ride mutation.
type FeedService struct {
	rides   RideLister
	lines   []models.BusLine
	cache   *cache.Cache
	gen     atomic.Uint64
	metrics FeedMetrics
}

// NewFeedService builds a feed service. ttl <= 0 disables caching.
func NewFeedService(rides RideLister, lines []models.BusLine, ttl time.Duration, m FeedMetrics) *FeedService {
	s := &FeedService{rides: rides, lines: lines, metrics: m}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// BusLines returns the configured timetable.
func (s *FeedService) BusLines() []models.BusLine {
	return s.lines
}

// Build returns the merged feed for f. Returned items may be shared with the
// cache and must be treated as read-only.
func (s *FeedService) Build(ctx context.Context, f models.FeedFilter) ([]models.FeedItem, error) {
	key := cacheKey(f)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if s.metrics != nil {
				s.metrics.FeedCacheHit()
			}
			return v.([]models.FeedItem), nil
		}
		if s.metrics != nil {
			s.metrics.FeedCacheMiss()
		}
	}

	gen := s.gen.Load()
	rides, err := s.rides.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load rides", Err: err}
	}
	items := transport.Merge(rides, s.lines, f)
	if s.metrics != nil {
		s.metrics.FeedBuilt(len(items))
	}

	// skip caching when a ride changed while we were reading
	if s.cache != nil && s.gen.Load() == gen {
		s.cache.SetDefault(key, items)
	}
	return items, nil
}

// Invalidate drops every cached feed.
func (s *FeedService) Invalidate() {
	if s == nil {
		return
	}
	s.gen.Add(1)
	if s.cache != nil {
		s.cache.Flush()
	}
}

func cacheKey(f models.FeedFilter) string {
	return fmt.Sprintf("feed:%s:%s:%s:%s", f.Date, f.Window.Start, f.Window.End, f.Destination)
}
