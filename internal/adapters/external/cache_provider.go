package external

import (
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"weathernotify.app/internal/ports"
)

// cacheStats tracks hit and miss counters shared by the cache providers
type cacheStats struct {
	hits   int64
	misses int64
	mutex  sync.RWMutex
	clock  clock.Clock
}

func newCacheStats(clk clock.Clock) *cacheStats {
	if clk == nil {
		clk = clock.NewClock()
	}
	return &cacheStats{clock: clk}
}

func (s *cacheStats) snapshot() ports.CacheStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := s.hits + s.misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(s.hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        s.hits,
		Misses:      s.misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: s.clock.Now(),
	}
}

func (s *cacheStats) recordHit() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.hits++
}

func (s *cacheStats) recordMiss() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.misses++
}

func (s *cacheStats) now() time.Time {
	return s.clock.Now()
}
