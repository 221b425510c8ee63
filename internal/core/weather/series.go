package weather

import (
	"encoding/json"
	"sort"
	"time"

	"weathernotify.app/pkg/errors"
)

// MaxSelectableTimes caps the number of forecast times offered for selection
const MaxSelectableTimes = 25

// Series is an ordered collection of forecast snapshots, kept in provider order
type Series struct {
	snapshots []Snapshot
}

// NewSeries copies the snapshots into a series
func NewSeries(snapshots []Snapshot) Series {
	copied := make([]Snapshot, len(snapshots))
	copy(copied, snapshots)
	return Series{snapshots: copied}
}

// Len returns the number of snapshots
func (s Series) Len() int {
	return len(s.snapshots)
}

// At returns the snapshot at position i in provider order
func (s Series) At(i int) (Snapshot, bool) {
	if i < 0 || i >= len(s.snapshots) {
		return Snapshot{}, false
	}
	return s.snapshots[i], true
}

// Snapshots returns a copy of the snapshots in provider order
func (s Series) Snapshots() []Snapshot {
	copied := make([]Snapshot, len(s.snapshots))
	copy(copied, s.snapshots)
	return copied
}

// Nearest returns the snapshot whose observation instant is closest to t.
// Ties go to the snapshot encountered first. Snapshots with an unknown instant
// are skipped.
func (s Series) Nearest(t time.Time) (Snapshot, error) {
	var (
		best      Snapshot
		bestDelta time.Duration
		found     bool
	)

	for _, snapshot := range s.snapshots {
		instant, ok := snapshot.Time.Get()
		if !ok {
			continue
		}
		delta := absDuration(instant.Sub(t))
		if !found || delta < bestDelta {
			best, bestDelta, found = snapshot, delta, true
		}
	}

	if !found {
		return Snapshot{}, errors.NewEmptySeriesError("forecast series has no timed entries")
	}
	return best, nil
}

// SortedTimes returns the known observation instants in ascending order
func (s Series) SortedTimes() []time.Time {
	times := make([]time.Time, 0, len(s.snapshots))
	for _, snapshot := range s.snapshots {
		if instant, ok := snapshot.Time.Get(); ok {
			times = append(times, instant)
		}
	}
	sort.SliceStable(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// SelectableTimes returns the first limit sorted instants, capped at MaxSelectableTimes
func (s Series) SelectableTimes(limit int) []time.Time {
	if limit <= 0 || limit > MaxSelectableTimes {
		limit = MaxSelectableTimes
	}
	times := s.SortedTimes()
	if len(times) > limit {
		times = times[:limit]
	}
	return times
}

// MarshalJSON renders the snapshots in provider order
func (s Series) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshots())
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
