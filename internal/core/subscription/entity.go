package subscription

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"weathernotify.app/internal/core/weather"
	"weathernotify.app/pkg/validation"
)

const (
	// MinutesPerDay is the number of distinct times of day
	MinutesPerDay = 24 * 60

	// DefaultInterval is the repeat interval of a new subscription
	DefaultInterval = 24 * time.Hour

	// MinInterval is the shortest repeat interval a subscription may use
	MinInterval = time.Hour
)

// TimeOfDay is a wall-clock time with minute precision, stored as minutes after midnight
type TimeOfDay int

// NewTimeOfDay builds a time of day from an hour and a minute
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time of day %02d:%02d is out of range", hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay parses a 24-hour HH:MM string
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	value = strings.TrimSpace(value)
	if !validation.IsValidTimeOfDay(value) {
		return 0, fmt.Errorf("time of day %q must be HH:MM", value)
	}
	hour, minute, _ := strings.Cut(value, ":")
	h, _ := strconv.Atoi(hour)
	m, _ := strconv.Atoi(minute)
	return NewTimeOfDay(h, m)
}

// TimeOfDayOf returns the wall-clock time of t in t's zone
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// IsValid checks that the value lies within one day
func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t < MinutesPerDay
}

// Hour returns the hour component
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute returns the minute component
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Minutes returns the number of minutes after midnight
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// String returns the HH:MM representation
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On returns the instant of this time of day on day's date, in day's zone
func (t TimeOfDay) On(day time.Time) time.Time {
	year, month, date := day.Date()
	return time.Date(year, month, date, t.Hour(), t.Minute(), 0, 0, day.Location())
}

// DistanceTo returns the shortest distance in minutes between two times of day,
// measured around the clock face
func (t TimeOfDay) DistanceTo(other TimeOfDay) int {
	diff := int(t) - int(other)
	if diff < 0 {
		diff = -diff
	}
	if MinutesPerDay-diff < diff {
		return MinutesPerDay - diff
	}
	return diff
}

// Within reports whether t lies in [now-window, now+window], wrapping around midnight
func (t TimeOfDay) Within(now time.Time, window time.Duration) bool {
	return time.Duration(t.DistanceTo(TimeOfDayOf(now)))*time.Minute <= window
}

// MarshalJSON implements json.Marshaler interface
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler interface
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler for form parsing
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for form parsing
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Subscription is a channel's preference for recurring weather notifications
type Subscription struct {
	ChannelID  int64
	TimeOfDay  TimeOfDay
	Interval   time.Duration
	LastFired  *time.Time
	Location   weather.Location
	IsForecast bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSubscription creates a subscription that has never fired
func NewSubscription(channelID int64, timeOfDay TimeOfDay, interval time.Duration, loc weather.Location, isForecast bool, now time.Time) *Subscription {
	if interval == 0 {
		interval = DefaultInterval
	}
	return &Subscription{
		ChannelID:  channelID,
		TimeOfDay:  timeOfDay,
		Interval:   interval,
		Location:   loc,
		IsForecast: isForecast,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsValid validates subscription data
func (s *Subscription) IsValid() error {
	if !validation.IsPositiveID(s.ChannelID) {
		return errors.New("channel id must be positive")
	}
	if !s.TimeOfDay.IsValid() {
		return errors.New("time of day must be between 00:00 and 23:59")
	}
	if s.Interval < MinInterval {
		return fmt.Errorf("interval must be at least %s", MinInterval)
	}
	if err := s.Location.IsValid(); err != nil {
		return err
	}
	return nil
}

// IsEligible reports whether the subscription may fire at now. A subscription
// that never fired is always eligible; otherwise one interval, less the
// tolerance, must have passed since the last fire.
func (s *Subscription) IsEligible(now time.Time, tolerance time.Duration) bool {
	if s.LastFired == nil {
		return true
	}
	return !now.Before(s.LastFired.Add(s.Interval - tolerance))
}

// IsDue reports whether the subscription's time of day falls in the tick window at now
func (s *Subscription) IsDue(now time.Time, window time.Duration) bool {
	return s.TimeOfDay.Within(now, window)
}

// MarkFired records a successful delivery at the given instant
func (s *Subscription) MarkFired(at time.Time) {
	fired := at
	s.LastFired = &fired
	s.UpdatedAt = at
}

// NextFire returns the earliest instant at or after now at which the
// subscription will be both due and eligible
func (s *Subscription) NextFire(now time.Time, tolerance time.Duration) time.Time {
	candidate := s.TimeOfDay.On(now)
	if candidate.Before(now.Add(-tolerance)) {
		candidate = s.TimeOfDay.On(now.AddDate(0, 0, 1))
	}
	if s.LastFired == nil {
		return candidate
	}
	earliest := s.LastFired.Add(s.Interval - tolerance)
	for candidate.Add(tolerance).Before(earliest) {
		candidate = s.TimeOfDay.On(candidate.AddDate(0, 0, 1))
	}
	return candidate
}
