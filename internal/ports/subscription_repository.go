package ports

import (
	"context"
	"time"
)

// SubscriptionData represents subscription data for persistence
type SubscriptionData struct {
	ChannelID  int64
	TimeOfDay  int // minutes after midnight in the scheduler zone
	Interval   time.Duration
	LastFired  *time.Time
	Lat        float64
	Lon        float64
	IsForecast bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LastFiredUpdate is a compare-and-swap of a subscription's last fired instant.
// Previous is the value observed when the record was read (nil when never fired).
type LastFiredUpdate struct {
	ChannelID int64
	Previous  *time.Time
	FiredAt   time.Time
}

// SubscriptionRepository defines the contract for subscription data persistence
type SubscriptionRepository interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, sub *SubscriptionData) error
	FindByChannel(ctx context.Context, channelID int64) (*SubscriptionData, error)
	Delete(ctx context.Context, channelID int64) error
	List(ctx context.Context) ([]*SubscriptionData, error)
	ListTimes(ctx context.Context) ([]int, error)
	// ListDue returns subscriptions whose time of day lies within
	// [now-window, now+window], wrapping around midnight. now carries the
	// scheduler zone.
	ListDue(ctx context.Context, now time.Time, window time.Duration) ([]*SubscriptionData, error)
	// UpdateLastFired applies the update only when last_fired still equals
	// Previous or already equals FiredAt. It reports whether the row holds FiredAt.
	UpdateLastFired(ctx context.Context, update LastFiredUpdate) (bool, error)
}
