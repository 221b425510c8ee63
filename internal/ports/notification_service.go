package ports

import "context"

// TickScheduler drives notification ticks at the configured times of day
type TickScheduler interface {
	Start(ctx context.Context) error
	Reschedule(ctx context.Context) error
	Stop()
}
