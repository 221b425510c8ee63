package subscription

import (
	"context"
	"fmt"
	"sort"
	"time"

	"code.cloudfoundry.org/clock"
	"weathernotify.app/internal/core/weather"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
)

type UseCase struct {
	subscriptionRepo ports.SubscriptionRepository
	scheduler        ports.TickScheduler
	config           ports.ConfigProvider
	logger           ports.Logger
	clock            clock.Clock
}

type UseCaseDependencies struct {
	SubscriptionRepo ports.SubscriptionRepository
	// Scheduler is optional; when set it is rescheduled after every change
	Scheduler ports.TickScheduler
	Config    ports.ConfigProvider
	Logger    ports.Logger
	Clock     clock.Clock
}

type RegisterParams struct {
	ChannelID  int64
	TimeOfDay  string
	Interval   time.Duration
	Lat        float64
	Lon        float64
	IsForecast bool
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.SubscriptionRepo == nil {
		return nil, errors.NewValidationError("subscription repository is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Clock == nil {
		return nil, errors.NewValidationError("clock is required")
	}

	return &UseCase{
		subscriptionRepo: deps.SubscriptionRepo,
		scheduler:        deps.Scheduler,
		config:           deps.Config,
		logger:           deps.Logger,
		clock:            deps.Clock,
	}, nil
}

// SetScheduler attaches the tick driver once it has been built
func (uc *UseCase) SetScheduler(scheduler ports.TickScheduler) {
	uc.scheduler = scheduler
}

// Register creates a channel's subscription or replaces its preference.
// A replaced subscription keeps its last fired instant.
func (uc *UseCase) Register(ctx context.Context, params RegisterParams) (*Subscription, error) {
	timeOfDay, err := ParseTimeOfDay(params.TimeOfDay)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	now := uc.clock.Now()
	subscription := NewSubscription(params.ChannelID, timeOfDay, params.Interval,
		weather.Location{Lat: params.Lat, Lon: params.Lon}, params.IsForecast, now)
	if err := subscription.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid subscription: " + err.Error())
	}

	uc.logger.Debug("Registering subscription",
		ports.F("channelID", params.ChannelID),
		ports.F("timeOfDay", timeOfDay.String()),
		ports.F("interval", subscription.Interval.String()),
		ports.F("isForecast", params.IsForecast))

	existing, err := uc.subscriptionRepo.FindByChannel(ctx, params.ChannelID)
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, fmt.Errorf("check existing subscription: %w", err)
	}
	if existing != nil {
		subscription.LastFired = existing.LastFired
		subscription.CreatedAt = existing.CreatedAt
	}

	if err := uc.subscriptionRepo.Save(ctx, toPortsSubscription(subscription)); err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}

	uc.reschedule(ctx)

	uc.logger.Info("Subscription registered",
		ports.F("channelID", params.ChannelID),
		ports.F("timeOfDay", timeOfDay.String()),
		ports.F("replaced", existing != nil))
	return subscription, nil
}

// Cancel removes a channel's subscription
func (uc *UseCase) Cancel(ctx context.Context, channelID int64) error {
	if channelID <= 0 {
		return errors.NewValidationError("channel id must be positive")
	}

	if err := uc.subscriptionRepo.Delete(ctx, channelID); err != nil {
		if errors.IsNotFoundError(err) {
			return err
		}
		return fmt.Errorf("delete subscription: %w", err)
	}

	uc.reschedule(ctx)

	uc.logger.Info("Subscription cancelled", ports.F("channelID", channelID))
	return nil
}

// Get returns a channel's subscription
func (uc *UseCase) Get(ctx context.Context, channelID int64) (*Subscription, error) {
	data, err := uc.subscriptionRepo.FindByChannel(ctx, channelID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return fromPortsSubscription(data), nil
}

// List returns every subscription
func (uc *UseCase) List(ctx context.Context) ([]*Subscription, error) {
	data, err := uc.subscriptionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	subscriptions := make([]*Subscription, len(data))
	for i, item := range data {
		subscriptions[i] = fromPortsSubscription(item)
	}
	return subscriptions, nil
}

// TickTimes returns the distinct times of day the tick driver must run at:
// the configured defaults plus every subscription's time of day
func (uc *UseCase) TickTimes(ctx context.Context) ([]TimeOfDay, error) {
	stored, err := uc.subscriptionRepo.ListTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscription times: %w", err)
	}

	seen := make(map[TimeOfDay]struct{})
	times := make([]TimeOfDay, 0, len(stored)+1)
	add := func(minutes int) {
		timeOfDay := TimeOfDay(minutes)
		if !timeOfDay.IsValid() {
			return
		}
		if _, ok := seen[timeOfDay]; ok {
			return
		}
		seen[timeOfDay] = struct{}{}
		times = append(times, timeOfDay)
	}

	for _, minutes := range uc.config.GetSchedulerConfig().DefaultTimes {
		add(minutes)
	}
	for _, minutes := range stored {
		add(minutes)
	}

	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times, nil
}

func (uc *UseCase) reschedule(ctx context.Context) {
	if uc.scheduler == nil {
		return
	}
	if err := uc.scheduler.Reschedule(ctx); err != nil {
		uc.logger.Warn("Failed to reschedule notification ticks", ports.F("error", err))
	}
}

func toPortsSubscription(sub *Subscription) *ports.SubscriptionData {
	return &ports.SubscriptionData{
		ChannelID:  sub.ChannelID,
		TimeOfDay:  sub.TimeOfDay.Minutes(),
		Interval:   sub.Interval,
		LastFired:  sub.LastFired,
		Lat:        sub.Location.Lat,
		Lon:        sub.Location.Lon,
		IsForecast: sub.IsForecast,
		CreatedAt:  sub.CreatedAt,
		UpdatedAt:  sub.UpdatedAt,
	}
}

func fromPortsSubscription(data *ports.SubscriptionData) *Subscription {
	return &Subscription{
		ChannelID:  data.ChannelID,
		TimeOfDay:  TimeOfDay(data.TimeOfDay),
		Interval:   data.Interval,
		LastFired:  data.LastFired,
		Location:   weather.Location{Lat: data.Lat, Lon: data.Lon},
		IsForecast: data.IsForecast,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// FromData converts a persisted record into a subscription
func FromData(data *ports.SubscriptionData) *Subscription {
	return fromPortsSubscription(data)
}
