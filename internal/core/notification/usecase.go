package notification

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/google/uuid"
	"weathernotify.app/internal/core/subscription"
	"weathernotify.app/internal/core/weather"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
)

type UseCase struct {
	subscriptionRepo ports.SubscriptionRepository
	weatherUseCase   *weather.UseCase
	notifier         ports.Notifier
	config           ports.ConfigProvider
	logger           ports.Logger
	metrics          ports.MetricsCollector
	clock            clock.Clock

	// held for a whole tick so ticks never overlap within one process
	tickMu sync.Mutex
}

type UseCaseDependencies struct {
	SubscriptionRepo ports.SubscriptionRepository
	WeatherUseCase   *weather.UseCase
	Notifier         ports.Notifier
	Config           ports.ConfigProvider
	Logger           ports.Logger
	Metrics          ports.MetricsCollector
	Clock            clock.Clock
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.SubscriptionRepo == nil {
		return nil, errors.NewValidationError("subscription repository is required")
	}
	if deps.WeatherUseCase == nil {
		return nil, errors.NewValidationError("weather use case is required")
	}
	if deps.Notifier == nil {
		return nil, errors.NewValidationError("notifier is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}
	if deps.Clock == nil {
		return nil, errors.NewValidationError("clock is required")
	}

	return &UseCase{
		subscriptionRepo: deps.SubscriptionRepo,
		weatherUseCase:   deps.WeatherUseCase,
		notifier:         deps.Notifier,
		config:           deps.Config,
		logger:           deps.Logger,
		metrics:          deps.Metrics,
		clock:            deps.Clock,
	}, nil
}

// RunTick processes every subscription due at the current time.
//
// Due subscriptions are delivered one after another; a failed delivery is
// logged and leaves the subscription's last fired instant untouched so that a
// later tick retries it. Successful deliveries are written back together once
// all deliveries finished, each as a compare-and-swap against the instant read
// at the start of the tick. A failure to list due subscriptions aborts the tick.
func (uc *UseCase) RunTick(ctx context.Context) (*TickReport, error) {
	uc.tickMu.Lock()
	defer uc.tickMu.Unlock()

	schedulerConfig := uc.config.GetSchedulerConfig()
	started := uc.clock.Now()
	now := started.In(zoneOf(schedulerConfig)).Truncate(time.Second)

	report := &TickReport{TickID: uuid.New().String(), At: now}
	tickLog := []ports.Field{ports.F("tickID", report.TickID), ports.F("at", now.Format(time.RFC3339))}

	uc.logger.Info("Starting notification tick", tickLog...)

	records, err := uc.subscriptionRepo.ListDue(ctx, now, schedulerConfig.Window)
	if err != nil {
		uc.logger.Error("Failed to list due subscriptions", append(tickLog, ports.F("error", err))...)
		report.Duration = uc.clock.Since(started)
		uc.metrics.RecordTick(ctx, report.Result())
		return report, fmt.Errorf("list due subscriptions: %w", err)
	}
	report.Due = len(records)

	var pending []ports.LastFiredUpdate
	for _, record := range records {
		sub := subscription.FromData(record)
		uc.transition(report.TickID, sub.ChannelID, StateIdle, StateDue)

		if !sub.IsEligible(now, schedulerConfig.Window) {
			uc.transition(report.TickID, sub.ChannelID, StateDue, StateIdle)
			report.record(Outcome{ChannelID: sub.ChannelID, State: StateIdle, Result: ResultSkipped})
			continue
		}

		uc.transition(report.TickID, sub.ChannelID, StateDue, StateFiring)
		if err := uc.deliver(ctx, sub, now, schedulerConfig.DeliveryTimeout); err != nil {
			uc.logger.Error("Failed to deliver notification",
				append(tickLog, ports.F("channelID", sub.ChannelID), ports.F("error", err))...)
			uc.metrics.RecordDelivery(ctx, uc.notifier.GetNotifierName(), false)
			uc.transition(report.TickID, sub.ChannelID, StateFiring, StateIdle)
			report.record(Outcome{ChannelID: sub.ChannelID, State: StateIdle, Result: ResultFailed, Err: err})
			continue
		}
		uc.metrics.RecordDelivery(ctx, uc.notifier.GetNotifierName(), true)

		pending = append(pending, ports.LastFiredUpdate{
			ChannelID: sub.ChannelID,
			Previous:  record.LastFired,
			FiredAt:   now,
		})
	}

	writeErr := uc.writeBack(ctx, report, pending, tickLog)

	report.Duration = uc.clock.Since(started)
	uc.metrics.RecordTick(ctx, report.Result())

	uc.logger.Info("Notification tick completed",
		append(tickLog,
			ports.F("due", report.Due),
			ports.F("skipped", report.Skipped),
			ports.F("fired", report.Fired),
			ports.F("failed", report.Failed),
			ports.F("conflicts", report.Conflict),
			ports.F("duration", report.Duration.String()))...)

	if writeErr != nil {
		return report, fmt.Errorf("write back last fired: %w", writeErr)
	}
	return report, nil
}

// SendNow delivers a channel's notification immediately without touching its
// last fired instant
func (uc *UseCase) SendNow(ctx context.Context, channelID int64) error {
	record, err := uc.subscriptionRepo.FindByChannel(ctx, channelID)
	if err != nil {
		return fmt.Errorf("find subscription: %w", err)
	}

	schedulerConfig := uc.config.GetSchedulerConfig()
	now := uc.clock.Now().In(zoneOf(schedulerConfig))
	if err := uc.deliver(ctx, subscription.FromData(record), now, schedulerConfig.DeliveryTimeout); err != nil {
		uc.metrics.RecordDelivery(ctx, uc.notifier.GetNotifierName(), false)
		return err
	}
	uc.metrics.RecordDelivery(ctx, uc.notifier.GetNotifierName(), true)
	return nil
}

// Preview renders the message a channel would receive now
func (uc *UseCase) Preview(ctx context.Context, channelID int64) (ports.Message, error) {
	record, err := uc.subscriptionRepo.FindByChannel(ctx, channelID)
	if err != nil {
		return ports.Message{}, fmt.Errorf("find subscription: %w", err)
	}
	now := uc.clock.Now().In(zoneOf(uc.config.GetSchedulerConfig()))
	return uc.buildMessage(ctx, subscription.FromData(record), now)
}

func (uc *UseCase) writeBack(ctx context.Context, report *TickReport, pending []ports.LastFiredUpdate, tickLog []ports.Field) error {
	var errs []error
	for _, update := range pending {
		applied, err := uc.subscriptionRepo.UpdateLastFired(ctx, update)
		if err != nil {
			uc.logger.Error("Failed to update last fired",
				append(tickLog, ports.F("channelID", update.ChannelID), ports.F("error", err))...)
			report.record(Outcome{ChannelID: update.ChannelID, State: StateFiring, Result: ResultFailed, Err: err})
			errs = append(errs, err)
			continue
		}
		if !applied {
			uc.logger.Warn("Last fired changed concurrently, skipping update",
				append(tickLog, ports.F("channelID", update.ChannelID))...)
			report.record(Outcome{ChannelID: update.ChannelID, State: StateIdle, Result: ResultConflict})
			continue
		}

		uc.transition(report.TickID, update.ChannelID, StateFiring, StateFired)
		report.record(Outcome{ChannelID: update.ChannelID, State: StateFired, Result: ResultFired})
	}
	return stderrors.Join(errs...)
}

func (uc *UseCase) deliver(ctx context.Context, sub *subscription.Subscription, now time.Time, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	message, err := uc.buildMessage(ctx, sub, now)
	if err != nil {
		return errors.NewDeliveryError("build notification", err)
	}

	notification := ports.Notification{ChannelID: sub.ChannelID, Message: message}
	if err := uc.notifier.Notify(ctx, notification); err != nil {
		return errors.NewDeliveryError(fmt.Sprintf("notify channel %d", sub.ChannelID), err)
	}
	return nil
}

func (uc *UseCase) buildMessage(ctx context.Context, sub *subscription.Subscription, now time.Time) (ports.Message, error) {
	if sub.IsForecast {
		snapshot, err := uc.weatherUseCase.GetForecastAt(ctx, sub.Location, now)
		if err != nil {
			return ports.Message{}, err
		}
		return ForecastMessage(snapshot, uc.weatherUseCase.IconURL(snapshot)), nil
	}

	snapshot, err := uc.weatherUseCase.GetCurrent(ctx, sub.Location)
	if err != nil {
		return ports.Message{}, err
	}
	return CurrentMessage(snapshot, uc.weatherUseCase.IconURL(snapshot)), nil
}

func (uc *UseCase) transition(tickID string, channelID int64, from, to State) {
	uc.logger.Debug("Subscription state changed",
		ports.F("tickID", tickID),
		ports.F("channelID", channelID),
		ports.F("from", from.String()),
		ports.F("to", to.String()))
}

func zoneOf(cfg ports.SchedulerConfig) *time.Location {
	if cfg.Location != nil {
		return cfg.Location
	}
	return time.UTC
}
