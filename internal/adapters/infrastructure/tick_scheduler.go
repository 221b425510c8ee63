package infrastructure

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"weathernotify.app/internal/core/notification"
	"weathernotify.app/internal/core/subscription"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
)

const tickJobTag = "notification-tick"

// TickRunner runs one notification tick
type TickRunner interface {
	RunTick(ctx context.Context) (*notification.TickReport, error)
}

// TickTimesSource lists the times of day at which ticks must run
type TickTimesSource interface {
	TickTimes(ctx context.Context) ([]subscription.TimeOfDay, error)
}

// GocronTickScheduler implements the TickScheduler port with a daily gocron
// job at every tick time. Singleton mode keeps a slow tick from overlapping
// the next one.
type GocronTickScheduler struct {
	scheduler *gocron.Scheduler
	runner    TickRunner
	times     TickTimesSource
	logger    ports.Logger
	baseCtx   context.Context
	mutex     sync.Mutex
	scheduled []subscription.TimeOfDay
}

// GocronTickSchedulerParams holds parameters for creating the tick scheduler
type GocronTickSchedulerParams struct {
	Location *time.Location
	Runner   TickRunner
	Times    TickTimesSource
	Logger   ports.Logger
}

// NewGocronTickScheduler creates a tick scheduler in the configured zone
func NewGocronTickScheduler(params GocronTickSchedulerParams) (*GocronTickScheduler, error) {
	if params.Runner == nil {
		return nil, errors.NewValidationError("tick runner is required")
	}
	if params.Times == nil {
		return nil, errors.NewValidationError("tick times source is required")
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	location := params.Location
	if location == nil {
		location = time.UTC
	}

	scheduler := gocron.NewScheduler(location)
	scheduler.SingletonModeAll()

	return &GocronTickScheduler{
		scheduler: scheduler,
		runner:    params.Runner,
		times:     params.Times,
		logger:    params.Logger,
		baseCtx:   context.Background(),
	}, nil
}

// Start schedules the tick job and starts the scheduler. Jobs run with a
// context derived from ctx.
func (s *GocronTickScheduler) Start(ctx context.Context) error {
	s.mutex.Lock()
	s.baseCtx = ctx
	s.mutex.Unlock()

	if err := s.Reschedule(ctx); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("Tick scheduler started", ports.F("times", s.ScheduledTimes()))
	return nil
}

// Reschedule replaces the tick job with one at the current tick times
func (s *GocronTickScheduler) Reschedule(ctx context.Context) error {
	times, err := s.times.TickTimes(ctx)
	if err != nil {
		return fmt.Errorf("list tick times: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.scheduler.RemoveByTag(tickJobTag); err != nil && !stderrors.Is(err, gocron.ErrJobNotFoundWithTag) {
		return fmt.Errorf("remove tick job: %w", err)
	}
	s.scheduled = nil

	if len(times) == 0 {
		s.logger.Warn("No tick times configured, scheduler is idle")
		return nil
	}

	_, err = s.scheduler.Every(1).Day().At(atSpec(times)).Tag(tickJobTag).Do(s.tick)
	if err != nil {
		return errors.NewConfigurationError("failed to schedule tick job", err)
	}
	s.scheduled = times

	s.logger.Debug("Tick job scheduled", ports.F("times", atSpec(times)))
	return nil
}

// ScheduledTimes returns the times of day the tick job currently runs at
func (s *GocronTickScheduler) ScheduledTimes() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	times := make([]string, len(s.scheduled))
	for i, t := range s.scheduled {
		times[i] = t.String()
	}
	return times
}

// Stop stops the scheduler and waits for a running tick to return
func (s *GocronTickScheduler) Stop() {
	s.scheduler.Stop()
}

func (s *GocronTickScheduler) tick() {
	s.mutex.Lock()
	ctx := s.baseCtx
	s.mutex.Unlock()

	if ctx.Err() != nil {
		return
	}

	report, err := s.runner.RunTick(ctx)
	if err != nil {
		s.logger.Error("Scheduled tick failed", ports.F("error", err))
		return
	}
	s.logger.Debug("Scheduled tick finished",
		ports.F("tick_id", report.TickID),
		ports.F("fired", report.Fired))
}

func atSpec(times []subscription.TimeOfDay) string {
	specs := make([]string, len(times))
	for i, t := range times {
		specs[i] = t.String()
	}
	return strings.Join(specs, ";")
}
