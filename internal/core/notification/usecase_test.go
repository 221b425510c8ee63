package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weathernotify.app/internal/core/subscription"
	"weathernotify.app/internal/core/weather"
	mocks "weathernotify.app/internal/mocks"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
	"weathernotify.app/pkg/payload"
)

var jst = time.FixedZone("JST", 9*3600)

// 2024-05-02 00:05 JST
var tickTime = time.Date(2024, 5, 2, 0, 5, 0, 0, jst)

const tokyoPayload = `{
	"coord": {"lon": 139.692, "lat": 35.689},
	"weather": [{"id": 500, "main": "Rain", "description": "小雨", "icon": "10n"}],
	"main": {"temp": 18.4, "temp_min": 17.2, "temp_max": 19.9, "pressure": 1012, "humidity": 82},
	"dt": 1714575900,
	"timezone": 32400,
	"name": "Tokyo"
}`

type testMocks struct {
	repo     *mocks.SubscriptionRepository
	fetcher  *mocks.WeatherFetcher
	notifier *mocks.Notifier
	config   *mocks.ConfigProvider
	logger   *mocks.Logger
	metrics  *mocks.MetricsCollector
	clock    *fakeclock.FakeClock
}

func newTestMocks(t *testing.T, repo ports.SubscriptionRepository) (*UseCase, testMocks) {
	m := testMocks{
		repo:     mocks.NewSubscriptionRepository(t),
		fetcher:  mocks.NewWeatherFetcher(t),
		notifier: mocks.NewNotifier(t),
		config:   mocks.NewConfigProvider(t),
		logger:   mocks.NewLogger(t),
		metrics:  mocks.NewMetricsCollector(t),
		clock:    fakeclock.NewFakeClock(tickTime),
	}
	if repo == nil {
		repo = m.repo
	}

	m.config.EXPECT().GetSchedulerConfig().Return(ports.SchedulerConfig{
		Location:        jst,
		DefaultTimes:    []int{5},
		Window:          2 * time.Minute,
		DeliveryTimeout: 5 * time.Second,
	}).Maybe()
	m.config.EXPECT().GetWeatherConfig().Return(ports.WeatherConfig{AssetHost: "openweathermap.org"}).Maybe()

	m.logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	m.logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	m.logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	m.logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	m.metrics.EXPECT().RecordTick(mock.Anything, mock.Anything).Return().Maybe()
	m.metrics.EXPECT().RecordDelivery(mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	m.notifier.EXPECT().GetNotifierName().Return("test").Maybe()

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		Fetcher: m.fetcher,
		Cache:   mocks.NewPayloadCache(t),
		Config:  m.config,
		Logger:  m.logger,
		Metrics: m.metrics,
	})
	require.NoError(t, err)

	uc, err := NewUseCase(UseCaseDependencies{
		SubscriptionRepo: repo,
		WeatherUseCase:   weatherUseCase,
		Notifier:         m.notifier,
		Config:           m.config,
		Logger:           m.logger,
		Metrics:          m.metrics,
		Clock:            m.clock,
	})
	require.NoError(t, err)
	return uc, m
}

func decode(t *testing.T, raw string) payload.Node {
	t.Helper()
	node, err := payload.Decode([]byte(raw))
	require.NoError(t, err)
	return node
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func tokyoRecord(channelID int64, lastFired *time.Time) *ports.SubscriptionData {
	return &ports.SubscriptionData{
		ChannelID: channelID,
		TimeOfDay: 5,
		Interval:  24 * time.Hour,
		LastFired: lastFired,
		Lat:       35.689,
		Lon:       139.692,
	}
}

func TestRunTick_DeliversCurrentWeatherAndAdvancesLastFired(t *testing.T) {
	uc, m := newTestMocks(t, nil)
	yesterday := tickTime.AddDate(0, 0, -1)

	m.repo.EXPECT().ListDue(mock.Anything, mock.MatchedBy(func(now time.Time) bool { return now.Equal(tickTime) }), 2*time.Minute).
		Return([]*ports.SubscriptionData{tokyoRecord(100, &yesterday)}, nil)
	m.fetcher.EXPECT().FetchCurrent(mock.Anything, ports.Location{Lat: 35.689, Lon: 139.692}).
		Return(decode(t, tokyoPayload), nil).Once()

	var delivered []ports.Notification
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything).
		Run(func(_ context.Context, notification ports.Notification) {
			delivered = append(delivered, notification)
		}).
		Return(nil).Once()
	m.repo.EXPECT().UpdateLastFired(mock.Anything, mock.MatchedBy(func(u ports.LastFiredUpdate) bool {
		return u.ChannelID == 100 && u.Previous != nil && u.Previous.Equal(yesterday) && u.FiredAt.Equal(tickTime)
	})).Return(true, nil).Once()

	report, err := uc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Due)
	assert.Equal(t, 1, report.Fired)
	assert.NotEmpty(t, report.TickID)

	require.Len(t, delivered, 1)
	message := delivered[0].Message
	assert.Equal(t, int64(100), delivered[0].ChannelID)
	assert.Equal(t, "Tokyo", message.Title)
	assert.Equal(t, "現在00時05分時点でのお天気は小雨です。", message.Description)
	assert.Equal(t, "https://openweathermap.org/img/wn/10n@4x.png", message.ThumbnailURL)
	assert.Equal(t, "18.4°C", message.Fields[0].Value)
	assert.Equal(t, FooterText, message.Footer)

	outcome, ok := report.Outcome(100)
	require.True(t, ok)
	assert.Equal(t, StateFired, outcome.State)
}

func TestRunTick_FailedDeliveryIsIsolated(t *testing.T) {
	uc, m := newTestMocks(t, nil)
	yesterday := tickTime.AddDate(0, 0, -1)

	m.repo.EXPECT().ListDue(mock.Anything, mock.Anything, mock.Anything).Return([]*ports.SubscriptionData{
		tokyoRecord(1, &yesterday),
		tokyoRecord(2, &yesterday),
		tokyoRecord(3, nil),
	}, nil)
	m.fetcher.EXPECT().FetchCurrent(mock.Anything, mock.Anything).Return(decode(t, tokyoPayload), nil).Times(3)
	m.notifier.EXPECT().Notify(mock.Anything, mock.MatchedBy(func(n ports.Notification) bool { return n.ChannelID != 2 })).Return(nil).Twice()
	m.notifier.EXPECT().Notify(mock.Anything, mock.MatchedBy(func(n ports.Notification) bool { return n.ChannelID == 2 })).Return(assert.AnError).Once()
	m.repo.EXPECT().UpdateLastFired(mock.Anything, mock.MatchedBy(func(u ports.LastFiredUpdate) bool {
		return u.ChannelID == 1 && u.Previous != nil && u.Previous.Equal(yesterday) && u.FiredAt.Equal(tickTime)
	})).Return(true, nil).Once()
	m.repo.EXPECT().UpdateLastFired(mock.Anything, mock.MatchedBy(func(u ports.LastFiredUpdate) bool {
		return u.ChannelID == 3 && u.Previous == nil && u.FiredAt.Equal(tickTime)
	})).Return(true, nil).Once()

	report, err := uc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Due)
	assert.Equal(t, 2, report.Fired)
	assert.Equal(t, 1, report.Failed)

	failed, ok := report.Outcome(2)
	require.True(t, ok)
	assert.Equal(t, ResultFailed, failed.Result)
	assert.True(t, errors.IsDeliveryError(failed.Err))
}

func TestRunTick_FetchFailureCountsAsFailedDelivery(t *testing.T) {
	uc, m := newTestMocks(t, nil)

	m.repo.EXPECT().ListDue(mock.Anything, mock.Anything, mock.Anything).
		Return([]*ports.SubscriptionData{tokyoRecord(1, nil)}, nil)
	m.fetcher.EXPECT().FetchCurrent(mock.Anything, mock.Anything).Return(payload.Null(), assert.AnError)

	report, err := uc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	m.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	m.repo.AssertNotCalled(t, "UpdateLastFired", mock.Anything, mock.Anything)
}

func TestRunTick_SkipsIneligible(t *testing.T) {
	uc, m := newTestMocks(t, nil)

	m.repo.EXPECT().ListDue(mock.Anything, mock.Anything, mock.Anything).
		Return([]*ports.SubscriptionData{tokyoRecord(1, timePtr(tickTime.Add(-time.Hour)))}, nil)

	report, err := uc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Fired)
}

func TestRunTick_ListDueFailureAbortsTick(t *testing.T) {
	uc, m := newTestMocks(t, nil)

	m.repo.EXPECT().ListDue(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.NewDatabaseError("list due subscriptions", assert.AnError))

	report, err := uc.RunTick(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsDatabaseError(err))
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Due)
}

func TestRunTick_ConcurrentUpdateIsReportedAsConflict(t *testing.T) {
	uc, m := newTestMocks(t, nil)

	m.repo.EXPECT().ListDue(mock.Anything, mock.Anything, mock.Anything).
		Return([]*ports.SubscriptionData{tokyoRecord(1, nil)}, nil)
	m.fetcher.EXPECT().FetchCurrent(mock.Anything, mock.Anything).Return(decode(t, tokyoPayload), nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything).Return(nil)
	m.repo.EXPECT().UpdateLastFired(mock.Anything, mock.Anything).Return(false, nil)

	report, err := uc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Conflict)
	assert.Equal(t, 0, report.Fired)
}

func TestRunTick_WriteBackFailureIsReturned(t *testing.T) {
	uc, m := newTestMocks(t, nil)

	m.repo.EXPECT().ListDue(mock.Anything, mock.Anything, mock.Anything).
		Return([]*ports.SubscriptionData{tokyoRecord(1, nil), tokyoRecord(2, nil)}, nil)
	m.fetcher.EXPECT().FetchCurrent(mock.Anything, mock.Anything).Return(decode(t, tokyoPayload), nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything).Return(nil)
	m.repo.EXPECT().UpdateLastFired(mock.Anything, mock.MatchedBy(func(u ports.LastFiredUpdate) bool { return u.ChannelID == 1 })).
		Return(false, errors.NewDatabaseError("update last fired", assert.AnError))
	m.repo.EXPECT().UpdateLastFired(mock.Anything, mock.MatchedBy(func(u ports.LastFiredUpdate) bool { return u.ChannelID == 2 })).
		Return(true, nil)

	report, err := uc.RunTick(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsDatabaseError(err))
	assert.Equal(t, 1, report.Fired)
	assert.Equal(t, 1, report.Failed)
}

func TestRunTick_DeliveryTimeout(t *testing.T) {
	uc, m := newTestMocks(t, nil)
	m.config.ExpectedCalls = nil
	m.config.EXPECT().GetSchedulerConfig().Return(ports.SchedulerConfig{
		Location:        jst,
		Window:          2 * time.Minute,
		DeliveryTimeout: 20 * time.Millisecond,
	}).Maybe()
	m.config.EXPECT().GetWeatherConfig().Return(ports.WeatherConfig{AssetHost: "openweathermap.org"}).Maybe()

	m.repo.EXPECT().ListDue(mock.Anything, mock.Anything, mock.Anything).
		Return([]*ports.SubscriptionData{tokyoRecord(1, nil)}, nil)
	m.fetcher.EXPECT().FetchCurrent(mock.Anything, mock.Anything).Return(decode(t, tokyoPayload), nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ ports.Notification) error {
			<-ctx.Done()
			return ctx.Err()
		})

	report, err := uc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	outcome, _ := report.Outcome(1)
	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
}

func TestRunTick_ForecastSubscriptionUsesNearestEntry(t *testing.T) {
	uc, m := newTestMocks(t, nil)
	record := tokyoRecord(9, nil)
	record.IsForecast = true

	m.repo.EXPECT().ListDue(mock.Anything, mock.Anything, mock.Anything).Return([]*ports.SubscriptionData{record}, nil)
	m.fetcher.EXPECT().FetchForecast(mock.Anything, mock.Anything).Return(decode(t, `{
		"list": [
			{"dt": 1714564800, "main": {"temp": 15.0}, "weather": [{"description": "晴天", "icon": "01n"}]},
			{"dt": 1714575600, "main": {"temp": 14.0}, "weather": [{"description": "曇りがち", "icon": "04n"}]}
		],
		"city": {"name": "Tokyo", "timezone": 32400}
	}`), nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Message.Description == "2024年05月02日00時00分時点でのお天気は曇りがちと予測されています。" &&
			n.Message.Fields[0].Value == "14°C"
	})).Return(nil)
	m.repo.EXPECT().UpdateLastFired(mock.Anything, mock.Anything).Return(true, nil)

	report, err := uc.RunTick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Fired)
}

// memoryRepository is a minimal store honouring the window and compare-and-swap rules
type memoryRepository struct {
	ports.SubscriptionRepository
	mu      sync.Mutex
	records map[int64]ports.SubscriptionData
}

func (r *memoryRepository) ListDue(_ context.Context, now time.Time, window time.Duration) ([]*ports.SubscriptionData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []*ports.SubscriptionData
	for _, record := range r.records {
		if subscription.TimeOfDay(record.TimeOfDay).Within(now, window) {
			copied := record
			due = append(due, &copied)
		}
	}
	return due, nil
}

func (r *memoryRepository) UpdateLastFired(_ context.Context, update ports.LastFiredUpdate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record := r.records[update.ChannelID]
	current := record.LastFired
	switch {
	case current != nil && current.Equal(update.FiredAt):
		return true, nil
	case (current == nil) != (update.Previous == nil):
		return false, nil
	case current != nil && !current.Equal(*update.Previous):
		return false, nil
	}
	record.LastFired = timePtr(update.FiredAt)
	r.records[update.ChannelID] = record
	return true, nil
}

func TestRunTick_FiresOncePerDay(t *testing.T) {
	repo := &memoryRepository{records: map[int64]ports.SubscriptionData{
		1: *tokyoRecord(1, timePtr(tickTime.Add(-25*time.Hour))),
	}}
	uc, m := newTestMocks(t, repo)

	m.fetcher.EXPECT().FetchCurrent(mock.Anything, mock.Anything).Return(decode(t, tokyoPayload), nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything).Return(nil).Twice()

	report, err := uc.RunTick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fired)
	assert.True(t, repo.records[1].LastFired.Equal(tickTime))

	m.clock.Increment(30 * time.Second)
	report, err = uc.RunTick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Due)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Fired)

	m.clock.Increment(24*time.Hour - 30*time.Second)
	report, err = uc.RunTick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fired)
	assert.True(t, repo.records[1].LastFired.Equal(tickTime.Add(24*time.Hour)))
}

func TestSendNow_DoesNotTouchLastFired(t *testing.T) {
	uc, m := newTestMocks(t, nil)

	m.repo.EXPECT().FindByChannel(mock.Anything, int64(5)).Return(tokyoRecord(5, nil), nil)
	m.fetcher.EXPECT().FetchCurrent(mock.Anything, mock.Anything).Return(decode(t, tokyoPayload), nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, uc.SendNow(context.Background(), 5))
	m.repo.AssertNotCalled(t, "UpdateLastFired", mock.Anything, mock.Anything)
}

func TestMessages_UnknownValues(t *testing.T) {
	message := CurrentMessage(weather.Snapshot{}, "")

	assert.Equal(t, "不明", message.Title)
	assert.Equal(t, "現在不明時点でのお天気は不明です。", message.Description)
	assert.Equal(t, "不明", message.Fields[0].Value)
	assert.Len(t, message.Fields, 5)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "IDLE", StateIdle.String())
	assert.Equal(t, "DUE", StateDue.String())
	assert.Equal(t, "FIRING", StateFiring.String())
	assert.Equal(t, "FIRED", StateFired.String())
}
