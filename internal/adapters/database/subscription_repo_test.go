package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
)

var jst = time.FixedZone("JST", 9*3600)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// every pooled connection to :memory: would see its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewSubscriptionRepositoryAdapter(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))

	return db
}

func newRecord(channelID int64, timeOfDay int, lastFired *time.Time) *ports.SubscriptionData {
	now := time.Now().UTC()
	return &ports.SubscriptionData{
		ChannelID: channelID,
		TimeOfDay: timeOfDay,
		Interval:  24 * time.Hour,
		LastFired: lastFired,
		Lat:       35.689,
		Lon:       139.692,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func seed(t *testing.T, repo ports.SubscriptionRepository, records ...*ports.SubscriptionData) {
	t.Helper()
	for _, record := range records {
		require.NoError(t, repo.Save(context.Background(), record))
	}
}

func TestSubscriptionRepository_SaveAndFind(t *testing.T) {
	repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	record := newRecord(42, 5, nil)
	record.IsForecast = true
	require.NoError(t, repo.Save(ctx, record))

	found, err := repo.FindByChannel(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 5, found.TimeOfDay)
	assert.Equal(t, 24*time.Hour, found.Interval)
	assert.Nil(t, found.LastFired)
	assert.True(t, found.IsForecast)
	assert.InDelta(t, 139.692, found.Lon, 1e-9)
}

func TestSubscriptionRepository_SaveReplacesExisting(t *testing.T) {
	repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	seed(t, repo, newRecord(42, 5, nil))
	replacement := newRecord(42, 450, nil)
	replacement.Interval = 48 * time.Hour
	require.NoError(t, repo.Save(ctx, replacement))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 450, all[0].TimeOfDay)
	assert.Equal(t, 48*time.Hour, all[0].Interval)
}

func TestSubscriptionRepository_SaveValidation(t *testing.T) {
	repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))

	err := repo.Save(context.Background(), nil)
	assert.True(t, errors.IsValidationError(err))

	err = repo.Save(context.Background(), newRecord(0, 5, nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestSubscriptionRepository_FindByChannel_NotFound(t *testing.T) {
	repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))

	_, err := repo.FindByChannel(context.Background(), 999)

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestSubscriptionRepository_Delete(t *testing.T) {
	repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()
	seed(t, repo, newRecord(42, 5, nil))

	require.NoError(t, repo.Delete(ctx, 42))

	_, err := repo.FindByChannel(ctx, 42)
	assert.True(t, errors.IsNotFoundError(err))

	err = repo.Delete(ctx, 42)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestSubscriptionRepository_ListTimes(t *testing.T) {
	repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))
	seed(t, repo, newRecord(1, 450, nil), newRecord(2, 5, nil), newRecord(3, 450, nil))

	times, err := repo.ListTimes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{5, 450}, times)
}

func TestSubscriptionRepository_ListDue(t *testing.T) {
	repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))
	seed(t, repo,
		newRecord(1, 0, nil),    // 00:00
		newRecord(2, 5, nil),    // 00:05
		newRecord(3, 6, nil),    // 00:06
		newRecord(4, 720, nil),  // 12:00
		newRecord(5, 1439, nil), // 23:59
	)

	tests := []struct {
		name     string
		now      time.Time
		window   time.Duration
		expected []int64
	}{
		{"Inclusive", time.Date(2024, 5, 2, 0, 5, 0, 0, jst), time.Minute, []int64{2, 3}},
		{"Midday", time.Date(2024, 5, 2, 12, 0, 30, 0, jst), time.Minute, []int64{4}},
		{"WrapsBeforeMidnight", time.Date(2024, 5, 2, 23, 59, 0, 0, jst), time.Minute, []int64{1, 5}},
		{"WrapsAfterMidnight", time.Date(2024, 5, 2, 0, 0, 0, 0, jst), time.Minute, []int64{1, 5}},
		{"WideWindow", time.Date(2024, 5, 2, 23, 58, 0, 0, jst), 10 * time.Minute, []int64{1, 2, 3, 5}},
		{"WholeDay", time.Date(2024, 5, 2, 8, 0, 0, 0, jst), 12 * time.Hour, []int64{1, 2, 3, 4, 5}},
		{"NothingDue", time.Date(2024, 5, 2, 18, 0, 0, 0, jst), time.Minute, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, err := repo.ListDue(context.Background(), tt.now, tt.window)
			require.NoError(t, err)

			var ids []int64
			for _, record := range due {
				ids = append(ids, record.ChannelID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestSubscriptionRepository_UpdateLastFired(t *testing.T) {
	ctx := context.Background()
	yesterday := time.Date(2024, 5, 1, 0, 5, 0, 0, jst)
	today := time.Date(2024, 5, 2, 0, 5, 0, 0, jst)

	t.Run("FirstFire", func(t *testing.T) {
		repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))
		seed(t, repo, newRecord(1, 5, nil))

		applied, err := repo.UpdateLastFired(ctx, ports.LastFiredUpdate{ChannelID: 1, FiredAt: today})

		require.NoError(t, err)
		assert.True(t, applied)
		found, _ := repo.FindByChannel(ctx, 1)
		require.NotNil(t, found.LastFired)
		assert.True(t, found.LastFired.Equal(today))
	})

	t.Run("MatchingPrevious", func(t *testing.T) {
		repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))
		seed(t, repo, newRecord(1, 5, &yesterday))
		stored, _ := repo.FindByChannel(ctx, 1)

		applied, err := repo.UpdateLastFired(ctx, ports.LastFiredUpdate{ChannelID: 1, Previous: stored.LastFired, FiredAt: today})

		require.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("IdempotentReapply", func(t *testing.T) {
		repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))
		seed(t, repo, newRecord(1, 5, &yesterday))
		update := ports.LastFiredUpdate{ChannelID: 1, Previous: &yesterday, FiredAt: today}

		first, err := repo.UpdateLastFired(ctx, update)
		require.NoError(t, err)
		second, err := repo.UpdateLastFired(ctx, update)
		require.NoError(t, err)

		assert.True(t, first)
		assert.True(t, second)
	})

	t.Run("StalePreviousLoses", func(t *testing.T) {
		repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))
		later := today.Add(time.Minute)
		seed(t, repo, newRecord(1, 5, &later))

		applied, err := repo.UpdateLastFired(ctx, ports.LastFiredUpdate{ChannelID: 1, Previous: &yesterday, FiredAt: today})

		require.NoError(t, err)
		assert.False(t, applied)
		found, _ := repo.FindByChannel(ctx, 1)
		assert.True(t, found.LastFired.Equal(later))
	})

	t.Run("NeverFiredExpectedButFired", func(t *testing.T) {
		repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))
		seed(t, repo, newRecord(1, 5, &yesterday))

		applied, err := repo.UpdateLastFired(ctx, ports.LastFiredUpdate{ChannelID: 1, FiredAt: today})

		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("UnknownChannel", func(t *testing.T) {
		repo := NewSubscriptionRepositoryAdapter(setupTestDB(t))

		_, err := repo.UpdateLastFired(ctx, ports.LastFiredUpdate{ChannelID: 7, FiredAt: today})

		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestDueCondition(t *testing.T) {
	condition, args, ok := dueCondition(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), 2*time.Minute)

	require.True(t, ok)
	assert.Contains(t, condition, "OR")
	assert.Equal(t, []interface{}{1438, 2}, args)

	_, _, ok = dueCondition(time.Now(), 24*time.Hour)
	assert.False(t, ok)
}
