package database

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
)

const minutesPerDay = 24 * 60

// SubscriptionModel represents the database model for subscriptions
type SubscriptionModel struct {
	ChannelID       int64      `gorm:"primaryKey;autoIncrement:false"`
	TimeOfDay       int        `gorm:"index;not null"`
	IntervalSeconds int64      `gorm:"not null"`
	LastFired       *time.Time `gorm:"index"`
	Lat             float64    `gorm:"not null"`
	Lon             float64    `gorm:"not null"`
	IsForecast      bool       `gorm:"default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (SubscriptionModel) TableName() string {
	return "weather_subscriptions"
}

// SubscriptionRepositoryAdapter implements the SubscriptionRepository port using GORM
type SubscriptionRepositoryAdapter struct {
	db *gorm.DB
}

// NewSubscriptionRepositoryAdapter creates a new subscription repository adapter
func NewSubscriptionRepositoryAdapter(db *gorm.DB) ports.SubscriptionRepository {
	return &SubscriptionRepositoryAdapter{db: db}
}

// EnsureSchema creates the subscription table when it does not exist
func (r *SubscriptionRepositoryAdapter) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&SubscriptionModel{}); err != nil {
		return errors.NewDatabaseError("failed to migrate subscription table", err)
	}
	return nil
}

// Save inserts a subscription or replaces the one stored for the same channel
func (r *SubscriptionRepositoryAdapter) Save(ctx context.Context, sub *ports.SubscriptionData) error {
	if sub == nil {
		return errors.NewValidationError("subscription cannot be nil")
	}
	if sub.ChannelID <= 0 {
		return errors.NewValidationError("channel ID must be positive")
	}

	model := r.dataToModel(sub)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "channel_id"}},
			UpdateAll: true,
		}).
		Create(model)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to save subscription", result.Error)
	}

	return nil
}

// FindByChannel retrieves the subscription of a channel
func (r *SubscriptionRepositoryAdapter) FindByChannel(ctx context.Context, channelID int64) (*ports.SubscriptionData, error) {
	if channelID <= 0 {
		return nil, errors.NewValidationError("channel ID must be positive")
	}

	var model SubscriptionModel
	result := r.db.WithContext(ctx).Where("channel_id = ?", channelID).First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("subscription not found")
		}
		return nil, errors.NewDatabaseError("failed to find subscription", result.Error)
	}

	return r.modelToData(&model), nil
}

// Delete removes the subscription of a channel
func (r *SubscriptionRepositoryAdapter) Delete(ctx context.Context, channelID int64) error {
	if channelID <= 0 {
		return errors.NewValidationError("channel ID must be positive")
	}

	result := r.db.WithContext(ctx).Where("channel_id = ?", channelID).Delete(&SubscriptionModel{})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to delete subscription", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("subscription not found")
	}

	return nil
}

// List retrieves every subscription ordered by time of day
func (r *SubscriptionRepositoryAdapter) List(ctx context.Context) ([]*ports.SubscriptionData, error) {
	var models []SubscriptionModel
	result := r.db.WithContext(ctx).Order("time_of_day, channel_id").Find(&models)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("failed to list subscriptions", result.Error)
	}

	return r.modelsToData(models), nil
}

// ListTimes returns the distinct times of day in use
func (r *SubscriptionRepositoryAdapter) ListTimes(ctx context.Context) ([]int, error) {
	var times []int
	result := r.db.WithContext(ctx).
		Model(&SubscriptionModel{}).
		Distinct("time_of_day").
		Order("time_of_day").
		Pluck("time_of_day", &times)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("failed to list subscription times", result.Error)
	}

	return times, nil
}

// ListDue retrieves subscriptions whose time of day lies within window of now.
// The range wraps around midnight.
func (r *SubscriptionRepositoryAdapter) ListDue(ctx context.Context, now time.Time, window time.Duration) ([]*ports.SubscriptionData, error) {
	if window < 0 {
		return nil, errors.NewValidationError("window cannot be negative")
	}

	query := r.db.WithContext(ctx).Model(&SubscriptionModel{})
	if condition, args, ok := dueCondition(now, window); ok {
		query = query.Where(condition, args...)
	}

	var models []SubscriptionModel
	if result := query.Order("channel_id").Find(&models); result.Error != nil {
		return nil, errors.NewDatabaseError("failed to list due subscriptions", result.Error)
	}

	return r.modelsToData(models), nil
}

// dueCondition builds the time-of-day filter. It reports false when the
// window covers the whole day.
func dueCondition(now time.Time, window time.Duration) (string, []interface{}, bool) {
	current := now.Hour()*60 + now.Minute()
	span := int(math.Floor(window.Minutes()))
	if 2*span+1 >= minutesPerDay {
		return "", nil, false
	}

	low, high := current-span, current+span
	switch {
	case low < 0:
		return "(time_of_day >= ? OR time_of_day <= ?)", []interface{}{low + minutesPerDay, high}, true
	case high >= minutesPerDay:
		return "(time_of_day >= ? OR time_of_day <= ?)", []interface{}{low, high - minutesPerDay}, true
	default:
		return "time_of_day BETWEEN ? AND ?", []interface{}{low, high}, true
	}
}

// UpdateLastFired compares and swaps the last fired instant of a channel.
// Re-applying an update that already took effect reports success.
func (r *SubscriptionRepositoryAdapter) UpdateLastFired(ctx context.Context, update ports.LastFiredUpdate) (bool, error) {
	if update.ChannelID <= 0 {
		return false, errors.NewValidationError("channel ID must be positive")
	}

	firedAt := normalizeInstant(update.FiredAt)
	applied := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&SubscriptionModel{}).Where("channel_id = ?", update.ChannelID)
		if update.Previous == nil {
			query = query.Where("last_fired IS NULL")
		} else {
			query = query.Where("last_fired = ?", normalizeInstant(*update.Previous))
		}

		result := query.Updates(map[string]interface{}{
			"last_fired": firedAt,
			"updated_at": time.Now().UTC(),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			applied = true
			return nil
		}

		var current SubscriptionModel
		if err := tx.Where("channel_id = ?", update.ChannelID).First(&current).Error; err != nil {
			return err
		}
		applied = current.LastFired != nil && current.LastFired.Equal(firedAt)
		return nil
	})
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return false, errors.NewNotFoundError("subscription not found")
		}
		return false, errors.NewDatabaseError(fmt.Sprintf("failed to update last fired for channel %d", update.ChannelID), err)
	}

	return applied, nil
}

// Last fired instants are stored in UTC at second precision so that the
// compare-and-swap matches what was read back.
func normalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func (r *SubscriptionRepositoryAdapter) dataToModel(data *ports.SubscriptionData) *SubscriptionModel {
	var lastFired *time.Time
	if data.LastFired != nil {
		normalized := normalizeInstant(*data.LastFired)
		lastFired = &normalized
	}

	return &SubscriptionModel{
		ChannelID:       data.ChannelID,
		TimeOfDay:       data.TimeOfDay,
		IntervalSeconds: int64(data.Interval / time.Second),
		LastFired:       lastFired,
		Lat:             data.Lat,
		Lon:             data.Lon,
		IsForecast:      data.IsForecast,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func (r *SubscriptionRepositoryAdapter) modelToData(model *SubscriptionModel) *ports.SubscriptionData {
	var lastFired *time.Time
	if model.LastFired != nil {
		normalized := normalizeInstant(*model.LastFired)
		lastFired = &normalized
	}

	return &ports.SubscriptionData{
		ChannelID:  model.ChannelID,
		TimeOfDay:  model.TimeOfDay,
		Interval:   time.Duration(model.IntervalSeconds) * time.Second,
		LastFired:  lastFired,
		Lat:        model.Lat,
		Lon:        model.Lon,
		IsForecast: model.IsForecast,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func (r *SubscriptionRepositoryAdapter) modelsToData(models []SubscriptionModel) []*ports.SubscriptionData {
	data := make([]*ports.SubscriptionData, len(models))
	for i := range models {
		data[i] = r.modelToData(&models[i])
	}
	return data
}
