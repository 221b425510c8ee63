package weather

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"weathernotify.app/pkg/validation"
)

const iconURLPattern = "https://%s/img/wn/%s@4x.png"

// Optional holds a value that the provider may not have reported
type Optional[T any] struct {
	value T
	known bool
}

// Known wraps a reported value
func Known[T any](value T) Optional[T] {
	return Optional[T]{value: value, known: true}
}

// Unknown returns the marker for an unreported value
func Unknown[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was reported
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.known
}

// IsKnown reports whether the value was reported
func (o Optional[T]) IsKnown() bool {
	return o.known
}

// OrElse returns the value, or fallback when unknown
func (o Optional[T]) OrElse(fallback T) T {
	if !o.known {
		return fallback
	}
	return o.value
}

// String renders the value or "unknown"
func (o Optional[T]) String() string {
	if !o.known {
		return "unknown"
	}
	return fmt.Sprint(o.value)
}

// MarshalJSON renders unknown values as null
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.known {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// Location is a geographic coordinate pair
type Location struct {
	Lat float64
	Lon float64
}

// IsValid validates the coordinate ranges
func (l Location) IsValid() error {
	if !validation.IsValidLatitude(l.Lat) {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if !validation.IsValidLongitude(l.Lon) {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// String returns a compact representation used in cache keys and logs
func (l Location) String() string {
	return fmt.Sprintf("%.3f,%.3f", l.Lat, l.Lon)
}

// City describes the place a snapshot refers to
type City struct {
	Lat     Optional[float64]   `json:"lat"`
	Lon     Optional[float64]   `json:"lon"`
	Country Optional[string]    `json:"country"`
	Name    Optional[string]    `json:"name"`
	Sunrise Optional[time.Time] `json:"sunrise"`
	Sunset  Optional[time.Time] `json:"sunset"`
}

// Condition is one weather condition; the provider orders them by relevance
type Condition struct {
	ID          Optional[int64]  `json:"id"`
	Main        Optional[string] `json:"main"`
	Description Optional[string] `json:"description"`
	Icon        Optional[string] `json:"icon"`
}

// Atmosphere holds temperature and pressure measurements
type Atmosphere struct {
	Temperature    Optional[float64] `json:"temperature"`
	FeelsLike      Optional[float64] `json:"feels_like"`
	TemperatureMin Optional[float64] `json:"temperature_min"`
	TemperatureMax Optional[float64] `json:"temperature_max"`
	Pressure       Optional[int64]   `json:"pressure"`
	Humidity       Optional[float64] `json:"humidity"`
	SeaLevel       Optional[int64]   `json:"sea_level"`
	GroundLevel    Optional[int64]   `json:"ground_level"`
}

// Wind holds wind measurements
type Wind struct {
	Speed   Optional[float64] `json:"speed"`
	Degrees Optional[int64]   `json:"degrees"`
	Gust    Optional[float64] `json:"gust"`
}

// Precipitation holds rain or snow volumes in mm
type Precipitation struct {
	LastHour       Optional[float64] `json:"last_hour"`
	LastThreeHours Optional[float64] `json:"last_three_hours"`
}

// Clouds holds cloudiness in percent
type Clouds struct {
	Cloudiness Optional[float64] `json:"cloudiness"`
}

// Snapshot is one point-in-time observation or forecast entry. It is built once
// per fetch and never modified.
type Snapshot struct {
	City        City                    `json:"city"`
	Main        Atmosphere              `json:"main"`
	Wind        Wind                    `json:"wind"`
	Rain        Precipitation           `json:"rain"`
	Snow        Precipitation           `json:"snow"`
	Clouds      Clouds                  `json:"clouds"`
	Time        Optional[time.Time]     `json:"time"`
	UTCOffset   Optional[time.Duration] `json:"utc_offset"`
	Visibility  Optional[float64]       `json:"visibility"`
	Probability Optional[float64]       `json:"probability"`
	conditions  []Condition
}

// Conditions returns a copy of the ordered weather conditions
func (s Snapshot) Conditions() []Condition {
	conditions := make([]Condition, len(s.conditions))
	copy(conditions, s.conditions)
	return conditions
}

// PrimaryCondition returns the first condition
func (s Snapshot) PrimaryCondition() (Condition, bool) {
	if len(s.conditions) == 0 {
		return Condition{}, false
	}
	return s.conditions[0], true
}

// IconURL derives the asset URL of the primary condition's icon. It returns an
// empty string when the icon is unknown.
func (s Snapshot) IconURL(assetHost string) string {
	primary, ok := s.PrimaryCondition()
	if !ok {
		return ""
	}
	icon, ok := primary.Icon.Get()
	if !ok || strings.TrimSpace(icon) == "" {
		return ""
	}
	return fmt.Sprintf(iconURLPattern, assetHost, icon)
}

// Zone returns the fixed zone of the reported UTC offset
func (s Snapshot) Zone() (*time.Location, bool) {
	offset, ok := s.UTCOffset.Get()
	if !ok {
		return nil, false
	}
	return time.FixedZone("", int(offset.Seconds())), true
}

// MarshalJSON includes the conditions
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type snapshotAlias Snapshot
	return json.Marshal(struct {
		snapshotAlias
		Conditions []Condition `json:"conditions"`
	}{
		snapshotAlias: snapshotAlias(s),
		Conditions:    s.Conditions(),
	})
}

// String returns a short human-readable summary
func (s Snapshot) String() string {
	description := Unknown[string]()
	if primary, ok := s.PrimaryCondition(); ok {
		description = primary.Description
	}
	return fmt.Sprintf("%s: %s°C, %s%% humidity, %s",
		s.City.Name, s.Main.Temperature, s.Main.Humidity, description)
}
