package weather

import (
	"math"
	"time"

	"weathernotify.app/pkg/payload"
)

// NewCurrentSnapshot maps a merged current-weather payload to a snapshot.
// Instants are expressed in zone; the payload's own UTC offset is kept in
// UTCOffset only.
func NewCurrentSnapshot(merged payload.Node, zone *time.Location) Snapshot {
	offset := optSeconds(merged.At("timezone"))
	zone = zoneOrUTC(zone)

	return Snapshot{
		City: City{
			Lat:     optFloat(merged.At("coord", "lat")),
			Lon:     optFloat(merged.At("coord", "lon")),
			Country: optText(merged.At("sys", "country")),
			Name:    optText(merged.At("name")),
			Sunrise: optUnix(merged.At("sys", "sunrise"), zone),
			Sunset:  optUnix(merged.At("sys", "sunset"), zone),
		},
		Main:       buildAtmosphere(merged.At("main")),
		Wind:       buildWind(merged.At("wind")),
		Rain:       buildPrecipitation(merged.At("rain")),
		Snow:       buildPrecipitation(merged.At("snow")),
		Clouds:     Clouds{Cloudiness: optFloat(merged.At("clouds", "all"))},
		Time:       optUnix(merged.At("dt"), zone),
		UTCOffset:  offset,
		Visibility: optFloat(merged.At("visibility")),
		conditions: buildConditions(merged.At("weather")),
	}
}

// NewForecastSeries maps a merged forecast payload to a series. City data is
// shared by every entry.
func NewForecastSeries(merged payload.Node, zone *time.Location) Series {
	cityNode := merged.At("city")
	offset := optSeconds(cityNode.At("timezone"))
	zone = zoneOrUTC(zone)

	city := City{
		Lat:     optFloat(cityNode.At("coord", "lat")),
		Lon:     optFloat(cityNode.At("coord", "lon")),
		Country: optText(cityNode.At("country")),
		Name:    optText(cityNode.At("name")),
		Sunrise: optUnix(cityNode.At("sunrise"), zone),
		Sunset:  optUnix(cityNode.At("sunset"), zone),
	}

	entries := merged.At("list").Items()
	snapshots := make([]Snapshot, 0, len(entries))
	for _, entry := range entries {
		snapshots = append(snapshots, Snapshot{
			City:        city,
			Main:        buildAtmosphere(entry.At("main")),
			Wind:        buildWind(entry.At("wind")),
			Rain:        buildPrecipitation(entry.At("rain")),
			Snow:        buildPrecipitation(entry.At("snow")),
			Clouds:      Clouds{Cloudiness: optFloat(entry.At("clouds", "all"))},
			Time:        optUnix(entry.At("dt"), zone),
			UTCOffset:   offset,
			Visibility:  optFloat(entry.At("visibility")),
			Probability: optFloat(entry.At("pop")),
			conditions:  buildConditions(entry.At("weather")),
		})
	}

	return NewSeries(snapshots)
}

func buildAtmosphere(node payload.Node) Atmosphere {
	return Atmosphere{
		Temperature:    optFloat(node.At("temp")),
		FeelsLike:      optFloat(node.At("feels_like")),
		TemperatureMin: optFloat(node.At("temp_min")),
		TemperatureMax: optFloat(node.At("temp_max")),
		Pressure:       optInt(node.At("pressure")),
		Humidity:       optFloat(node.At("humidity")),
		SeaLevel:       optInt(node.At("sea_level")),
		GroundLevel:    optInt(node.At("grnd_level")),
	}
}

func buildWind(node payload.Node) Wind {
	return Wind{
		Speed:   optFloat(node.At("speed")),
		Degrees: optInt(node.At("deg")),
		Gust:    optFloat(node.At("gust")),
	}
}

func buildPrecipitation(node payload.Node) Precipitation {
	return Precipitation{
		LastHour:       optFloat(node.At("1h")),
		LastThreeHours: optFloat(node.At("3h")),
	}
}

func buildConditions(node payload.Node) []Condition {
	items := node.Items()
	conditions := make([]Condition, 0, len(items))
	for _, item := range items {
		conditions = append(conditions, Condition{
			ID:          optInt(item.At("id")),
			Main:        optText(item.At("main")),
			Description: optText(item.At("description")),
			Icon:        optText(item.At("icon")),
		})
	}
	return conditions
}

func optFloat(node payload.Node) Optional[float64] {
	if value, ok := node.Float(); ok {
		return Known(value)
	}
	return Unknown[float64]()
}

func optInt(node payload.Node) Optional[int64] {
	if value, ok := node.Int(); ok {
		return Known(value)
	}
	if value, ok := node.Float(); ok {
		return Known(int64(math.Round(value)))
	}
	return Unknown[int64]()
}

func optText(node payload.Node) Optional[string] {
	if value, ok := node.Text(); ok {
		return Known(value)
	}
	return Unknown[string]()
}

func optSeconds(node payload.Node) Optional[time.Duration] {
	if value, ok := node.Int(); ok {
		return Known(time.Duration(value) * time.Second)
	}
	return Unknown[time.Duration]()
}

func optUnix(node payload.Node, zone *time.Location) Optional[time.Time] {
	value, ok := node.Int()
	if !ok {
		return Unknown[time.Time]()
	}
	return Known(time.Unix(value, 0).In(zone))
}

func zoneOrUTC(zone *time.Location) *time.Location {
	if zone == nil {
		return time.UTC
	}
	return zone
}
