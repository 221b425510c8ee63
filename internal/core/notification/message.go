package notification

import (
	"fmt"

	"weathernotify.app/internal/core/weather"
	"weathernotify.app/internal/ports"
)

const (
	FooterText    = "OpenWeatherを参照しています。"
	FooterIconURL = "https://openweathermap.org/themes/openweathermap/assets/img/mobile_app/android-app-top-banner.png"

	unknownText = "不明"
)

// CurrentMessage renders a current-weather snapshot
func CurrentMessage(snapshot weather.Snapshot, iconURL string) ports.Message {
	description := fmt.Sprintf("現在%s時点でのお天気は%sです。",
		formatTime(snapshot, "15時04分"), primaryDescription(snapshot))
	return buildMessage(snapshot, description, iconURL)
}

// ForecastMessage renders one forecast entry
func ForecastMessage(snapshot weather.Snapshot, iconURL string) ports.Message {
	description := fmt.Sprintf("%s時点でのお天気は%sと予測されています。",
		formatTime(snapshot, "2006年01月02日15時04分"), primaryDescription(snapshot))
	return buildMessage(snapshot, description, iconURL)
}

func buildMessage(snapshot weather.Snapshot, description, iconURL string) ports.Message {
	return ports.Message{
		Title:        snapshot.City.Name.OrElse(unknownText),
		Description:  description,
		ThumbnailURL: iconURL,
		Fields: []ports.MessageField{
			{Name: "気温", Value: withUnit(snapshot.Main.Temperature, "°C"), Inline: true},
			{Name: "最高気温", Value: withUnit(snapshot.Main.TemperatureMax, "°C"), Inline: true},
			{Name: "最低気温", Value: withUnit(snapshot.Main.TemperatureMin, "°C"), Inline: true},
			{Name: "湿度", Value: withUnit(snapshot.Main.Humidity, "%"), Inline: true},
			{Name: "気圧", Value: withUnit(snapshot.Main.Pressure, "hPa"), Inline: true},
		},
		Footer:     FooterText,
		FooterIcon: FooterIconURL,
	}
}

func primaryDescription(snapshot weather.Snapshot) string {
	primary, ok := snapshot.PrimaryCondition()
	if !ok {
		return unknownText
	}
	return primary.Description.OrElse(unknownText)
}

func formatTime(snapshot weather.Snapshot, layout string) string {
	instant, ok := snapshot.Time.Get()
	if !ok {
		return unknownText
	}
	return instant.Format(layout)
}

func withUnit[T any](value weather.Optional[T], unit string) string {
	if !value.IsKnown() {
		return unknownText
	}
	return value.String() + unit
}
