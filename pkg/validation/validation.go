package validation

import (
	"regexp"
	"strings"
)

var timeOfDayRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidTimeOfDay validates a 24-hour HH:MM clock time
func IsValidTimeOfDay(value string) bool {
	return timeOfDayRegex.MatchString(strings.TrimSpace(value))
}

// IsValidLatitude checks the latitude range
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// IsValidLongitude checks the longitude range
func IsValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// IsPositiveID checks that a chat channel identifier is set
func IsPositiveID(id int64) bool {
	return id > 0
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
