// Package weathercode maps WMO weather condition codes to display labels and icons.
package weathercode

import "travelcast.app/models"

type entry struct {
	label string
	icon  string
}

// catalog covers the Open-Meteo/WMO weathercode set.
var catalog = map[int]entry{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Depositing rime fog", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Moderate drizzle", "🌦️"},
	55: {"Dense drizzle", "🌧️"},
	56: {"Freezing drizzle", "🌧️❄️"},
	57: {"Dense freezing drizzle", "🌧️❄️"},
	61: {"Slight rain", "🌧️"},
	63: {"Moderate rain", "🌧️"},
	65: {"Heavy rain", "⛈️"},
	66: {"Light freezing rain", "🌧️❄️"},
	67: {"Heavy freezing rain", "🌧️❄️"},
	71: {"Light snow", "🌨️"},
	73: {"Moderate snow", "🌨️"},
	75: {"Heavy snow", "❄️"},
	77: {"Snow grains", "❄️"},
	80: {"Rain showers: slight", "🌦️"},
	81: {"Rain showers: moderate", "🌧️"},
	82: {"Rain showers: violent", "⛈️"},
	85: {"Snow showers slight", "🌨️"},
	86: {"Snow showers heavy", "❄️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with slight hail", "⛈️"},
	99: {"Thunderstorm with heavy hail", "⛈️"},
}

// UnknownLabel and UnknownIcon form the sentinel for codes outside the catalog.
const (
	UnknownLabel = "Unknown"
	UnknownIcon  = "❓"
)

// Lookup returns the condition for any code. Codes outside the catalog yield
// the Unknown sentinel rather than an error.
func Lookup(code int) models.WeatherCondition {
	if e, ok := catalog[code]; ok {
		return models.WeatherCondition{Code: code, Label: e.label, Icon: e.icon}
	}
	return models.WeatherCondition{Code: code, Label: UnknownLabel, Icon: UnknownIcon}
}

// Known reports whether code is part of the catalog.
func Known(code int) bool {
	_, ok := catalog[code]
	return ok
}
