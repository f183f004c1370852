// Package models defines data structures used throughout the application
package models

import (
	"fmt"
	"time"
)

// QueryKind discriminates the variants of a LocationQuery.
type QueryKind string

const (
	QueryFreeText        QueryKind = "free_text"
	QueryCoordinates     QueryKind = "coordinates"
	QueryCurrentPosition QueryKind = "current_position"
)

// LocationQuery is a single user-supplied location descriptor. Exactly one
// variant is populated; use the constructors below rather than building it
// by hand.
type LocationQuery struct {
	Kind      QueryKind
	Text      string
	Latitude  float64
	Longitude float64
	// HasClientCoords marks a current-position query that carries
	// browser-reported coordinates in Latitude/Longitude.
	HasClientCoords bool
}

// FreeTextQuery builds a query for a place name, address, zip or landmark.
func FreeTextQuery(text string) LocationQuery {
	return LocationQuery{Kind: QueryFreeText, Text: text}
}

// CoordinatesQuery builds a query for an explicit latitude/longitude pair.
func CoordinatesQuery(lat, lon float64) LocationQuery {
	return LocationQuery{Kind: QueryCoordinates, Latitude: lat, Longitude: lon}
}

// CurrentPositionQuery builds a "use my location" query. Client-reported
// coordinates are optional; without them resolution falls back to IP lookup.
func CurrentPositionQuery() LocationQuery {
	return LocationQuery{Kind: QueryCurrentPosition}
}

// CurrentPositionQueryWithCoords builds a current-position query seeded with
// browser-reported coordinates.
func CurrentPositionQueryWithCoords(lat, lon float64) LocationQuery {
	return LocationQuery{Kind: QueryCurrentPosition, Latitude: lat, Longitude: lon, HasClientCoords: true}
}

// ResolvedLocation is the canonical output of location resolution.
// Latitude and Longitude are always present together; DisplayName is never empty.
type ResolvedLocation struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
}

// CoordinateLabel formats a lat/lon pair the way degraded-mode display names
// are rendered when reverse geocoding yields nothing.
func CoordinateLabel(lat, lon float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lon)
}

// WeatherCondition is a decoded weathercode with its human-readable label and icon.
type WeatherCondition struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// CurrentConditions holds the current-weather block of a forecast. Optional
// fields are pointers; nil means the provider omitted the value.
type CurrentConditions struct {
	ObservedAt       *string          `json:"observed_at,omitempty"`
	TemperatureC     *float64         `json:"temperature_c,omitempty"`
	WindspeedKmh     *float64         `json:"windspeed_kmh,omitempty"`
	WindDirectionDeg *float64         `json:"wind_direction_deg,omitempty"`
	Condition        WeatherCondition `json:"condition"`
}

// DailyForecastEntry is one day of the daily forecast strip.
type DailyForecastEntry struct {
	Date            string           `json:"date"`
	TempMaxC        float64          `json:"temp_max_c"`
	TempMinC        float64          `json:"temp_min_c"`
	Condition       WeatherCondition `json:"condition"`
	PrecipitationMm *float64         `json:"precipitation_mm,omitempty"`
	Sunrise         *string          `json:"sunrise,omitempty"`
	Sunset          *string          `json:"sunset,omitempty"`
}

// ForecastResult is the normalized forecast for one location. Daily is
// chronological and has exactly the requested number of entries.
type ForecastResult struct {
	Timezone string               `json:"timezone"`
	Current  CurrentConditions    `json:"current"`
	Daily    []DailyForecastEntry `json:"daily"`
}

// HistoryRecord is one remembered search, unique by query text.
type HistoryRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Query     string    `json:"query" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// VideoResult is a single video search hit.
type VideoResult struct {
	Title        string `json:"title"`
	VideoID      string `json:"video_id"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// MediaResult bundles the media lookups for one query.
type MediaResult struct {
	MapURL string        `json:"map_url"`
	Videos []VideoResult `json:"videos"`
	Images []string      `json:"images"`
}

// AdvisoryResult is the travel advice generated for a place and horizon.
type AdvisoryResult struct {
	Place  string `json:"place"`
	Days   int    `json:"days"`
	Advice string `json:"advice"`
}

// WeatherReport is the combined resolve-then-forecast API payload.
type WeatherReport struct {
	Location ResolvedLocation `json:"location"`
	Forecast ForecastResult   `json:"forecast"`
}

// LocationRequest binds the location-selecting query parameters shared by the
// weather, resolve and advisory endpoints.
type LocationRequest struct {
	Place  string   `form:"place"`
	Lat    *float64 `form:"lat"`
	Lon    *float64 `form:"lon"`
	Auto   bool     `form:"auto"`
	Coords string   `form:"coords" binding:"omitempty,coords"`
	Days   int      `form:"days,default=5" binding:"omitempty,min=1,max=7"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
