package providers

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	apperrors "travelcast.app/errors"
	"travelcast.app/models"
)

// GeoResolver resolves location queries through a geocoding provider, with an
// ordered fallback ladder for current-position queries.
type GeoResolver struct {
	geocoder GeocodingProvider
	ladder   []ResolutionStrategy
}

// NewGeoResolver creates a resolver with the standard current-position ladder:
// client-reported coordinates first, IP geolocation second.
func NewGeoResolver(geocoder GeocodingProvider, ipLocator IPLocatorProvider) *GeoResolver {
	return &GeoResolver{
		geocoder: geocoder,
		ladder: []ResolutionStrategy{
			&clientCoordsStrategy{geocoder: geocoder},
			&ipLocateStrategy{ipLocator: ipLocator},
		},
	}
}

// Resolve turns a location query into a canonical (latitude, longitude,
// display name) triple.
func (r *GeoResolver) Resolve(query models.LocationQuery) (*models.ResolvedLocation, error) {
	switch query.Kind {
	case models.QueryFreeText:
		return r.resolveFreeText(query.Text)
	case models.QueryCoordinates:
		return r.resolveCoordinates(query.Latitude, query.Longitude)
	case models.QueryCurrentPosition:
		return r.resolveCurrentPosition(query)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown location query kind: %s", query.Kind))
	}
}

func (r *GeoResolver) resolveFreeText(text string) (*models.ResolvedLocation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("location text cannot be empty")
	}

	return r.geocoder.ForwardGeocode(text)
}

func (r *GeoResolver) resolveCoordinates(lat, lon float64) (*models.ResolvedLocation, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	return &models.ResolvedLocation{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: r.displayNameFor(lat, lon),
	}, nil
}

// displayNameFor reverse-geocodes a coordinate pair. Any reverse-geocoding
// failure degrades to the formatted coordinate string; it is never an error.
func (r *GeoResolver) displayNameFor(lat, lon float64) string {
	name, err := r.geocoder.ReverseGeocode(lat, lon)
	if err != nil {
		slog.Info("reverse geocoding failed, using coordinate label", "lat", lat, "lon", lon, "error", err)
		return models.CoordinateLabel(lat, lon)
	}
	return name
}

// resolveCurrentPosition walks the fallback ladder in order. Both a tier that
// finds nothing and a tier that fails upstream advance to the next tier; the
// ladder only fails once every tier is exhausted. When no tier succeeded, a
// service error from any tier takes precedence over not-found so the caller
// can distinguish "nothing to find" from "could not look".
func (r *GeoResolver) resolveCurrentPosition(query models.LocationQuery) (*models.ResolvedLocation, error) {
	var lastServiceErr error

	for _, strategy := range r.ladder {
		location, err := strategy.Resolve(query)
		if err == nil {
			return location, nil
		}

		slog.Info("resolution tier failed", "tier", strategy.Name(), "error", err)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.ExternalAPIError {
			lastServiceErr = err
		}
	}

	if lastServiceErr != nil {
		return nil, lastServiceErr
	}
	return nil, apperrors.NewNotFoundError("could not determine location")
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return apperrors.NewValidationError("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return apperrors.NewValidationError("longitude must be between -180 and 180")
	}
	return nil
}

// clientCoordsStrategy resolves a current-position query from browser-reported
// coordinates when the client supplied them.
type clientCoordsStrategy struct {
	geocoder GeocodingProvider
}

func (s *clientCoordsStrategy) Name() string {
	return "ClientCoordinates"
}

func (s *clientCoordsStrategy) Resolve(query models.LocationQuery) (*models.ResolvedLocation, error) {
	if !query.HasClientCoords {
		return nil, apperrors.NewNotFoundError("no client coordinates reported")
	}
	if err := validateCoordinates(query.Latitude, query.Longitude); err != nil {
		return nil, err
	}

	name, err := s.geocoder.ReverseGeocode(query.Latitude, query.Longitude)
	if err != nil {
		name = models.CoordinateLabel(query.Latitude, query.Longitude)
	}

	return &models.ResolvedLocation{
		Latitude:    query.Latitude,
		Longitude:   query.Longitude,
		DisplayName: name,
	}, nil
}

// ipLocateStrategy resolves a current-position query from the caller's IP.
type ipLocateStrategy struct {
	ipLocator IPLocatorProvider
}

func (s *ipLocateStrategy) Name() string {
	return "IPGeolocation"
}

func (s *ipLocateStrategy) Resolve(_ models.LocationQuery) (*models.ResolvedLocation, error) {
	location, err := s.ipLocator.Locate()
	if err != nil {
		return nil, err
	}

	location.DisplayName = location.DisplayName + " (approx. from IP)"
	return location, nil
}
