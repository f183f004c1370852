package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"travelcast.app/config"
	"travelcast.app/errors"
	"travelcast.app/models"
)

// NominatimProvider implements GeocodingProvider against a Nominatim-compatible endpoint
type NominatimProvider struct {
	baseURL   string
	userAgent string
	language  string
	client    *http.Client
}

// NewNominatimProvider creates a new Nominatim geocoding provider
func NewNominatimProvider(config *config.GeocodingConfig) *NominatimProvider {
	return &NominatimProvider{
		baseURL:   config.BaseURL,
		userAgent: config.UserAgent,
		language:  config.Language,
		client:    &http.Client{Timeout: config.Timeout},
	}
}

type nominatimSearchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type nominatimReverseResult struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// ForwardGeocode resolves a free-text place name to coordinates and a canonical address.
// The first (best) match wins; no disambiguation is attempted.
func (p *NominatimProvider) ForwardGeocode(text string) (*models.ResolvedLocation, error) {
	if text == "" {
		return nil, errors.NewValidationError("location text cannot be empty")
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("accept-language", p.language)

	body, err := p.get(fmt.Sprintf("%s/search?%s", p.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var results []nominatimSearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode geocoding response", err)
	}

	if len(results) == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("could not geocode location: '%s'", text))
	}

	best := results[0]
	lat, latErr := strconv.ParseFloat(best.Lat, 64)
	lon, lonErr := strconv.ParseFloat(best.Lon, 64)
	if latErr != nil || lonErr != nil || best.DisplayName == "" {
		return nil, errors.NewExternalAPIError("invalid geocoding response format", nil)
	}

	return &models.ResolvedLocation{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: best.DisplayName,
	}, nil
}

// ReverseGeocode resolves coordinates to a human-readable address.
func (p *NominatimProvider) ReverseGeocode(lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("accept-language", p.language)

	body, err := p.get(fmt.Sprintf("%s/reverse?%s", p.baseURL, params.Encode()))
	if err != nil {
		return "", err
	}

	var result nominatimReverseResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", errors.NewExternalAPIError("failed to decode reverse geocoding response", err)
	}

	// Nominatim reports "Unable to geocode" as an error field with status 200.
	if result.Error != "" || result.DisplayName == "" {
		return "", errors.NewNotFoundError("no address found for coordinates")
	}

	return result.DisplayName, nil
}

func (p *NominatimProvider) get(requestURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to build geocoding request", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to reach geocoding service", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("geocoding service returned status code %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to read geocoding response", err)
	}
	return body, nil
}
