package providers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"travelcast.app/config"
	"travelcast.app/errors"
	"travelcast.app/models"
)

// IPWhoisProvider implements IPLocatorProvider against an ipwho.is-compatible endpoint
type IPWhoisProvider struct {
	baseURL string
	client  *http.Client
}

// NewIPWhoisProvider creates a new IP geolocation provider
func NewIPWhoisProvider(config *config.IPLocatorConfig) *IPWhoisProvider {
	return &IPWhoisProvider{
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: config.Timeout},
	}
}

type ipWhoisResponse struct {
	Success   bool     `json:"success"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	City      string   `json:"city"`
	Region    string   `json:"region"`
	Country   string   `json:"country"`
}

// Locate resolves the caller's position from its public IP address.
// The display name is the most specific of city, region and country.
func (p *IPWhoisProvider) Locate() (*models.ResolvedLocation, error) {
	resp, err := p.client.Get(p.baseURL + "/")
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to reach IP geolocation service", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("IP geolocation service returned status code %d", resp.StatusCode), nil)
	}

	var result ipWhoisResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode IP geolocation response", err)
	}

	if !result.Success || result.Latitude == nil || result.Longitude == nil {
		return nil, errors.NewNotFoundError("could not determine location from IP")
	}

	displayName := result.City
	if displayName == "" {
		displayName = result.Region
	}
	if displayName == "" {
		displayName = result.Country
	}
	if displayName == "" {
		displayName = models.CoordinateLabel(*result.Latitude, *result.Longitude)
	}

	return &models.ResolvedLocation{
		Latitude:    *result.Latitude,
		Longitude:   *result.Longitude,
		DisplayName: displayName,
	}, nil
}
