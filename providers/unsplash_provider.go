package providers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"travelcast.app/config"
	"travelcast.app/errors"
)

// UnsplashProvider implements ImageProvider against the Unsplash search API
type UnsplashProvider struct {
	accessKey string
	client    *resty.Client
}

// NewUnsplashProvider creates a new Unsplash image search provider
func NewUnsplashProvider(config *config.MediaConfig) *UnsplashProvider {
	client := resty.New().
		SetBaseURL(config.UnsplashBaseURL).
		SetTimeout(config.Timeout)

	return &UnsplashProvider{
		accessKey: config.UnsplashAccessKey,
		client:    client,
	}
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchImages returns up to count image URLs for the query.
func (p *UnsplashProvider) SearchImages(query string, count int) ([]string, error) {
	if query == "" {
		return nil, errors.NewValidationError("search query cannot be empty")
	}

	resp, err := p.client.R().
		SetQueryParams(map[string]string{
			"query":     query,
			"per_page":  strconv.Itoa(count),
			"client_id": p.accessKey,
		}).
		Get("/search/photos")
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to reach image search service", err)
	}

	if resp.StatusCode() != 200 {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("image search returned status code %d", resp.StatusCode()), nil)
	}

	var payload unsplashSearchResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode image search response", err)
	}

	images := make([]string, 0, len(payload.Results))
	for _, result := range payload.Results {
		if result.URLs.Regular != "" {
			images = append(images, result.URLs.Regular)
		}
	}

	return images, nil
}
