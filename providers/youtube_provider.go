package providers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"travelcast.app/config"
	"travelcast.app/errors"
	"travelcast.app/models"
)

// YouTubeProvider implements VideoProvider against the YouTube Data API
type YouTubeProvider struct {
	apiKey string
	client *resty.Client
}

// NewYouTubeProvider creates a new YouTube video search provider
func NewYouTubeProvider(config *config.MediaConfig) *YouTubeProvider {
	client := resty.New().
		SetBaseURL(config.YouTubeBaseURL).
		SetTimeout(config.Timeout)

	return &YouTubeProvider{
		apiKey: config.YouTubeAPIKey,
		client: client,
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchVideos returns up to maxResults videos related to the query.
func (p *YouTubeProvider) SearchVideos(query string, maxResults int) ([]models.VideoResult, error) {
	if query == "" {
		return nil, errors.NewValidationError("search query cannot be empty")
	}

	resp, err := p.client.R().
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"q":          query,
			"type":       "video",
			"maxResults": strconv.Itoa(maxResults),
			"key":        p.apiKey,
		}).
		Get("/search")
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to reach video search service", err)
	}

	if resp.StatusCode() != 200 {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("video search returned status code %d", resp.StatusCode()), nil)
	}

	var payload youtubeSearchResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode video search response", err)
	}

	videos := make([]models.VideoResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, models.VideoResult{
			Title:        item.Snippet.Title,
			VideoID:      item.ID.VideoID,
			ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
		})
	}

	return videos, nil
}
