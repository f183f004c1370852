package service

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"travelcast.app/config"
	"travelcast.app/errors"
	"travelcast.app/models"
	"travelcast.app/providers"
)

// MediaService assembles the map embed, video and photo lookups for a place
type MediaService struct {
	videos providers.VideoProvider
	images providers.ImageProvider
	config *config.MediaConfig
}

// NewMediaService creates a new media lookup service
func NewMediaService(videos providers.VideoProvider, images providers.ImageProvider, config *config.MediaConfig) *MediaService {
	return &MediaService{
		videos: videos,
		images: images,
		config: config,
	}
}

// GetMedia returns the map embed URL plus video and image results for the
// query. The map needs no credentials and is always present; a lookup with a
// missing key fails with a not-configured error, and a lookup failure on one
// provider does not hide the results of the other.
func (s *MediaService) GetMedia(query string) (*models.MediaResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewValidationError("media query cannot be empty")
	}

	result := &models.MediaResult{
		MapURL: buildMapEmbedURL(query),
		Videos: []models.VideoResult{},
		Images: []string{},
	}

	videos, err := s.lookupVideos(query)
	if err != nil {
		slog.Warn("video lookup failed", "query", query, "error", err)
	} else {
		result.Videos = videos
	}

	images, err := s.lookupImages(query)
	if err != nil {
		slog.Warn("image lookup failed", "query", query, "error", err)
	} else {
		result.Images = images
	}

	return result, nil
}

func (s *MediaService) lookupVideos(query string) ([]models.VideoResult, error) {
	if s.config.YouTubeAPIKey == "" {
		return nil, errors.NewExternalAPIError("video search is not configured", nil)
	}
	return s.videos.SearchVideos(query+" travel", s.config.ResultCount)
}

func (s *MediaService) lookupImages(query string) ([]string, error) {
	if s.config.UnsplashAccessKey == "" {
		return nil, errors.NewExternalAPIError("image search is not configured", nil)
	}
	return s.images.SearchImages(query, s.config.ResultCount)
}

func buildMapEmbedURL(query string) string {
	return fmt.Sprintf("https://maps.google.com/maps?q=%s&z=10&output=embed", url.QueryEscape(query))
}
