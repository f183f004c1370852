// Package repository implements data access layer for the application
package repository

import (
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travelcast.app/errors"
	"travelcast.app/models"
)

// HistoryRepository handles data access operations for the search history
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new repository for search history data
func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Add records a search query. Re-adding an already remembered query is a
// silent no-op; the original row and its timestamp are kept.
func (r *HistoryRepository) Add(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.NewValidationError("history query cannot be empty")
	}

	record := models.HistoryRecord{Query: query}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "query"}},
		DoNothing: true,
	}).Create(&record)
	if result.Error != nil {
		slog.Error("failed to add history record", "query", query, "error", result.Error)
		return errors.NewDatabaseError("failed to add history record", result.Error)
	}

	return nil
}

// List returns all remembered searches, most recent first.
func (r *HistoryRepository) List() ([]models.HistoryRecord, error) {
	var records []models.HistoryRecord
	result := r.db.Order("created_at DESC, id DESC").Find(&records)
	if result.Error != nil {
		slog.Error("failed to list history records", "error", result.Error)
		return nil, errors.NewDatabaseError("failed to list history records", result.Error)
	}

	return records, nil
}

// DeleteByQuery removes a remembered search by its exact query text.
// Deleting a query that was never remembered is a no-op.
func (r *HistoryRepository) DeleteByQuery(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.NewValidationError("history query cannot be empty")
	}

	result := r.db.Where("query = ?", query).Delete(&models.HistoryRecord{})
	if result.Error != nil {
		slog.Error("failed to delete history record", "query", query, "error", result.Error)
		return errors.NewDatabaseError("failed to delete history record", result.Error)
	}

	slog.Debug("deleted history records", "query", query, "rows", result.RowsAffected)
	return nil
}

// Count returns the number of remembered searches.
func (r *HistoryRepository) Count() (int64, error) {
	var count int64
	result := r.db.Model(&models.HistoryRecord{}).Count(&count)
	if result.Error != nil {
		return 0, errors.NewDatabaseError("failed to count history records", result.Error)
	}

	return count, nil
}
