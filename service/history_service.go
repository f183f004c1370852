package service

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"travelcast.app/errors"
	"travelcast.app/models"
)

// HistoryService exposes the search history with CSV export
type HistoryService struct {
	repo HistoryRepositoryInterface
}

// NewHistoryService creates a new history service
func NewHistoryService(repo HistoryRepositoryInterface) *HistoryService {
	return &HistoryService{repo: repo}
}

// Record remembers a search query. Duplicates are silently ignored.
func (s *HistoryService) Record(query string) error {
	return s.repo.Add(query)
}

// List returns the remembered searches, newest first.
func (s *HistoryService) List() ([]models.HistoryRecord, error) {
	return s.repo.List()
}

// Delete forgets a search by its exact query text. Unknown queries are a no-op.
func (s *HistoryService) Delete(query string) error {
	return s.repo.DeleteByQuery(query)
}

// ExportCSV renders the history as CSV with an id,query,created_at header,
// newest first.
func (s *HistoryService) ExportCSV() ([]byte, error) {
	records, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"id", "query", "created_at"}); err != nil {
		return nil, errors.NewDatabaseError("failed to write history export", err)
	}
	for _, record := range records {
		row := []string{
			strconv.FormatUint(uint64(record.ID), 10),
			record.Query,
			record.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return nil, errors.NewDatabaseError("failed to write history export", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.NewDatabaseError("failed to write history export", err)
	}

	return buf.Bytes(), nil
}
