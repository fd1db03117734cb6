package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/AkademiaSztuki/awa-api/internal/models"
	"github.com/AkademiaSztuki/awa-api/internal/orchestrator"
)

// RecordsService persists generation pass bookkeeping. The records are
// write-only from the engine's perspective: nothing here ever feeds back
// into style derivation or weight synthesis.
type RecordsService struct {
	db *gorm.DB
}

func NewRecordsService(db *gorm.DB) *RecordsService {
	return &RecordsService{db: db}
}

// RecordPass stores the outcome of a finished pass together with the
// caller's regeneration counter and the elapsed time since their
// previous pass. Result images are stored as separate rows, one per
// successful source.
func (s *RecordsService) RecordPass(sessionID string, opts orchestrator.Options, state orchestrator.PassState, result *orchestrator.PassResult) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var previous models.GenerationRecord
		regenerations := 0
		var sincePrevious time.Duration
		err := tx.Where("session_id = ?", sessionID).
			Order("created_at DESC").
			First(&previous).Error
		switch {
		case err == nil:
			regenerations = previous.RegenerationCount + 1
			sincePrevious = time.Since(previous.CreatedAt)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first pass for this session
		default:
			return fmt.Errorf("loading previous pass: %w", err)
		}

		record := models.GenerationRecord{
			SessionID:           sessionID,
			RequestID:           result.RequestID,
			Mode:                string(opts.Mode),
			Iteration:           opts.Iteration,
			State:               string(state),
			SuccessfulCount:     result.SuccessfulCount,
			FailedCount:         result.FailedCount,
			SkippedSources:      strings.Join(result.SkippedSources, "; "),
			DurationMS:          result.TotalProcessingTime.Milliseconds(),
			RegenerationCount:   regenerations,
			SincePreviousPassMS: sincePrevious.Milliseconds(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("creating generation record: %w", err)
		}

		for _, jobResult := range result.Results {
			image := models.GeneratedImage{
				RequestID:        result.RequestID,
				Source:           string(jobResult.Source),
				Model:            jobResult.Model,
				Prompt:           jobResult.Prompt,
				ImageURL:         jobResult.ImageURL,
				MimeType:         jobResult.MimeType,
				ProcessingTimeMS: jobResult.ProcessingTime.Milliseconds(),
			}
			if err := tx.Create(&image).Error; err != nil {
				return fmt.Errorf("creating generated image record: %w", err)
			}
		}
		return nil
	})
}

// RegenerationStats holds a session's pass history summary.
type RegenerationStats struct {
	PassCount           int   `json:"pass_count"`
	SincePreviousPassMS int64 `json:"since_previous_pass_ms"`
}

// StatsFor returns the session's regeneration stats, zeroes for a session
// that has not generated anything yet.
func (s *RecordsService) StatsFor(sessionID string) (*RegenerationStats, error) {
	var last models.GenerationRecord
	err := s.db.Where("session_id = ?", sessionID).
		Order("created_at DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &RegenerationStats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading last pass: %w", err)
	}
	return &RegenerationStats{
		PassCount:           last.RegenerationCount + 1,
		SincePreviousPassMS: time.Since(last.CreatedAt).Milliseconds(),
	}, nil
}

// HistoryFor returns the session's pass records, newest first.
func (s *RecordsService) HistoryFor(sessionID string, limit int) ([]models.GenerationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []models.GenerationRecord
	err := s.db.Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("loading pass history: %w", err)
	}
	return records, nil
}
