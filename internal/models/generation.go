package models

import (
	"time"

	"gorm.io/gorm"
)

// GenerationRecord is the bookkeeping row for one generation pass. It
// never feeds back into the synthesis algorithm, it exists for research
// export and regeneration statistics.
type GenerationRecord struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SessionID string `gorm:"index;not null" json:"session_id"`
	RequestID string `gorm:"uniqueIndex;not null" json:"request_id"`

	Mode      string `json:"mode"`      // preview, upscale, initial, micro, macro
	Iteration int    `json:"iteration"` // refinement count within the session

	State           string `gorm:"index" json:"state"` // done, all_failed, cancelled
	SuccessfulCount int    `json:"successful_count"`
	FailedCount     int    `json:"failed_count"`
	SkippedSources  string `json:"skipped_sources"` // semicolon-joined reasons
	DurationMS      int64  `json:"duration_ms"`

	// Regeneration bookkeeping: how many passes this session ran before
	// this one, and how long since the previous pass.
	RegenerationCount   int   `json:"regeneration_count"`
	SincePreviousPassMS int64 `json:"since_previous_pass_ms"`
}

// GeneratedImage is one stored result image of a pass
type GeneratedImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	RequestID string `gorm:"index;not null" json:"request_id"`
	Source    string `gorm:"index" json:"source"`
	Model     string `json:"model"`
	Prompt    string `gorm:"type:text" json:"prompt"`
	ImageURL  string `json:"image_url"`
	MimeType  string `json:"mime_type"`

	ProcessingTimeMS int64 `json:"processing_time_ms"`
}
