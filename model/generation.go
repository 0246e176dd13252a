package model

import "time"

// Generation is the durable record of one AI flashcard-generation call.
// The accepted counts start at zero and are written exactly once, when the
// user commits their curated candidates.
type Generation struct {
	ID                  string `gorm:"primaryKey;type:text;not null"`
	UserID              string `gorm:"not null;index;size:255"`
	DeckID              string `gorm:"not null;index;size:255"`
	Model               string `gorm:"not null;size:100"`
	GeneratedCount      int    `gorm:"not null"`
	SourceTextHash      string `gorm:"not null;size:64"` // sha256 hex, traceability only
	SourceTextLength    int    `gorm:"not null"`
	GenerationDuration  int64  `gorm:"not null"` // milliseconds
	AcceptedUneditedCnt int    `gorm:"column:accepted_unedited_count;default:0;not null"`
	AcceptedEditedCnt   int    `gorm:"column:accepted_edited_count;default:0;not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
