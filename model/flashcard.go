package model

import "time"

type Flashcard struct {
	ID           string  `gorm:"primaryKey;type:text;not null"`
	DeckID       string  `gorm:"not null;index;size:255"`
	GenerationID *string `gorm:"index"` // nil for manually created cards
	Front        string  `gorm:"not null;size:200"`
	Back         string  `gorm:"not null;size:500"`
	Source       string  `gorm:"not null;size:20"` // ai-full, ai-edited, manual
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
