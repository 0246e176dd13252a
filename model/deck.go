package model

import "time"

type Deck struct {
	ID          string `gorm:"primaryKey;type:text;not null"`
	UserID      string `gorm:"not null;index;size:255"`
	Name        string `gorm:"not null;size:100"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Flashcards []Flashcard `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE" json:"-"`
}
