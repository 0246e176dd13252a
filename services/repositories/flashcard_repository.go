package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jakobos/10x-cards/model"
)

type FlashcardRepository struct {
	BaseRepository
}

func NewFlashcardRepository(db *gorm.DB) *FlashcardRepository {
	return &FlashcardRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *FlashcardRepository) GetFlashcard(flashcardID string) (*model.Flashcard, error) {
	var flashcard model.Flashcard
	if err := ds.db.Where("id = ?", flashcardID).First(&flashcard).Error; err != nil {
		return nil, err
	}
	return &flashcard, nil
}

func (ds *FlashcardRepository) GetFlashcards(deckID string, offset, limit int) ([]model.Flashcard, int64, error) {
	var flashcards []model.Flashcard
	var total int64

	if err := ds.db.Model(&model.Flashcard{}).Where("deck_id = ?", deckID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := ds.db.Where("deck_id = ?", deckID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&flashcards).Error; err != nil {
		return nil, 0, err
	}

	return flashcards, total, nil
}

func (ds *FlashcardRepository) CreateFlashcard(flashcard *model.Flashcard) (*model.Flashcard, error) {
	if flashcard.ID == "" {
		id, _ := uuid.NewV7()
		flashcard.ID = id.String()
	}
	if err := ds.db.Create(flashcard).Error; err != nil {
		return nil, err
	}
	return flashcard, nil
}

// CreateFlashcards inserts a batch in one statement. Ids are assigned before
// the insert so the caller can report them without a reload.
func (ds *FlashcardRepository) CreateFlashcards(flashcards []model.Flashcard) error {
	for i := range flashcards {
		if flashcards[i].ID == "" {
			id, _ := uuid.NewV7()
			flashcards[i].ID = id.String()
		}
	}
	return ds.db.Create(&flashcards).Error
}

func (ds *FlashcardRepository) UpdateFlashcard(flashcard *model.Flashcard) error {
	flashcard.UpdatedAt = time.Now()
	return ds.db.Save(flashcard).Error
}

func (ds *FlashcardRepository) DeleteFlashcard(flashcardID string) error {
	return ds.db.Where("id = ?", flashcardID).Delete(&model.Flashcard{}).Error
}
