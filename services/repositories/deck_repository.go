package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jakobos/10x-cards/model"
)

// DeckRepository handles deck persistence. Ownership is always part of the
// lookup so a deck id from another user behaves like a missing row.
type DeckRepository struct {
	BaseRepository
}

func NewDeckRepository(db *gorm.DB) *DeckRepository {
	return &DeckRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *DeckRepository) GetDeck(deckID, userID string) (*model.Deck, error) {
	var deck model.Deck
	if err := ds.db.Where("id = ? AND user_id = ?", deckID, userID).First(&deck).Error; err != nil {
		return nil, err
	}
	return &deck, nil
}

func (ds *DeckRepository) GetDecks(userID string, offset, limit int) ([]model.Deck, int64, error) {
	var decks []model.Deck
	var total int64

	if err := ds.db.Model(&model.Deck{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := ds.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&decks).Error; err != nil {
		return nil, 0, err
	}

	return decks, total, nil
}

func (ds *DeckRepository) CountFlashcards(deckID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Flashcard{}).Where("deck_id = ?", deckID).Count(&count).Error
	return count, err
}

func (ds *DeckRepository) CreateDeck(deck *model.Deck) (*model.Deck, error) {
	if deck.ID == "" {
		id, _ := uuid.NewV7()
		deck.ID = id.String()
	}
	if err := ds.db.Create(deck).Error; err != nil {
		return nil, err
	}
	return deck, nil
}

func (ds *DeckRepository) UpdateDeck(deck *model.Deck) error {
	return ds.db.Save(deck).Error
}

// DeleteDeck removes the deck and, through the FK cascade, its flashcards.
func (ds *DeckRepository) DeleteDeck(deckID, userID string) error {
	return ds.db.Where("id = ? AND user_id = ?", deckID, userID).Delete(&model.Deck{}).Error
}
