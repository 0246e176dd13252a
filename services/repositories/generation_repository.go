package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jakobos/10x-cards/model"
)

type GenerationRepository struct {
	BaseRepository
}

func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *GenerationRepository) GetGeneration(generationID, userID, deckID string) (*model.Generation, error) {
	var generation model.Generation
	if err := ds.db.Where("id = ? AND user_id = ? AND deck_id = ?", generationID, userID, deckID).
		First(&generation).Error; err != nil {
		return nil, err
	}
	return &generation, nil
}

func (ds *GenerationRepository) CreateGeneration(generation *model.Generation) (*model.Generation, error) {
	if generation.ID == "" {
		id, _ := uuid.NewV7()
		generation.ID = id.String()
	}
	if err := ds.db.Create(generation).Error; err != nil {
		return nil, err
	}
	return generation, nil
}

// UpdateAcceptanceMetrics writes the post-hoc acceptance counts. Called
// exactly once per generation, when the batch commit lands.
func (ds *GenerationRepository) UpdateAcceptanceMetrics(generationID string, unedited, edited int) error {
	return ds.db.Model(&model.Generation{}).
		Where("id = ?", generationID).
		Updates(map[string]interface{}{
			"accepted_unedited_count": unedited,
			"accepted_edited_count":   edited,
		}).Error
}
