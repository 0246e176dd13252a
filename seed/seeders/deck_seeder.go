package seeders

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jakobos/10x-cards/model"
	"github.com/jakobos/10x-cards/shared"
)

// DeckSeeder handles seeding a demo deck with manual flashcards
type DeckSeeder struct {
	db *gorm.DB
}

// NewDeckSeeder creates a new deck seeder
func NewDeckSeeder(db *gorm.DB) *DeckSeeder {
	return &DeckSeeder{db: db}
}

// SeedDecks creates an example deck for the demo user
func (s *DeckSeeder) SeedDecks() error {
	var user model.User
	if err := s.db.Where("email = ?", demoEmail).First(&user).Error; err != nil {
		log.Println("Demo user not found, run user seeding first")
		return err
	}

	var existing model.Deck
	if err := s.db.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		log.Println("Demo deck already exists, skipping deck seeding")
		return nil
	}

	deckID, err := uuid.NewV7()
	if err != nil {
		return err
	}

	deck := model.Deck{
		ID:          deckID.String(),
		UserID:      user.ID,
		Name:        "Go basics",
		Description: "A starter deck to explore the review workflow",
	}
	if err := s.db.Create(&deck).Error; err != nil {
		log.Printf("Error creating demo deck: %v", err)
		return err
	}

	cards := [][2]string{
		{"What does a goroutine run on?", "A lightweight thread multiplexed onto OS threads by the Go runtime."},
		{"How do you signal cancellation to a blocking call?", "Pass a context.Context and watch ctx.Done()."},
		{"What is the zero value of a map?", "nil; reads work but writes panic until it is initialized with make."},
	}
	for _, card := range cards {
		cardID, err := uuid.NewV7()
		if err != nil {
			return err
		}
		flashcard := model.Flashcard{
			ID:     cardID.String(),
			DeckID: deck.ID,
			Front:  card[0],
			Back:   card[1],
			Source: shared.SourceManual,
		}
		if err := s.db.Create(&flashcard).Error; err != nil {
			log.Printf("Error creating demo flashcard: %v", err)
			return err
		}
	}

	log.Printf("Created demo deck %q with %d flashcards", deck.Name, len(cards))
	return nil
}
