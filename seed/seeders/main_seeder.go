package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// 1. Users first (decks depend on them)
	userSeeder := NewUserSeeder(s.db)
	if err := userSeeder.SeedUsers(); err != nil {
		log.Printf("User seeding failed: %v", err)
		return err
	}

	// 2. Decks with a handful of manual flashcards
	deckSeeder := NewDeckSeeder(s.db)
	if err := deckSeeder.SeedDecks(); err != nil {
		log.Printf("Deck seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedUsersOnly seeds just the demo users
func (s *MainSeeder) SeedUsersOnly() error {
	return NewUserSeeder(s.db).SeedUsers()
}

// SeedDecksOnly seeds decks for the existing demo user
func (s *MainSeeder) SeedDecksOnly() error {
	return NewDeckSeeder(s.db).SeedDecks()
}
