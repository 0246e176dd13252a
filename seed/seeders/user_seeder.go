package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jakobos/10x-cards/model"
)

const (
	demoEmail    = "demo@10x-cards.local"
	demoUsername = "demo"
	demoPassword = "Demo1234"
)

// UserSeeder handles seeding demo users
type UserSeeder struct {
	db *gorm.DB
}

// NewUserSeeder creates a new user seeder
func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

// SeedUsers creates the demo user when it does not exist yet
func (s *UserSeeder) SeedUsers() error {
	var existing model.User
	if err := s.db.Where("email = ?", demoEmail).First(&existing).Error; err == nil {
		log.Println("Demo user already exists, skipping user seeding")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	user := model.User{
		ID:        id.String(),
		Email:     demoEmail,
		Username:  demoUsername,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.db.Create(&user).Error; err != nil {
		log.Printf("Error creating demo user: %v", err)
		return err
	}

	log.Printf("Created demo user: %s (password: %s)", user.Email, demoPassword)
	return nil
}
