package model

import "time"

type User struct {
	ID        string `gorm:"primaryKey;type:text;not null"`
	Email     string `gorm:"unique;not null;size:255"`
	Username  string `gorm:"unique;not null;size:30"`
	Password  string `gorm:"not null"`
	LastLogin time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
