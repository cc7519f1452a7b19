package models

import "gorm.io/gorm"

// User represents an account that owns contacts.
type User struct {
	gorm.Model
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	Contacts []Contact `gorm:"foreignKey:OwnerID"`
}
