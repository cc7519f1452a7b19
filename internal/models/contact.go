package models

import "gorm.io/gorm"

// PrivacyLevel controls who may see a contact.
type PrivacyLevel string

const (
	PrivacyPrivate PrivacyLevel = "PRIVATE"
	PrivacyPublic  PrivacyLevel = "PUBLIC"
)

// Contact is an entry in a user's address book.
// Phone is unique per owner, not globally.
type Contact struct {
	gorm.Model
	Name         string       `gorm:"size:255;not null"`
	Phone        string       `gorm:"size:50;not null;uniqueIndex:idx_owner_phone"`
	Email        string       `gorm:"size:255"`
	Address      string
	Notes        string
	PrivacyLevel PrivacyLevel `gorm:"type:varchar(20);not null;default:'PRIVATE'"`
	OwnerID      uint         `gorm:"not null;index;uniqueIndex:idx_owner_phone"`

	Owner User `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
