package models

import "gorm.io/gorm"

// RelationshipType classifies how two contacts know each other.
type RelationshipType string

const (
	RelationFriend           RelationshipType = "FRIEND"
	RelationFamily           RelationshipType = "FAMILY"
	RelationColleague        RelationshipType = "COLLEAGUE"
	RelationServiceProvider  RelationshipType = "SERVICE_PROVIDER"
	RelationAcquaintance     RelationshipType = "ACQUAINTANCE"
	RelationKnownToEachOther RelationshipType = "KNOWN_TO_EACH_OTHER"
	RelationOther            RelationshipType = "OTHER"
)

// ValidRelationshipType reports whether t is one of the canonical values.
func ValidRelationshipType(t RelationshipType) bool {
	switch t {
	case RelationFriend, RelationFamily, RelationColleague,
		RelationServiceProvider, RelationAcquaintance,
		RelationKnownToEachOther, RelationOther:
		return true
	}
	return false
}

// DefaultStrength is used when a relationship is created without one.
const DefaultStrength = 5

// Relationship is an undirected edge between two contacts of the same owner.
// {A,B} and {B,A} denote the same edge; creation checks both orderings inside
// one transaction, and the composite index rejects exact duplicates at the
// schema level.
type Relationship struct {
	gorm.Model
	ContactID        uint             `gorm:"not null;uniqueIndex:idx_contact_pair"`
	RelatedContactID uint             `gorm:"not null;uniqueIndex:idx_contact_pair"`
	RelationshipType RelationshipType `gorm:"type:varchar(30);not null"`
	Strength         int              `gorm:"not null;default:5"`

	Contact        Contact `gorm:"foreignKey:ContactID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RelatedContact Contact `gorm:"foreignKey:RelatedContactID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
