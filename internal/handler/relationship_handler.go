package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"contactbook/backend/internal/database"
	"contactbook/backend/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// region --- DTOs ---

// RelationshipInput defines the structure for creating a relationship.
type RelationshipInput struct {
	ContactID        uint                    `json:"contactId" binding:"required" example:"1"`
	RelatedContactID uint                    `json:"relatedContactId" binding:"required" example:"2"`
	RelationshipType models.RelationshipType `json:"relationshipType" binding:"required" example:"FRIEND"`
	Strength         *int                    `json:"strength" binding:"omitempty,min=1,max=10" example:"5"`
}

// RelationshipResponse defines the structure for a relationship in API
// responses, with both endpoint contacts embedded in full.
type RelationshipResponse struct {
	ID               uint                    `json:"id" example:"1"`
	ContactID        uint                    `json:"contactId" example:"1"`
	RelatedContactID uint                    `json:"relatedContactId" example:"2"`
	RelationshipType models.RelationshipType `json:"relationshipType" example:"FRIEND"`
	Strength         int                     `json:"strength" example:"5"`
	CreatedAt        time.Time               `json:"createdAt"`
	Contact          *ContactResponse        `json:"contact,omitempty"`
	RelatedContact   *ContactResponse        `json:"relatedContact,omitempty"`
}

func newRelationshipResponse(rel models.Relationship) RelationshipResponse {
	resp := RelationshipResponse{
		ID:               rel.ID,
		ContactID:        rel.ContactID,
		RelatedContactID: rel.RelatedContactID,
		RelationshipType: rel.RelationshipType,
		Strength:         rel.Strength,
		CreatedAt:        rel.CreatedAt,
	}
	if rel.Contact.ID != 0 {
		contact := newContactResponse(rel.Contact)
		resp.Contact = &contact
	}
	if rel.RelatedContact.ID != 0 {
		related := newContactResponse(rel.RelatedContact)
		resp.RelatedContact = &related
	}
	return resp
}

// endregion

// CreateRelationship godoc
// @Summary      Create a relationship
// @Description  Creates an undirected relationship between two contacts owned by the authenticated user. At most one edge may exist per pair, regardless of direction.
// @Tags         relationships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RelationshipInput true "Relationship Info"
// @Success      201  {object}  map[string]interface{} "{"message": "...", "relationship": {...}}"
// @Failure      400  {object}  ErrorResponse "Missing fields, self-relationship, or duplicate"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Contacts must belong to the authenticated user"
// @Failure      500  {object}  ErrorResponse
// @Router       /relationships/createRelationship [post]
func CreateRelationship(c *gin.Context) {
	ownerID, _ := c.Get("userID")

	var input RelationshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRelationshipType(input.RelationshipType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid relationship type"})
		return
	}

	if input.ContactID == input.RelatedContactID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A contact cannot have a relationship with themselves"})
		return
	}

	// Both endpoints must exist and belong to the caller. The two lookups are
	// independent reads, so they run concurrently.
	var contact, relatedContact models.Contact
	g := new(errgroup.Group)
	g.Go(func() error {
		return database.DB.Where("id = ? AND owner_id = ?", input.ContactID, ownerID).First(&contact).Error
	})
	g.Go(func() error {
		return database.DB.Where("id = ? AND owner_id = ?", input.RelatedContactID, ownerID).First(&relatedContact).Error
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Contacts must belong to the authenticated user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify contacts"})
		return
	}

	strength := models.DefaultStrength
	if input.Strength != nil {
		strength = *input.Strength
	}

	relationship := models.Relationship{
		ContactID:        input.ContactID,
		RelatedContactID: input.RelatedContactID,
		RelationshipType: input.RelationshipType,
		Strength:         strength,
	}

	// The duplicate check and the insert must be atomic, otherwise two
	// concurrent requests for the same pair could both pass the check.
	tx := database.DB.Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create relationship"})
		return
	}

	var existing models.Relationship
	err := tx.Where(
		"(contact_id = ? AND related_contact_id = ?) OR (contact_id = ? AND related_contact_id = ?)",
		input.ContactID, input.RelatedContactID,
		input.RelatedContactID, input.ContactID,
	).First(&existing).Error
	if err == nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Relationship already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create relationship"})
		return
	}

	if err := tx.Create(&relationship).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Relationship already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create relationship"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create relationship"})
		return
	}

	relationship.Contact = contact
	relationship.RelatedContact = relatedContact

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Relationship created successfully",
		"relationship": newRelationshipResponse(relationship),
	})
}

// GetRelationships godoc
// @Summary      List relationships
// @Description  Returns all relationships whose both endpoint contacts are owned by the authenticated user, newest first.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "{"count": n, "relationships": [...]}"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /relationships/getRelationships [get]
func GetRelationships(c *gin.Context) {
	ownerID, _ := c.Get("userID")

	// gorm only filters soft deletes on the primary model; the joined
	// contacts need the deleted_at guard spelled out.
	var relationships []models.Relationship
	err := database.DB.
		Joins("JOIN contacts AS c ON c.id = relationships.contact_id AND c.deleted_at IS NULL").
		Joins("JOIN contacts AS rc ON rc.id = relationships.related_contact_id AND rc.deleted_at IS NULL").
		Where("c.owner_id = ? AND rc.owner_id = ?", ownerID, ownerID).
		Preload("Contact").
		Preload("RelatedContact").
		Order("relationships.created_at DESC").
		Find(&relationships).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch relationships"})
		return
	}

	responses := make([]RelationshipResponse, 0, len(relationships))
	for _, rel := range relationships {
		responses = append(responses, newRelationshipResponse(rel))
	}

	c.JSON(http.StatusOK, gin.H{
		"count":         len(responses),
		"relationships": responses,
	})
}
