package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"contactbook/backend/internal/database"
	"contactbook/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// ContactInput defines the structure for creating a contact.
type ContactInput struct {
	Name         string              `json:"name" binding:"required,min=3" example:"John Smith"`
	Phone        string              `json:"phone" binding:"required" example:"+15551234567"`
	Email        string              `json:"email" binding:"omitempty,email" example:"john@example.com"`
	Address      string              `json:"address" example:"12 Main St"`
	Notes        string              `json:"notes" example:"Met at the conference"`
	PrivacyLevel models.PrivacyLevel `json:"privacyLevel" binding:"omitempty,oneof=PRIVATE PUBLIC" example:"PRIVATE"`
}

// UpdateContactInput defines the partial-update structure. Nil fields are
// left untouched.
type UpdateContactInput struct {
	Name         *string              `json:"name" binding:"omitempty,min=3"`
	Phone        *string              `json:"phone"`
	Email        *string              `json:"email" binding:"omitempty,email"`
	Address      *string              `json:"address"`
	Notes        *string              `json:"notes"`
	PrivacyLevel *models.PrivacyLevel `json:"privacyLevel" binding:"omitempty,oneof=PRIVATE PUBLIC"`
}

// OwnerSummary embeds the owning user inside a contact response.
type OwnerSummary struct {
	ID    uint   `json:"id" example:"1"`
	Name  string `json:"name" example:"Jane Doe"`
	Email string `json:"email" example:"jane@example.com"`
}

// ContactResponse defines the structure for a contact in API responses.
type ContactResponse struct {
	ID           uint                `json:"id" example:"1"`
	Name         string              `json:"name" example:"John Smith"`
	Phone        string              `json:"phone" example:"+15551234567"`
	Email        string              `json:"email" example:"john@example.com"`
	Address      string              `json:"address" example:"12 Main St"`
	Notes        string              `json:"notes" example:"Met at the conference"`
	PrivacyLevel models.PrivacyLevel `json:"privacyLevel" example:"PRIVATE"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Owner        *OwnerSummary       `json:"owner,omitempty"`
}

func newContactResponse(contact models.Contact) ContactResponse {
	resp := ContactResponse{
		ID:           contact.ID,
		Name:         contact.Name,
		Phone:        contact.Phone,
		Email:        contact.Email,
		Address:      contact.Address,
		Notes:        contact.Notes,
		PrivacyLevel: contact.PrivacyLevel,
		CreatedAt:    contact.CreatedAt,
		UpdatedAt:    contact.UpdatedAt,
	}
	if contact.Owner.ID != 0 {
		resp.Owner = &OwnerSummary{
			ID:    contact.Owner.ID,
			Name:  contact.Owner.Name,
			Email: contact.Owner.Email,
		}
	}
	return resp
}

// endregion

// CreateContact godoc
// @Summary      Create a contact
// @Description  Creates a contact owned by the authenticated user. Phone must be unique among the caller's contacts.
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ContactInput true "Contact Info"
// @Success      201  {object}  map[string]interface{} "{"message": "...", "contact": {...}}"
// @Failure      400  {object}  ErrorResponse "Missing fields or duplicate phone"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contacts/createContact [post]
func CreateContact(c *gin.Context) {
	ownerID, _ := c.Get("userID")

	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Contact
	if err := database.DB.Where("owner_id = ? AND phone = ?", ownerID, input.Phone).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contact already exists!"})
		return
	}

	privacy := input.PrivacyLevel
	if privacy == "" {
		privacy = models.PrivacyPrivate
	}

	contact := models.Contact{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		Address:      input.Address,
		Notes:        input.Notes,
		PrivacyLevel: privacy,
		OwnerID:      ownerID.(uint),
	}
	if err := database.DB.Create(&contact).Error; err != nil {
		// The (owner_id, phone) index catches duplicates that race past the
		// pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Contact already exists!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Contact created successfully",
		"contact": newContactResponse(contact),
	})
}

// GetContacts godoc
// @Summary      List contacts
// @Description  Returns all contacts owned by the authenticated user, each with an embedded owner summary.
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]ContactResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contacts/getContacts [get]
func GetContacts(c *gin.Context) {
	ownerID, _ := c.Get("userID")

	var contacts []models.Contact
	if err := database.DB.Preload("Owner").Where("owner_id = ?", ownerID).Find(&contacts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contacts"})
		return
	}

	responses := make([]ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		responses = append(responses, newContactResponse(contact))
	}

	c.JSON(http.StatusOK, gin.H{"contacts": responses})
}

// GetContact godoc
// @Summary      Get a contact by ID
// @Description  Fetches one of the authenticated user's contacts. Contacts of other users are reported as not found.
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Contact ID"
// @Success      200  {object}  map[string]ContactResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Contact not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /contacts/getContact/{id} [get]
func GetContact(c *gin.Context) {
	ownerID, _ := c.Get("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	var contact models.Contact
	if err := database.DB.Preload("Owner").Where("id = ? AND owner_id = ?", id, ownerID).First(&contact).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": newContactResponse(contact)})
}

// UpdateContact godoc
// @Summary      Update a contact
// @Description  Overwrites the supplied fields of one of the authenticated user's contacts.
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Contact ID"
// @Param        input body UpdateContactInput true "Fields to update"
// @Success      200  {object}  map[string]ContactResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Contact not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /contacts/updateContact/{id} [put]
func UpdateContact(c *gin.Context) {
	ownerID, _ := c.Get("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	var input UpdateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var contact models.Contact
	if err := database.DB.Where("id = ? AND owner_id = ?", id, ownerID).First(&contact).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.PrivacyLevel != nil {
		updates["privacy_level"] = *input.PrivacyLevel
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&contact).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
			return
		}
	}

	if err := database.DB.Preload("Owner").First(&contact, contact.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": newContactResponse(contact)})
}

// DeleteContact godoc
// @Summary      Delete a contact
// @Description  Deletes one of the authenticated user's contacts and returns the deleted record.
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Contact ID"
// @Success      200  {object}  map[string]ContactResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Contact not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /contacts/deleteContact/{id} [delete]
func DeleteContact(c *gin.Context) {
	ownerID, _ := c.Get("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	var contact models.Contact
	if err := database.DB.Where("id = ? AND owner_id = ?", id, ownerID).First(&contact).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	// Deletes are hard, not soft: a soft-deleted row would keep occupying the
	// (owner_id, phone) unique index and block the number forever. Edges
	// touching the contact go with it.
	tx := database.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}

	if err := tx.Unscoped().
		Where("contact_id = ? OR related_contact_id = ?", contact.ID, contact.ID).
		Delete(&models.Relationship{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}

	if err := tx.Unscoped().Delete(&contact).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": newContactResponse(contact)})
}
