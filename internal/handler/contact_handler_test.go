package handler

import (
	"fmt"
	"net/http"
	"testing"

	"contactbook/backend/internal/database"
	"contactbook/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContact_Success(t *testing.T) {
	router := setupRouter(t)
	_, token := createTestUser(t, "Jane", "jane@example.com", "password123")

	w := doRequest(t, router, http.MethodPost, "/contacts/createContact", token, map[string]interface{}{
		"name":         "John Smith",
		"phone":        "+15551234567",
		"email":        "john@example.com",
		"address":      "12 Main St",
		"notes":        "Met at the conference",
		"privacyLevel": "PUBLIC",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	contact, ok := body["contact"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "John Smith", contact["name"])
	assert.Equal(t, "PUBLIC", contact["privacyLevel"])
}

func TestCreateContact_DefaultsToPrivate(t *testing.T) {
	router := setupRouter(t)
	_, token := createTestUser(t, "Jane", "jane@example.com", "password123")

	w := doRequest(t, router, http.MethodPost, "/contacts/createContact", token, map[string]interface{}{
		"name":  "John Smith",
		"phone": "+15551234567",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Contact
	require.NoError(t, database.DB.Where("phone = ?", "+15551234567").First(&stored).Error)
	assert.Equal(t, models.PrivacyPrivate, stored.PrivacyLevel)
}

func TestCreateContact_MissingFields(t *testing.T) {
	router := setupRouter(t)
	_, token := createTestUser(t, "Jane", "jane@example.com", "password123")

	w := doRequest(t, router, http.MethodPost, "/contacts/createContact", token, map[string]interface{}{
		"name": "John Smith",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateContact_DuplicatePhone(t *testing.T) {
	router := setupRouter(t)
	user, token := createTestUser(t, "Jane", "jane@example.com", "password123")
	createTestContact(t, user.ID, "John", "+15551234567")

	w := doRequest(t, router, http.MethodPost, "/contacts/createContact", token, map[string]interface{}{
		"name":  "Also John",
		"phone": "+15551234567",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Contact{}).Where("phone = ?", "+15551234567").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateContact_SamePhoneDifferentOwner(t *testing.T) {
	router := setupRouter(t)
	other, _ := createTestUser(t, "Other", "other@example.com", "password123")
	createTestContact(t, other.ID, "John", "+15551234567")
	_, token := createTestUser(t, "Jane", "jane@example.com", "password123")

	// Phone uniqueness is scoped per owner.
	w := doRequest(t, router, http.MethodPost, "/contacts/createContact", token, map[string]interface{}{
		"name":  "My John",
		"phone": "+15551234567",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetContacts_ScopedToOwner(t *testing.T) {
	router := setupRouter(t)
	user, token := createTestUser(t, "Jane", "jane@example.com", "password123")
	other, _ := createTestUser(t, "Other", "other@example.com", "password123")
	createTestContact(t, user.ID, "Mine", "+15550000001")
	createTestContact(t, user.ID, "Also Mine", "+15550000002")
	createTestContact(t, other.ID, "Not Mine", "+15550000003")

	w := doRequest(t, router, http.MethodGet, "/contacts/getContacts", token, nil)

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	contacts, ok := body["contacts"].([]interface{})
	require.True(t, ok)
	require.Len(t, contacts, 2)

	for _, raw := range contacts {
		contact := raw.(map[string]interface{})
		owner, ok := contact["owner"].(map[string]interface{})
		require.True(t, ok, "each contact embeds an owner summary")
		assert.EqualValues(t, user.ID, owner["id"])
		assert.Equal(t, "jane@example.com", owner["email"])
	}
}

func TestGetContact_NotOwned(t *testing.T) {
	router := setupRouter(t)
	_, token := createTestUser(t, "Jane", "jane@example.com", "password123")
	other, _ := createTestUser(t, "Other", "other@example.com", "password123")
	foreign := createTestContact(t, other.ID, "Not Mine", "+15550000003")

	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/contacts/getContact/%d", foreign.ID), token, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetContact_Success(t *testing.T) {
	router := setupRouter(t)
	user, token := createTestUser(t, "Jane", "jane@example.com", "password123")
	contact := createTestContact(t, user.ID, "John", "+15551234567")

	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/contacts/getContact/%d", contact.ID), token, nil)

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	got := body["contact"].(map[string]interface{})
	assert.EqualValues(t, contact.ID, got["id"])
	assert.Equal(t, "John", got["name"])
}

func TestUpdateContact_PartialFields(t *testing.T) {
	router := setupRouter(t)
	user, token := createTestUser(t, "Jane", "jane@example.com", "password123")
	contact := createTestContact(t, user.ID, "John", "+15551234567")

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/contacts/updateContact/%d", contact.ID), token, map[string]interface{}{
		"notes": "moved away",
	})

	require.Equal(t, http.StatusOK, w.Code)

	// The response carries the reloaded record, owner included.
	body := decodeBody(t, w)
	got := body["contact"].(map[string]interface{})
	assert.Equal(t, "moved away", got["notes"])
	owner, ok := got["owner"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, user.ID, owner["id"])

	var stored models.Contact
	require.NoError(t, database.DB.First(&stored, contact.ID).Error)
	assert.Equal(t, "moved away", stored.Notes)
	assert.Equal(t, "John", stored.Name, "unsupplied fields stay untouched")
	assert.Equal(t, "+15551234567", stored.Phone)
}

func TestUpdateContact_NotOwned(t *testing.T) {
	router := setupRouter(t)
	_, token := createTestUser(t, "Jane", "jane@example.com", "password123")
	other, _ := createTestUser(t, "Other", "other@example.com", "password123")
	foreign := createTestContact(t, other.ID, "Not Mine", "+15550000003")

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/contacts/updateContact/%d", foreign.ID), token, map[string]interface{}{
		"name": "Hijacked",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var stored models.Contact
	require.NoError(t, database.DB.First(&stored, foreign.ID).Error)
	assert.Equal(t, "Not Mine", stored.Name)
}

func TestDeleteContact_ReturnsDeletedRecord(t *testing.T) {
	router := setupRouter(t)
	user, token := createTestUser(t, "Jane", "jane@example.com", "password123")
	contact := createTestContact(t, user.ID, "John", "+15551234567")

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/contacts/deleteContact/%d", contact.ID), token, nil)

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	got := body["contact"].(map[string]interface{})
	assert.EqualValues(t, contact.ID, got["id"])

	var count int64
	database.DB.Model(&models.Contact{}).Where("id = ?", contact.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteContact_FreesPhoneForReuse(t *testing.T) {
	router := setupRouter(t)
	user, token := createTestUser(t, "Jane", "jane@example.com", "password123")
	contact := createTestContact(t, user.ID, "John", "+15551234567")

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/contacts/deleteContact/%d", contact.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The row must be gone for real; a soft-deleted row would still occupy
	// the (owner_id, phone) unique index.
	var count int64
	database.DB.Unscoped().Model(&models.Contact{}).Where("id = ?", contact.ID).Count(&count)
	assert.Zero(t, count)

	w = doRequest(t, router, http.MethodPost, "/contacts/createContact", token, map[string]interface{}{
		"name":  "John Again",
		"phone": "+15551234567",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDeleteContact_RemovesItsRelationships(t *testing.T) {
	router := setupRouter(t)
	user, token := createTestUser(t, "Jane", "jane@example.com", "password123")
	c1 := createTestContact(t, user.ID, "C1", "+15550000001")
	c2 := createTestContact(t, user.ID, "C2", "+15550000002")

	rel := models.Relationship{
		ContactID: c1.ID, RelatedContactID: c2.ID,
		RelationshipType: models.RelationFriend, Strength: 5,
	}
	require.NoError(t, database.DB.Create(&rel).Error)

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/contacts/deleteContact/%d", c2.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Unscoped().Model(&models.Relationship{}).Where("id = ?", rel.ID).Count(&count)
	assert.Zero(t, count, "edges touching a deleted contact go with it")
}

func TestDeleteContact_NotOwned(t *testing.T) {
	router := setupRouter(t)
	_, token := createTestUser(t, "Jane", "jane@example.com", "password123")
	other, _ := createTestUser(t, "Other", "other@example.com", "password123")
	foreign := createTestContact(t, other.ID, "Not Mine", "+15550000003")

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/contacts/deleteContact/%d", foreign.ID), token, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	database.DB.Model(&models.Contact{}).Where("id = ?", foreign.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestContacts_RequireAuth(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/contacts/getContacts", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
