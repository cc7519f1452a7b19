package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"contactbook/backend/internal/auth"
	"contactbook/backend/internal/config"
	"contactbook/backend/internal/database"
	"contactbook/backend/internal/models"
	"contactbook/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRouter points the global DB at a fresh in-memory sqlite database and
// wires the same routes as cmd/server.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "8080",
		JWTSecret: "test-secret",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db

	router := gin.New()

	authRoutes := router.Group("/auth/api/v1")
	{
		authRoutes.POST("/signup", Signup)
		authRoutes.POST("/login", Login)
	}

	contactRoutes := router.Group("/contacts")
	contactRoutes.Use(auth.AuthMiddleware())
	{
		contactRoutes.POST("/createContact", CreateContact)
		contactRoutes.GET("/getContacts", GetContacts)
		contactRoutes.GET("/getContact/:id", GetContact)
		contactRoutes.PUT("/updateContact/:id", UpdateContact)
		contactRoutes.DELETE("/deleteContact/:id", DeleteContact)
	}

	relationshipRoutes := router.Group("/relationships")
	relationshipRoutes.Use(auth.AuthMiddleware())
	{
		relationshipRoutes.POST("/createRelationship", CreateRelationship)
		relationshipRoutes.GET("/getRelationships", GetRelationships)
	}

	return router
}

// createTestUser inserts a user with a bcrypt-hashed password and returns the
// record plus a valid bearer token for it.
func createTestUser(t *testing.T, name, email, password string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, PasswordHash: string(hash)}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := jwt.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)

	return user, token
}

func createTestContact(t *testing.T, ownerID uint, name, phone string) models.Contact {
	t.Helper()

	contact := models.Contact{
		Name:         name,
		Phone:        phone,
		PrivacyLevel: models.PrivacyPrivate,
		OwnerID:      ownerID,
	}
	require.NoError(t, database.DB.Create(&contact).Error)
	return contact
}

// doRequest performs a JSON request against the router, attaching the bearer
// token when one is given.
func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
