package main

import (
	"fmt"
	"log"
	"net/http"

	"contactbook/backend/internal/auth"
	"contactbook/backend/internal/config"
	"contactbook/backend/internal/database"
	"contactbook/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "contactbook/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Contactbook API
// @version         1.0
// @description     Contact-management API with bearer-token auth, contact CRUD and contact relationships.
// @host            localhost:8080
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Auth routes (public)
	authRoutes := router.Group("/auth/api/v1")
	{
		authRoutes.POST("/signup", handler.Signup)
		authRoutes.POST("/login", handler.Login)
	}

	// Contact routes (protected)
	contactRoutes := router.Group("/contacts")
	contactRoutes.Use(auth.AuthMiddleware())
	{
		contactRoutes.POST("/createContact", handler.CreateContact)
		contactRoutes.GET("/getContacts", handler.GetContacts)
		contactRoutes.GET("/getContact/:id", handler.GetContact)
		contactRoutes.PUT("/updateContact/:id", handler.UpdateContact)
		contactRoutes.DELETE("/deleteContact/:id", handler.DeleteContact)
	}

	// Relationship routes (protected)
	relationshipRoutes := router.Group("/relationships")
	relationshipRoutes.Use(auth.AuthMiddleware())
	{
		relationshipRoutes.POST("/createRelationship", handler.CreateRelationship)
		relationshipRoutes.GET("/getRelationships", handler.GetRelationships)
	}

	addr := ":" + config.AppConfig.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost" + addr + "/swagger/index.html")
	log.Fatal(router.Run(addr))
}
