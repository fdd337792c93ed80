package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"pothole-ambulance-be/config"
	"pothole-ambulance-be/models"
	"pothole-ambulance-be/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	log.Println("MongoDB connection established successfully!")

	config.ConnectRedis()

	if err := models.EnsureUserIndexes(config.GetCollection("users")); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	if err := models.EnsureUnitIndexes(config.GetCollection("ambulance_units")); err != nil {
		log.Fatalf("Failed to create ambulance unit indexes: %v", err)
	}
	if err := models.EnsureIssueIndexes(config.GetCollection("issues")); err != nil {
		log.Fatalf("Failed to create issue indexes: %v", err)
	}
	if err := models.EnsureVoteIndex(config.GetCollection("votes")); err != nil {
		log.Fatalf("Failed to create vote index: %v", err)
	}

	r := gin.Default()

	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
	if frontendOrigin == "" {
		frontendOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.AmbulanceRoutes(r)
	routes.FeedbackRoutes(r)
	routes.AdminRoutes(r)
	routes.FileRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
