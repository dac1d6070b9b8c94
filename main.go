package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/cmd"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/core/container"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/core/routes"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/database"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute()
}

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer db.Close()

	log.Println("Connected to the database successfully!")

	nodeID := int64(1)
	if raw := os.Getenv("NODE_ID"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatalf("Invalid NODE_ID: %v", err)
		}
		nodeID = parsed
	}

	appContainer, err := container.NewAppContainer(db, nodeID)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.TimeoutMiddleware(30 * time.Second))

	routes.RegisterUtilityRoutes(router)
	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		panic(err)
	}
}
