package main

import (
	"context"
	"log"

	"github.com/inkstream/backend/internal/router"
	"github.com/inkstream/backend/internal/services"
	"github.com/inkstream/backend/pkg/config"
	"github.com/inkstream/backend/pkg/firebase"
	"github.com/inkstream/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase Cloud Messaging; push is optional and the server
	// runs without it when credentials are absent.
	ctx := context.Background()
	var pusher services.Pusher
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Printf("Firebase init failed, notification push disabled: %v", err)
		} else {
			pusher = firebase.NewPusher(firebaseApp.MessagingClient)
		}
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, pusher)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
