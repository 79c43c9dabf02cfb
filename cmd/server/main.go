package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"petsynth/internal/ai"
	"petsynth/internal/assets"
	"petsynth/internal/config"
	"petsynth/internal/database"
	"petsynth/internal/server"

	_ "petsynth/docs/api" // Swagger docs
)

// @title PetSynth API
// @version 1.0.0
// @description AI-assisted pet generation and collection service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT

// @host localhost:8787
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wire AI providers; unset credentials degrade to mock/placeholder output
	store := assets.NewStore(cfg.AssetDir)
	text := ai.NewTextProvider(cfg)
	images := ai.NewImageProvider(cfg, store)

	app := server.New(cfg, db, text, images)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
