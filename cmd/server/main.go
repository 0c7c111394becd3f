package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/router"
	"github.com/PzyCool/DomiHive-sub000/pkg/config"
	"github.com/PzyCool/DomiHive-sub000/pkg/push"
	"github.com/PzyCool/DomiHive-sub000/validators"
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

	// Push delivery is optional; the server runs without it.
	var pushSender *push.Sender
	if cfg.FirebaseCredentialsPath != "" {
		ctx := context.Background()
		pushSender, err = push.InitSender(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Printf("Push delivery disabled: %v", err)
			pushSender = nil
		}
	} else {
		log.Println("No Firebase credentials configured, push delivery disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	engine := router.SetupRoutes(e, db, cfg, pushSender)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh

	log.Println("Shutting down server...")
	engine.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Error during server shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
