package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"walter-backend/internal/config"
	"walter-backend/internal/handlers"
	"walter-backend/internal/router"
	"walter-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Walter Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Assistant Client ────
	assistantService := services.NewAssistantService(
		cfg.OpenAIBaseURL,
		cfg.OpenAIAPIKey,
		cfg.AssistantID,
		time.Duration(cfg.PollIntervalMS)*time.Millisecond,
		time.Duration(cfg.RunTimeoutSeconds)*time.Second,
	)
	log.Printf("✓ Assistant client initialized (assistant %s)", cfg.AssistantID)

	// ──── Initialize Handlers ────
	walterHandler := handlers.NewWalterHandler(assistantService)

	// ──── Step 3: Start HTTP Server ────
	r := router.New(walterHandler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// The write timeout must outlast the assistant run deadline.
		WriteTimeout: time.Duration(cfg.RunTimeoutSeconds+30) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Walter Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Webhook: POST http://localhost:%s/walter", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
