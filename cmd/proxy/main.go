package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"chat_proxy/internal/config"
	"chat_proxy/internal/httpapi"
)

func main() {
	_ = godotenv.Load()

	// Load configuration; an unusable provider setup is fatal here, before
	// the server ever accepts traffic.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Create router with all dependencies wired up
	mux, deps, err := httpapi.NewRouter(cfg)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	addr := ":" + cfg.HTTPPort
	server := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: responses wait on upstream generations, which
		// are bounded by the provider request timeout instead.
		IdleTimeout: 120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Chat proxy listening on %s (provider %s)", addr, deps.Provider.Kind())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Flush remaining buffered request logs
	if deps.RequestLogger != nil {
		deps.RequestLogger.Shutdown()
	}

	// Release provider connections
	if deps.Provider != nil {
		_ = deps.Provider.Close()
	}

	log.Println("Server exited")
}
