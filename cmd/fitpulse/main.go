package main

import (
	"context"
	"net/http"
	"net/url"
	"time"

	// Autoloads .env file to supply environment variables
	_ "github.com/joho/godotenv/autoload"

	"github.com/fitpulse/fitpulse/internal/account"
	"github.com/fitpulse/fitpulse/internal/client"
	"github.com/fitpulse/fitpulse/internal/config"
	"github.com/fitpulse/fitpulse/internal/feed"
	"github.com/fitpulse/fitpulse/internal/handlers"
	"github.com/fitpulse/fitpulse/internal/insight"
	"github.com/fitpulse/fitpulse/internal/logger"
	"github.com/fitpulse/fitpulse/internal/store"
	"github.com/fitpulse/fitpulse/internal/workout"
)

func main() {
	log := logger.New()
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := store.New(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatalf("connecting to store: %v", err)
	}

	geminiURL, err := url.Parse(insight.BaseURL)
	if err != nil {
		log.Fatalf("parsing Gemini base URL: %v", err)
	}
	advisor := insight.NewAdvisor(client.NewClient(geminiURL, nil), cfg.GeminiAPIKey, cfg.GeminiModel, log)

	router := handlers.NewRouter(
		account.NewService(st, log),
		workout.NewLedger(st, log),
		feed.New(st, log),
		advisor,
		log,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Infof("starting server on port %s", cfg.Port)
	log.Fatal(srv.ListenAndServe())
}
