package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Antivibe-Inc/face-labs-sub000/internal/analysis"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/config"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/llm"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/server"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/storage"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/storage/postgres"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/storage/sqlite"
)

func main() {
	envFile := flag.String("env", ".env", "Path to .env file (optional)")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load %s: %v", *envFile, err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slots, err := openSlotStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer slots.Close()

	provider, err := llm.NewVisionProvider(llm.ProviderConfig{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.OpenAIAPIKey,
		Model:    providerModel(cfg),
		BaseURL:  providerBaseURL(cfg),
		Timeout:  cfg.AI.RequestTimeout,
	})
	if err != nil {
		log.Printf("Warning: no vision provider available, running offline: %v", err)
		provider = nil
	} else {
		log.Printf("Vision provider: %s (%s)", cfg.AI.Provider, provider.GetModel())
	}

	seed := cfg.AI.FallbackSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fallback := analysis.NewFallbackGenerator(seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, _ := server.Start(ctx, cfg, server.Deps{
		History:  storage.NewHistoryStore(slots),
		Settings: storage.NewSettingsStore(slots),
		Analyzer: analysis.NewService(provider, fallback),
		Dialogue: analysis.NewDialogueManager(provider, fallback),
	})
	log.Printf("FaceLab API running at http://%s", addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	cancel()
	time.Sleep(1 * time.Second) // Give time for connections to close
}

// openSlotStore constructs the configured storage engine.
func openSlotStore(cfg *config.Config) (storage.SlotStore, error) {
	switch cfg.Storage.Engine {
	case "postgres":
		return postgres.NewSlotStore(cfg.Storage.PostgresURL)
	default:
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
			return nil, err
		}
		return sqlite.NewSlotStore(filepath.Join(cfg.Storage.DataPath, "facelab.db"))
	}
}

func providerModel(cfg *config.Config) string {
	if cfg.AI.Provider == "openai" {
		return cfg.AI.OpenAIModel
	}
	return cfg.AI.OllamaModel
}

func providerBaseURL(cfg *config.Config) string {
	if cfg.AI.Provider == "openai" {
		return cfg.AI.OpenAIBaseURL
	}
	return cfg.AI.OllamaURL
}
