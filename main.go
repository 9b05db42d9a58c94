package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/kopichat-core-poc/server/internal/agent"
	"github.com/kopichat-core-poc/server/internal/agent/graph"
	"github.com/kopichat-core-poc/server/internal/agent/model"
	"github.com/kopichat-core-poc/server/internal/agent/repo"
	"github.com/kopichat-core-poc/server/internal/core"
	logx "github.com/kopichat-core-poc/server/pkg/logger"
	pkgredis "github.com/kopichat-core-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the assistant,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Assistant configs
	Fallback model.FallbackModelConfig
	Prompt   model.FallbackPromptConfig
	Session  model.SessionConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(envCfg.Session.TTL)
	if err != nil {
		log.Fatalf("Invalid SESSION_TTL '%s': %v", envCfg.Session.TTL, err)
	}

	bot, err := agent.Build(ctx, graph.Config{
		APIKey:         envCfg.APIKey,
		BaseURL:        envCfg.BaseURL,
		FallbackModel:  envCfg.Fallback,
		FallbackPrompt: envCfg.Prompt,
		Session:        envCfg.Session,
		SessionRepo:    repo.NewRedisSessionRepository(rdb, ttl),
	})
	if err != nil {
		log.Fatalf("Failed to build agent: %v", err)
	}

	demoTurns := []struct {
		description string
		text        string
	}{
		{
			description: "Outlet inquiry that needs a follow-up",
			text:        "Is there an outlet in Petaling Jaya?",
		},
		{
			description: "Outlet named, opening hours expected",
			text:        "SS 2, what's the opening time?",
		},
		{
			description: "Arithmetic request",
			text:        "Calculate 5 * 6",
		},
		{
			description: "Product catalog question",
			text:        "What tumblers do you offer?",
		},
		{
			description: "Off-topic, handled by the fallback model",
			text:        "Tell me a joke",
		},
	}

	sessionID := fmt.Sprintf("demo-session-%d", os.Getpid())

	for i, turn := range demoTurns {
		fmt.Printf("\nTurn %d: %s\n", i+1, turn.description)
		fmt.Printf("User: %s\n", turn.text)

		response := bot.ProcessTurn(ctx, sessionID, turn.text)
		fmt.Printf("Bot:  %s\n", response)

		// slight delay between turns for readability
		time.Sleep(300 * time.Millisecond)
	}

	if err := bot.Reset(ctx, sessionID); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("Failed to reset demo session")
	}
	fmt.Println("\nDemo session complete.")
}
