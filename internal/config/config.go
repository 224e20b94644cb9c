package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config holds every runtime knob. Values come from the environment (or .env);
// rate-guard numbers are deliberately configuration, not constants.
type Config struct {
	GatewayURL    string `env:"GATEWAY_URL" envDefault:"ws://127.0.0.1:3001/ws"`
	GatewayToken  string `env:"GATEWAY_TOKEN"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"."`

	OwnerJID string `env:"OWNER_JID"`
	BotMode  string `env:"BOT_MODE" envDefault:"public"` // "public" or "private"

	// Outbound throttle towards the gateway, messages per second.
	SendRate  float64 `env:"SEND_RATE" envDefault:"1"`
	SendBurst int     `env:"SEND_BURST" envDefault:"3"`

	// Profile-picture command family guard.
	ProfileMinInterval  time.Duration `env:"PROFILE_MIN_INTERVAL" envDefault:"30s"`
	ProfileMaxPerWindow int           `env:"PROFILE_MAX_PER_WINDOW" envDefault:"10"`
	ProfileWindow       time.Duration `env:"PROFILE_WINDOW" envDefault:"1h"`

	// Default per-strategy timeout for the retrieval engine.
	RetrieveTimeout time.Duration `env:"RETRIEVE_TIMEOUT" envDefault:"15s"`

	// Git repository the update command syncs from. Empty disables updates.
	UpdateRepoURL string `env:"UPDATE_REPO_URL"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"` // empty = console only
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.BotMode != "public" && cfg.BotMode != "private" {
		return nil, fmt.Errorf("BOT_MODE must be public or private, got %q", cfg.BotMode)
	}
	return cfg, nil
}
