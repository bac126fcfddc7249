package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Oracle subprocess
	StepperJS     string
	StepperNode   string
	SolverTimeout time.Duration
	MaxRetries    int

	// LLM engine (optional; bot-only unless set)
	GeminiAPIKey string
	GeminiModel  string

	// Renderer
	RendererBin string
	MediaDir    string

	// Bot
	TelegramBotToken string
	WebhookURL       string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("bad %s=%q, using %d", k, os.Getenv(k), def)
	}
	return def
}

// Load reads the shared configuration. Bot-only settings (token, DSN) are
// validated by cmd/bot, not here, so the CLI runs without them.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		StepperJS:     getEnv("STEPPER_JS", "math_stepper.js"),
		StepperNode:   getEnv("STEPPER_NODE", "node"),
		SolverTimeout: time.Duration(getEnvInt("STEPPER_TIMEOUT", 10)) * time.Second,
		MaxRetries:    getEnvInt("SOLVER_MAX_RETRIES", 2),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		RendererBin: getEnv("RENDERER_BIN", "scene-compositor"),
		MediaDir:    getEnv("MEDIA_DIR", "media/videos"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		WebhookURL:       os.Getenv("WEBHOOK_URL"),
	}
}
