package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAssistantID is the hosted assistant the relay forwards questions to.
// It is configuration, never user input; override with OPENAI_ASSISTANT_ID.
const DefaultAssistantID = "asst_Q0N8ruhG6yWlUNPtk1HZca7"

type Config struct {
	// Server
	Port string
	Env  string

	// OpenAI Assistants
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	AssistantID       string
	PollIntervalMS    int
	RunTimeoutSeconds int

	// CORS
	AllowedOrigins []string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8000"),
		Env:               getEnvOrDefault("ENV", "development"),
		OpenAIAPIKey:      mustGetEnv("OPENAI_API_KEY"),
		OpenAIBaseURL:     getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AssistantID:       getEnvOrDefault("OPENAI_ASSISTANT_ID", DefaultAssistantID),
		PollIntervalMS:    getEnvAsIntOrDefault("OPENAI_POLL_INTERVAL_MS", 750),
		RunTimeoutSeconds: getEnvAsIntOrDefault("OPENAI_RUN_TIMEOUT_SECONDS", 90),
		AllowedOrigins:    splitList(getEnvOrDefault("ALLOWED_ORIGINS", "*")),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
