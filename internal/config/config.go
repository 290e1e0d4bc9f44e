package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        int
	DatabaseURL string
	NatsURL     string
	NatsToken   string
	LogLevel    string
	GroqAPIKeys []string
	GroqModel   string
	GroqBaseURL string
}

func Load() Config {
	return Config{
		Port:        envInt("CHATSCOPE_PORT", 8760),
		DatabaseURL: envStr("DATABASE_URL", ""),
		NatsURL:     envStr("NATS_URL", ""),
		NatsToken:   envStr("NATS_TOKEN", ""),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		GroqAPIKeys: envKeys(),
		GroqModel:   envStr("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqBaseURL: envStr("GROQ_BASE_URL", "https://api.groq.com/openai/v1/chat/completions"),
	}
}

// envKeys reads GROQ_API_KEYS (comma-separated) and falls back to the
// single-key GROQ_API_KEY variable.
func envKeys() []string {
	raw := os.Getenv("GROQ_API_KEYS")
	if raw == "" {
		raw = os.Getenv("GROQ_API_KEY")
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
