package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Port        string `envconfig:"PORT" default:"8080"`

	AIAPIKey    string  `envconfig:"GEMINI_API_KEY" required:"true"`
	GenModel    string  `envconfig:"GEN_MODEL" default:"gemini-1.5-flash"`
	Temperature float32 `envconfig:"GEN_TEMPERATURE" default:"0.3"`

	ExpansionRatio   float64       `envconfig:"EXPANSION_RATIO" default:"1.2"`
	TranslateTimeout time.Duration `envconfig:"TRANSLATE_TIMEOUT" default:"5m"`
	TranslateWorkers int           `envconfig:"TRANSLATE_WORKERS" default:"4"`

	MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"30m"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

// Load reads .env when present, then the process environment, then
// validates. Missing GEMINI_API_KEY fails here rather than on the first
// translation.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.AIAPIKey) == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.ExpansionRatio <= 0 {
		return fmt.Errorf("EXPANSION_RATIO must be > 0")
	}
	if c.TranslateTimeout <= 0 {
		return fmt.Errorf("TRANSLATE_TIMEOUT must be > 0")
	}
	if c.TranslateWorkers < 1 {
		return fmt.Errorf("TRANSLATE_WORKERS must be >= 1")
	}
	if c.MaxUploadBytes < 1 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be >= 1")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	return nil
}

// CORSAllowedOriginsList splits the comma separated origin list, dropping
// blanks and duplicates.
func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
