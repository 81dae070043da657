// Package config loads application configuration from a TOML file with
// environment overrides for secrets and deployment knobs.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/panuwat-dev/docchat/internal/logger"
)

// Defaults applied when neither file nor environment provides a value.
const (
	DefaultHost       = "0.0.0.0"
	DefaultPort       = 3000
	DefaultDataDir    = "data"
	DefaultUploadsDir = "uploads"
	DefaultProvider   = "auto"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds filesystem locations.
type StorageConfig struct {
	// DataDir holds the SQLite database.
	DataDir string `toml:"data_dir"`

	// UploadsDir holds stored uploads; extracted images go to
	// UploadsDir/images.
	UploadsDir string `toml:"uploads_dir"`
}

// AIConfig selects and configures the embedding and generation providers.
type AIConfig struct {
	// Provider is auto, gemini or ollama.
	Provider string `toml:"provider"`

	// GeminiAPIKey comes from the GEMINI_API_KEY environment variable,
	// never from the file.
	GeminiAPIKey string `toml:"-"`

	OllamaBaseURL    string `toml:"ollama_base_url"`
	OllamaModel      string `toml:"ollama_model"`
	OllamaEmbedModel string `toml:"ollama_embed_model"`
}

// AdminConfig holds the admin surface settings.
type AdminConfig struct {
	// Password guards the admin endpoints. Comes from the ADMIN_PASSWORD
	// environment variable, never from the file.
	Password string `toml:"-"`
}

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	AI      AIConfig      `toml:"ai"`
	Admin   AdminConfig   `toml:"admin"`
}

// Load reads configuration: defaults, then the TOML file at path (missing
// file is fine), then .env, then process environment. Later sources win.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:  ServerConfig{Host: DefaultHost, Port: DefaultPort},
		Storage: StorageConfig{DataDir: DefaultDataDir, UploadsDir: DefaultUploadsDir},
		AI:      AIConfig{Provider: DefaultProvider},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			logger.Debug("config file %s not found, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	// .env is a development convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}

	cfg.applyEnv()

	if cfg.AI.Provider != "auto" && cfg.AI.Provider != "gemini" && cfg.AI.Provider != "ollama" {
		return nil, fmt.Errorf("invalid ai provider %q", cfg.AI.Provider)
	}

	return cfg, nil
}

// applyEnv overlays process environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.AI.GeminiAPIKey = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.AI.Provider = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		c.AI.OllamaBaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil && port > 0 {
			c.Server.Port = port
		}
	}
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
