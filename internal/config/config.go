// README: Config loader with env defaults for HTTP, storage, model provider, and observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingGeminiKey = errors.New("GEMINI_API_KEY is required for the gemini provider")
	ErrUnknownProvider  = errors.New("unknown model provider")
)

type ModelConfig struct {
	Provider    string
	GeminiKey   string
	GeminiModel string
	OllamaURL   string
	OllamaModel string
	Timeout     time.Duration
	// RPS paces model calls process-wide; zero disables pacing.
	RPS float64
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN is optional; empty means listings come from CarsFile.
		DSN string
	}
	Redis struct {
		// Addr is optional; empty disables the turn quota.
		Addr string
	}
	Catalog struct {
		CarsFile    string
		ResultLimit int
	}
	Model       ModelConfig
	TurnsPerDay int
	Log         struct {
		Level string
	}
	TraceStdout bool
	// CORSOrigins lists browser origins allowed to call the API; "*" allows any
	// origin without credentials.
	CORSOrigins []string
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	cfg.HTTP.Addr = String("SMARTDRIVE_HTTP_ADDR", ":8000")
	cfg.DB.DSN = os.Getenv("SMARTDRIVE_DB_DSN")
	cfg.Redis.Addr = os.Getenv("SMARTDRIVE_REDIS_ADDR")
	cfg.Catalog.CarsFile = String("SMARTDRIVE_CARS_FILE", "data/cars.json")
	cfg.Catalog.ResultLimit = Int("SMARTDRIVE_RESULT_LIMIT", 15)

	cfg.Model.Provider = strings.ToLower(String("SMARTDRIVE_MODEL_PROVIDER", "ollama"))
	cfg.Model.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Model.GeminiModel = String("SMARTDRIVE_GEMINI_MODEL", "gemini-2.0-flash")
	cfg.Model.OllamaURL = String("SMARTDRIVE_OLLAMA_URL", "http://127.0.0.1:11434")
	cfg.Model.OllamaModel = String("SMARTDRIVE_OLLAMA_MODEL", "qwen2.5:14b-instruct")
	cfg.Model.Timeout = Duration("SMARTDRIVE_MODEL_TIMEOUT", 60*time.Second)
	cfg.Model.RPS = Float("SMARTDRIVE_MODEL_RPS", 0)

	cfg.TurnsPerDay = Int("SMARTDRIVE_TURNS_PER_DAY", 200)
	cfg.Log.Level = String("SMARTDRIVE_LOG_LEVEL", "info")
	cfg.TraceStdout = Bool("SMARTDRIVE_TRACE_STDOUT", false)
	cfg.CORSOrigins = List("SMARTDRIVE_CORS_ORIGINS", []string{"*"})

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Model.Provider {
	case "ollama", "offline":
	case "gemini":
		if c.Model.GeminiKey == "" {
			return ErrMissingGeminiKey
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Model.Provider)
	}
	return nil
}
