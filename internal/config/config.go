// internal/config/config.go
//
// Runtime configuration from the environment.
//
// Load reads a `.env` file when present (development), then environment
// variables, falling back to defaults:
//
//   SOLVER_WORDS_FILE    vocabulary file; empty uses the embedded list
//   SOLVER_OPENING       opening guess (default "raise")
//   SOLVER_WORKERS       optimizer goroutines (default: number of CPUs)
//   SOLVER_DB            SQLite outcome history; empty disables it
//   LOG_LEVEL            zerolog level (default "info")
//   PORT                 HTTP port for -serve (default 5180)
//   JWT_SECRET           enables bearer auth on the API when set
//   JWT_EXPIRES_HOURS    token lifetime (default 24)
//   SOLVER_API_KEY_HASH  bcrypt hash of the key accepted by /auth/token
//   CLIENT_ORIGIN        CORS origin (default http://localhost:5173)

package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds every tunable of the solver.
type Config struct {
	WordsFile    string
	Opening      string
	Workers      int
	DBPath       string
	LogLevel     zerolog.Level
	Port         string
	JWTSecret    string
	JWTExpiry    time.Duration
	APIKeyHash   string
	ClientOrigin string
}

// Load builds a Config. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return Config{
		WordsFile:    os.Getenv("SOLVER_WORDS_FILE"),
		Opening:      getEnv("SOLVER_OPENING", "raise"),
		Workers:      getEnvInt("SOLVER_WORKERS", runtime.NumCPU()),
		DBPath:       os.Getenv("SOLVER_DB"),
		LogLevel:     lvl,
		Port:         getEnv("PORT", "5180"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTExpiry:    time.Duration(getEnvInt("JWT_EXPIRES_HOURS", 24)) * time.Hour,
		APIKeyHash:   os.Getenv("SOLVER_API_KEY_HASH"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt is getEnv for positive integers; bad values fall back to def.
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
