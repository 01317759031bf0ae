package config

import (
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SOLVER_WORDS_FILE", "SOLVER_OPENING", "SOLVER_WORKERS", "SOLVER_DB",
		"LOG_LEVEL", "PORT", "JWT_SECRET", "JWT_EXPIRES_HOURS", "SOLVER_API_KEY_HASH", "CLIENT_ORIGIN"} {
		t.Setenv(k, "")
	}

	c := Load()
	assert.Equal(t, "", c.WordsFile)
	assert.Equal(t, "raise", c.Opening)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
	assert.Equal(t, zerolog.InfoLevel, c.LogLevel)
	assert.Equal(t, "5180", c.Port)
	assert.Equal(t, 24*time.Hour, c.JWTExpiry)
	assert.Equal(t, "http://localhost:5173", c.ClientOrigin)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SOLVER_WORDS_FILE", "/tmp/words.txt")
	t.Setenv("SOLVER_OPENING", "crane")
	t.Setenv("SOLVER_WORKERS", "3")
	t.Setenv("SOLVER_DB", "./data/solver.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JWT_EXPIRES_HOURS", "2")

	c := Load()
	assert.Equal(t, "/tmp/words.txt", c.WordsFile)
	assert.Equal(t, "crane", c.Opening)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, "./data/solver.db", c.DBPath)
	assert.Equal(t, zerolog.DebugLevel, c.LogLevel)
	assert.Equal(t, 2*time.Hour, c.JWTExpiry)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("SOLVER_WORKERS", "-2")
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("JWT_EXPIRES_HOURS", "soon")

	c := Load()
	assert.Equal(t, runtime.NumCPU(), c.Workers)
	assert.Equal(t, zerolog.InfoLevel, c.LogLevel)
	assert.Equal(t, 24*time.Hour, c.JWTExpiry)
}
