// internal/config/config.go
//
// Runtime configuration, read from the environment after an optional
// `.env` file.
//
// Environment variables:
//   LOG_LEVEL=debug|info|warn|error   (default info)
//   MAX_WORDS=10                      words per round
//   WORDS_FILE=/path/to/words.txt     one word per line; embedded list if unset
//   SHELL_HISTORY_FILE=~/.unscramble  readline history; none if unset

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/unscramble/internal/game"
)

// Config holds the settings main wires together.
type Config struct {
	LogLevel         zerolog.Level
	MaxWords         int
	WordsFile        string
	ShellHistoryFile string
}

// Load reads files (default ".env"; a missing file is fine) and then the
// environment.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	maxWords, err := strconv.Atoi(getEnv("MAX_WORDS", strconv.Itoa(game.DefaultMaxWords)))
	if err != nil {
		return nil, fmt.Errorf("MAX_WORDS: %w", err)
	}
	if maxWords < 1 {
		return nil, fmt.Errorf("MAX_WORDS: must be at least 1, got %d", maxWords)
	}
	return &Config{
		LogLevel:         lvl,
		MaxWords:         maxWords,
		WordsFile:        os.Getenv("WORDS_FILE"),
		ShellHistoryFile: os.Getenv("SHELL_HISTORY_FILE"),
	}, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
