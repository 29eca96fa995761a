package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by every taskmanager command.
type Config struct {
	Addr      string
	DBPath    string
	MediaRoot string
	LogLevel  slog.Level
}

// Load reads the given dotenv files (".env" when none are named) into the
// process environment and builds a Config from it. Variables already set
// in the environment win over the files; a missing file is not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Addr:      EnvOrDefault("TM_ADDR", ":8080"),
		DBPath:    EnvOrDefault("TM_DB_PATH", "data/taskmanager.db"),
		MediaRoot: EnvOrDefault("TM_MEDIA_ROOT", "media"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(EnvOrDefault("TM_LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("TM_LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// EnvOrDefault returns the environment variable value or fallback when it is empty.
func EnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
