package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultConfigFile is the override file looked up in the working directory.
const DefaultConfigFile = "gh-notes.config.json"

// Config holds all configuration for the application. It is loaded once at
// startup and not modified afterwards.
type Config struct {
	// Site settings, overridable through the JSON config file.
	Username        string `json:"username"`
	Password        string `json:"password"`
	NotesFolder     string `json:"notesFolder"` // Relative to WorkDir unless absolute
	SiteName        string `json:"siteName"`
	GithubNotesLink string `json:"githubNotesLink"`
	Font            string `json:"font"`
	DarkModeToggle  bool   `json:"darkModeToggle"`

	// Process settings, read from the environment.
	Port       string     `json:"-"`
	LogLevel   slog.Level `json:"-"`
	LogFormat  string     `json:"-"`
	WorkDir    string     `json:"-"`
	ConfigPath string     `json:"-"`
}

// Defaults returns the configuration used when no override file is present.
func Defaults() Config {
	return Config{
		Username:       "gh-notes",
		Password:       "password",
		NotesFolder:    "notes",
		SiteName:       "GH Notes",
		DarkModeToggle: true,
	}
}

// Load builds the configuration from defaults, the optional JSON override file
// and environment variables. A missing or malformed override file is logged and
// ignored. If a .env file exists in the current directory or a parent, it is
// loaded first; variables already set take precedence.
func Load() (*Config, error) {
	loadDotEnv()

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	cfg := Defaults()
	cfg.WorkDir = wd
	cfg.ConfigPath = getEnv("GH_NOTES_CONFIG", filepath.Join(wd, DefaultConfigFile))

	if err := cfg.applyOverrides(cfg.ConfigPath); err != nil {
		slog.Warn("Could not load user configuration, using defaults instead",
			"path", cfg.ConfigPath, "error", err)
		slog.Info("To configure gh-notes, create a " + DefaultConfigFile + " file")
	}

	cfg.Port = getEnv("PORT", "5000")

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "text"))
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return &cfg, nil
}

// NotesPath returns the absolute location of the notes folder.
func (c *Config) NotesPath() string {
	if filepath.IsAbs(c.NotesFolder) {
		return c.NotesFolder
	}
	return filepath.Join(c.WorkDir, c.NotesFolder)
}

// applyOverrides merges the JSON file at path over c. Keys absent from the file
// keep their current value. Nothing is applied if the file is invalid.
func (c *Config) applyOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	merged := *c
	if err := json.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := merged.validate(); err != nil {
		return err
	}

	*c = merged
	return nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Username == "" {
		errs = append(errs, errors.New("username must not be empty"))
	}
	if c.Password == "" {
		errs = append(errs, errors.New("password must not be empty"))
	}
	if c.NotesFolder == "" {
		errs = append(errs, errors.New("notesFolder must not be empty"))
	}
	return errors.Join(errs...)
}

// loadDotEnv loads the nearest .env file, searching upwards from the working directory.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func parseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	return level, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
