package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath  = "gitsome-header.db"
	defaultMaxAge  = 24 * time.Hour
	defaultRepoCap = 100
)

// Config holds all application configuration
type Config struct {
	Token     string        // GITHUB_TOKEN
	DBPath    string        // GITSOME_DB
	LogPath   string        // GITSOME_LOG, defaults next to the database
	LogLevel  string        // GITSOME_LOG_LEVEL
	MaxAge    time.Duration // GITSOME_MAX_AGE, cache freshness for profiles and blog pages
	RepoLimit int           // GITSOME_REPO_LIMIT, repositories listed under the header
	APIURL    string        // GITHUB_API_URL, for GitHub Enterprise
}

// Load reads a .env file if present (silently ignored if not found), then
// configuration from environment variables
func Load(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		Token:     getEnv("GITHUB_TOKEN", ""),
		DBPath:    getEnv("GITSOME_DB", defaultDBPath),
		LogLevel:  getEnv("GITSOME_LOG_LEVEL", "info"),
		MaxAge:    getDuration("GITSOME_MAX_AGE", defaultMaxAge),
		RepoLimit: getInt("GITSOME_REPO_LIMIT", defaultRepoCap),
		APIURL:    getEnv("GITHUB_API_URL", ""),
	}
	cfg.LogPath = getEnv("GITSOME_LOG", DefaultLogPath(cfg.DBPath))
	return cfg
}

// DefaultLogPath places the log file in the same directory as the database
func DefaultLogPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "gitsome-header.log")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
