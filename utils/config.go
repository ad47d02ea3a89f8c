package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const defaultUserAgent = "reddit-api-client/1.0"

// Config holds all configuration for the application
type Config struct {
	Reddit   RedditConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// RedditConfig holds Reddit API credentials and settings
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Username     string
	Password     string
}

// IsAuthenticated reports whether both optional user credentials are present.
// When true the client authenticates as that user; otherwise it runs read-only.
func (r RedditConfig) IsAuthenticated() bool {
	return r.Username != "" && r.Password != ""
}

// DatabaseConfig holds archive database configuration
type DatabaseConfig struct {
	Path string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int
}

// LoadConfig loads configuration from a .env file and the process environment
func LoadConfig(envPath string, log *logrus.Logger) (*Config, error) {
	if envPath == "" {
		envPath = ".env"
	}

	// a missing .env file is fine; the process environment is the fallback
	if err := godotenv.Load(envPath); err != nil {
		log.WithField("file", envPath).Debug("No .env file found, using process environment")
	}

	config := &Config{
		Reddit: RedditConfig{
			ClientID:     getEnv("REDDIT_CLIENT_ID", ""),
			ClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
			UserAgent:    getEnv("REDDIT_USER_AGENT", defaultUserAgent),
			Username:     getEnv("REDDIT_USERNAME", ""),
			Password:     getEnv("REDDIT_PASSWORD", ""),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./reddit.db"),
		},
		Server: ServerConfig{
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"file":          envPath,
		"authenticated": config.Reddit.IsAuthenticated(),
	}).Info("Config loaded successfully")
	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	// both credentials must be present before any network activity happens
	if config.Reddit.ClientID == "" {
		return fmt.Errorf("REDDIT_CLIENT_ID environment variable is required")
	}
	if config.Reddit.ClientSecret == "" {
		return fmt.Errorf("REDDIT_CLIENT_SECRET environment variable is required")
	}
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a valid port number")
	}

	// if we are storing the archive in a nested directory, create the directory
	dbDir := filepath.Dir(config.Database.Path)
	if dbDir != "." && dbDir != "" {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	return nil
}
