package utils

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var redditEnvVars = []string{
	"REDDIT_CLIENT_ID",
	"REDDIT_CLIENT_SECRET",
	"REDDIT_USER_AGENT",
	"REDDIT_USERNAME",
	"REDDIT_PASSWORD",
	"DATABASE_PATH",
	"SERVER_PORT",
}

func clearRedditEnv() {
	for _, key := range redditEnvVars {
		os.Unsetenv(key)
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_ENV_VAR", "test-value")
	defer os.Unsetenv("TEST_ENV_VAR")

	value := getEnv("TEST_ENV_VAR", "default-value")
	assert.Equal(t, "test-value", value)

	value = getEnv("NON_EXISTENT_VAR", "default-value")
	assert.Equal(t, "default-value", value)
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT_VAR", "42")
	defer os.Unsetenv("TEST_INT_VAR")

	value := getEnvAsInt("TEST_INT_VAR", 10)
	assert.Equal(t, 42, value)

	os.Setenv("TEST_INVALID_INT_VAR", "not-an-int")
	defer os.Unsetenv("TEST_INVALID_INT_VAR")

	value = getEnvAsInt("TEST_INVALID_INT_VAR", 10)
	assert.Equal(t, 10, value)

	value = getEnvAsInt("NON_EXISTENT_VAR", 10)
	assert.Equal(t, 10, value)
}

func TestLoadConfigRequiresCredentials(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing client id",
			env:     map[string]string{"REDDIT_CLIENT_SECRET": "secret"},
			wantErr: "REDDIT_CLIENT_ID",
		},
		{
			name:    "missing client secret",
			env:     map[string]string{"REDDIT_CLIENT_ID": "id"},
			wantErr: "REDDIT_CLIENT_SECRET",
		},
		{
			name:    "missing both",
			env:     map[string]string{},
			wantErr: "REDDIT_CLIENT_ID",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearRedditEnv()
			defer clearRedditEnv()
			for k, v := range tc.env {
				os.Setenv(k, v)
			}

			_, err := LoadConfig("./does-not-exist.env", testLogger())
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearRedditEnv()
	defer clearRedditEnv()
	os.Setenv("REDDIT_CLIENT_ID", "id")
	os.Setenv("REDDIT_CLIENT_SECRET", "secret")

	config, err := LoadConfig("./does-not-exist.env", testLogger())
	assert.NoError(t, err)
	assert.Equal(t, "reddit-api-client/1.0", config.Reddit.UserAgent)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "./reddit.db", config.Database.Path)
	assert.False(t, config.Reddit.IsAuthenticated())
}

func TestIsAuthenticated(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		expected bool
	}{
		{"both present", "user", "pass", true},
		{"username only", "user", "", false},
		{"password only", "", "pass", false},
		{"neither", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := RedditConfig{Username: tc.username, Password: tc.password}
			assert.Equal(t, tc.expected, cfg.IsAuthenticated())
		})
	}
}

func TestLoadConfigAuthenticatedMode(t *testing.T) {
	clearRedditEnv()
	defer clearRedditEnv()
	os.Setenv("REDDIT_CLIENT_ID", "id")
	os.Setenv("REDDIT_CLIENT_SECRET", "secret")
	os.Setenv("REDDIT_USERNAME", "user")
	os.Setenv("REDDIT_PASSWORD", "pass")

	config, err := LoadConfig("./does-not-exist.env", testLogger())
	assert.NoError(t, err)
	assert.True(t, config.Reddit.IsAuthenticated())
}

func TestValidateConfigRejectsBadPort(t *testing.T) {
	config := &Config{
		Reddit: RedditConfig{
			ClientID:     "id",
			ClientSecret: "secret",
		},
		Database: DatabaseConfig{Path: "./test.db"},
		Server:   ServerConfig{Port: -1},
	}

	err := validateConfig(config)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
}
