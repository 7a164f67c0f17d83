package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.SessionRateLimit)
	assert.Equal(t, LeaderboardBackendFile, cfg.Leaderboard.Backend)
	assert.Equal(t, "pylearn_scoreboard", cfg.Leaderboard.Key)
	assert.Equal(t, 10, cfg.Leaderboard.MaxEntries)
	assert.Equal(t, CatalogSourceBuiltin, cfg.Catalog.Source)
	assert.Equal(t, 5, cfg.Game.StreakBonus)
	assert.Equal(t, 3, cfg.Game.StreakThreshold)
	assert.Equal(t, 2*time.Hour, cfg.Game.SessionTTL)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
leaderboard:
  backend: memory
  max_entries: 5
catalog:
  shuffle: true
  questions_per_game: 4
game:
  session_ttl: 30m
  cleanup_interval: 1m
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, LeaderboardBackendMemory, cfg.Leaderboard.Backend)
	assert.Equal(t, 5, cfg.Leaderboard.MaxEntries)
	assert.True(t, cfg.Catalog.Shuffle)
	assert.Equal(t, 4, cfg.Catalog.QuestionsPerGame)
	assert.Equal(t, 30*time.Minute, cfg.Game.SessionTTL)
	assert.Equal(t, time.Minute, cfg.Game.CleanupInterval)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9090\"\n")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LEADERBOARD_KEY", "custom_board")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "custom_board", cfg.Leaderboard.Key)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown backend", "leaderboard:\n  backend: s3\n"},
		{"redis without address", "leaderboard:\n  backend: redis\n"},
		{"postgres catalog without database", "catalog:\n  source: postgres\n"},
		{"zero max entries", "leaderboard:\n  max_entries: 0\n"},
		{"bad streak threshold", "game:\n  streak_threshold: 0\n"},
		{"negative session rate limit", "server:\n  session_rate_limit: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2"}, splitList([]string{"a:1, b:2"}))
	assert.Nil(t, splitList(nil))
}

func TestDatabaseConfig_PostgresURL(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "pylearn", SSLMode: "disable"}

	assert.Equal(t, "postgres://u:p@db:5432/pylearn?sslmode=disable", d.PostgresURL())
	assert.Contains(t, d.PostgresConnectionString(), "dbname=pylearn")
}
