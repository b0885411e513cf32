package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "DB_DSN", "DB_NAME", "DB_CONNECT_ATTEMPTS",
		"SERVER_PORT", "SESSION_SECRET", "SESSION_MAX_AGE", "CONFIG_FILE",
	} {
		// godotenv never overrides a variable that is already set
		t.Setenv(k, "")
	}
}

func TestLoadDevelopmentDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite://quiz.db", cfg.DBDSN)
	assert.Equal(t, "quizdb", cfg.DBName)
	assert.Equal(t, 10, cfg.DBConnectAttempts)
	assert.Equal(t, 12*time.Hour, cfg.SessionMaxAge)
	assert.Len(t, cfg.SessionSecret, minSecretLen)
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestLoadWarnsAboutDevelopmentFallbacks(t *testing.T) {
	clearEnv(t)
	logs := captureLog(t)

	_, err := Load()
	require.NoError(t, err)
	out := logs.String()
	assert.Contains(t, out, "WARNING: APP_ENV is not set, assuming development")
	assert.Contains(t, out, "WARNING: DB_DSN is not set, using sqlite://quiz.db")
	assert.Contains(t, out, "WARNING: SESSION_SECRET is not set")
}

func TestLoadExplicitDevelopmentIsQuiet(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DSN", "sqlite://other.db")
	t.Setenv("SESSION_SECRET", strings.Repeat("s", minSecretLen))
	logs := captureLog(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite://other.db", cfg.DBDSN)
	assert.NotContains(t, logs.String(), "WARNING")
}

func TestLoadDevelopmentSecretIsNotFixed(t *testing.T) {
	clearEnv(t)

	a, err := Load()
	require.NoError(t, err)
	b, err := Load()
	require.NoError(t, err)
	assert.NotEqual(t, a.SessionSecret, b.SessionSecret)
}

func TestLoadProductionRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")

	t.Setenv("DB_DSN", "postgres://quiz@db/quiz")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", "short")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("SESSION_SECRET", strings.Repeat("x", 32))
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadUnknownEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "staging")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server_port: \"9000\"\n"+
			"db_dsn: mongodb://localhost:27017\n"+
			"db_name: school\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("SESSION_MAX_AGE", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.ServerPort)
	assert.Equal(t, "mongodb://localhost:27017", cfg.DBDSN)
	assert.Equal(t, "school", cfg.DBName)
	assert.Equal(t, 30*time.Minute, cfg.SessionMaxAge)
}

func TestLoadBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_MAX_AGE", "forever")

	_, err := Load()
	assert.Error(t, err)
}
