package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gamenight", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3, cfg.Database.TxMaxRetries)
	assert.Empty(t, cfg.Auth.AdminUsers)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DBNAME", "gamenight_test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "gamenight_test", cfg.Database.DBName)
}

// chdir switches the working directory for the duration of the test.
// It mirrors testing.T.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadMissingDotEnvIsOptional(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load()
	assert.NoError(t, err)
}

func TestLoadReportsMalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("this is not an env line\n"), 0o600))
	chdir(t, dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestAdminUsersParsing(t *testing.T) {
	t.Setenv("AUTH_ADMIN_USERS", "admin, bob ,,carol")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "bob", "carol"}, cfg.Auth.AdminUsers)
}

func TestValidateRejectsBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "99999")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "production")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseURLs(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret",
		DBName: "gamenight", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=gamenight sslmode=disable", d.DSN())
	assert.Equal(t, "postgres://app:secret@db:5432/gamenight?sslmode=disable", d.URL())
}
