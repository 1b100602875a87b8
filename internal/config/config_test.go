package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 8080
  env: production
database:
  driver: postgres
  url: postgres://localhost/smarthire
jwt:
  secret: from-file
  ttl: 24h
sweep:
  schedule: "30 2 * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "30 2 * * *", cfg.Sweep.Schedule)
	assert.Equal(t, "http://localhost:3000", cfg.Server.FrontendURL)

	ttl, err := cfg.TokenTTL()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, true},
		{"postgres without url", func(c *Config) { c.Database.Driver = DriverPostgres }, true},
		{"mongo without uri", func(c *Config) { c.Database.Driver = DriverMongo }, true},
		{"production without secret", func(c *Config) { c.Server.Env = "production" }, true},
		{"bad schedule", func(c *Config) { c.Sweep.Schedule = "every day" }, true},
		{"bad ttl", func(c *Config) { c.JWT.TTL = "week" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_MongoTransactionsFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("MONGODB_TRANSACTIONS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Database.MongoTransactions)

	t.Setenv("MONGODB_TRANSACTIONS", "maybe")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_ShippedConfigHasNoSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join("..", "..", "config", "config.yaml"))
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.JWT.Secret)
	assert.False(t, cfg.Database.MongoTransactions)
	require.NoError(t, cfg.Validate())

	cfg.Server.Env = "production"
	assert.Error(t, cfg.Validate())
}
