package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rocketcart/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
http:
  env: dev
  port: 9090
api:
  base_url: http://api.local:3333
  timeout: 2s
storage:
  driver: memory
  key: "@Test:cart"
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.EnvDev, cfg.HTTP.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "http://api.local:3333", cfg.API.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "@Test:cart", cfg.Storage.Key)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
http:
  env: dev
  port: 9090
storage:
  driver: memory
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("API_BASE_URL", "http://stock.internal")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, "http://stock.internal", cfg.API.BaseURL)
	assert.Equal(t, config.DefaultCartKey, cfg.Storage.Key)
}

func TestLoad_InvalidEnv(t *testing.T) {
	path := writeConfig(t, `
http:
  env: staging
`)
	t.Setenv("CONFIG_PATH", path)

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			HTTP:    config.HTTPConfig{Env: config.EnvLocal, Port: 8080},
			API:     config.APIConfig{BaseURL: "http://localhost:3333"},
			Storage: config.StorageConfig{Driver: config.DriverMemory, Key: config.DefaultCartKey},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{
			name:   "Memory driver",
			mutate: func(c *config.Config) {},
		},
		{
			name:    "Unknown driver",
			mutate:  func(c *config.Config) { c.Storage.Driver = "sqlite" },
			wantErr: true,
		},
		{
			name:    "File driver without dir",
			mutate:  func(c *config.Config) { c.Storage.Driver = config.DriverFile },
			wantErr: true,
		},
		{
			name:    "Redis driver without addr",
			mutate:  func(c *config.Config) { c.Storage.Driver = config.DriverRedis },
			wantErr: true,
		},
		{
			name: "Postgres driver",
			mutate: func(c *config.Config) {
				c.Storage.Driver = config.DriverPostgres
				c.Psql = config.PsqlConfig{Host: "db", Database: "cart", Port: 5432}
			},
		},
		{
			name:    "Invalid base url",
			mutate:  func(c *config.Config) { c.API.BaseURL = "not a url" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConnectionString(t *testing.T) {
	cfg := config.Config{Psql: config.PsqlConfig{
		User: "u", Password: "p", Host: "h", Port: 5432, Database: "d", Sslmode: "disable",
	}}

	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.ConnectionString())
}
