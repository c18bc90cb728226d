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
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "food_events", cfg.RabbitMQ.Exchange)
	assert.Equal(t, 2*time.Second, cfg.Simulation.PaymentDelay)
	assert.False(t, cfg.RabbitMQ.Enabled)
}

func TestLoadFile(t *testing.T) {
	p := writeConfig(t, `
# food-order
server:
  port: 8080
  max_concurrent: 10
storage:
  driver: postgres
database:
  host: localhost
  port: 5433
  user: "food"
  password: 'secret'
  database: food
rabbitmq:
  enabled: true
  host: rabbit
  user: guest
catalog:
  base_url: http://meals.local/api/
  timeout: 2s
simulation:
  payment_delay: 0s
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.MaxConcurrent)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "food", cfg.Database.User)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.True(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "/", cfg.RabbitMQ.VHost)
	assert.Equal(t, "http://meals.local/api", cfg.Catalog.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, time.Duration(0), cfg.Simulation.PaymentDelay)
	assert.Equal(t, time.Second, cfg.Simulation.TransferDelay)
}

func TestEnvOverridesFile(t *testing.T) {
	p := writeConfig(t, "server:\n  port: 8080\n")
	t.Setenv("FOOD_SERVER_PORT", "9090")
	t.Setenv("FOOD_AUTH_JWT_SECRET", "from-env")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown section", "cache:\n  size: 1\n"},
		{"unknown key", "server:\n  colour: blue\n"},
		{"bad int", "server:\n  port: eighty\n"},
		{"bad duration", "simulation:\n  payment_delay: soon\n"},
		{"incomplete postgres", "storage:\n  driver: postgres\n"},
		{"bad driver", "storage:\n  driver: sqlite\n"},
		{"incomplete rabbit", "rabbitmq:\n  enabled: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "deploy", "config.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "/", cfg.RabbitMQ.VHost)
	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "https://www.themealdb.com/api/json/v1/1", cfg.Catalog.BaseURL)
}
