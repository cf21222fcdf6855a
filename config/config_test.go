package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, int64(100000), cfg.Ledger.DefaultDailyBudget)
	require.Equal(t, 30*24*time.Hour, cfg.Ledger.PointExpiration.Duration)
	require.Equal(t, 20, cfg.Ledger.MaxOrderQuantity)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
env = "test"

[database]
driver = "postgres"
dsn = "host=localhost user=roulette"

[ledger]
defaultdailybudget = 5000
pointexpiration = "48h"

[publisher]
backend = "kafka"

[kafka]
addrs = ["localhost:9092"]
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "test", cfg.Env)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, int64(5000), cfg.Ledger.DefaultDailyBudget)
	require.Equal(t, 48*time.Hour, cfg.Ledger.PointExpiration.Duration)
	require.Equal(t, 20, cfg.Ledger.MaxOrderQuantity)
	require.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Addrs)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[database]\ndriver = \"oracle\"\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
