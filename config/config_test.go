package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the loader reads so defaults apply
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "SERVER_PORT", "SERVER_READ_TIMEOUT",
		"SERVER_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_OUTPUT", "CACHE_ENABLED", "SEED_DATA_DIR",
		"SEED_PLATFORMS_FILE", "SEED_CLIENTS_FILE", "SEED_INVOICES_FILE", "SEED_TRANSACTIONS_FILE",
		"SEED_MANIFEST", "SEED_TIMEOUT", "SEED_LOCK_TTL", "EVENTS_ENABLED", "APP_ENV",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Seed.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Seed.LockTTL)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, filepath.Join("data", "01_clientes_normalizado.csv"), cfg.Seed.Paths().Clients)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SEED_TIMEOUT", "90s")
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.Seed.Timeout)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfigReportsEveryProblem(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "70000")
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("SEED_TIMEOUT", "-1s")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT must be between 1 and 65535")
	assert.Contains(t, err.Error(), "LOG_LEVEL must be one of")
	assert.Contains(t, err.Error(), "SEED_TIMEOUT must be positive")
}

func TestSeedLockTTLMustCoverTimeout(t *testing.T) {
	clearEnv(t)

	t.Run("shorter than timeout", func(t *testing.T) {
		t.Setenv("SEED_TIMEOUT", "10m")
		t.Setenv("SEED_LOCK_TTL", "1m")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SEED_LOCK_TTL must be at least SEED_TIMEOUT")
	})

	t.Run("not positive", func(t *testing.T) {
		t.Setenv("SEED_LOCK_TTL", "-5s")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SEED_LOCK_TTL must be positive")
	})

	t.Run("equal to timeout", func(t *testing.T) {
		t.Setenv("SEED_TIMEOUT", "2m")
		t.Setenv("SEED_LOCK_TTL", "2m")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 2*time.Minute, cfg.Seed.LockTTL)
	})
}

func TestSeedManifest(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	manifest := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
data_dir: gs://billing-snapshots/2024-06
files:
  platforms: plataformas.csv
  transactions: /abs/transacciones.csv
`), 0o644))
	t.Setenv("SEED_MANIFEST", manifest)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	paths := cfg.Seed.Paths()
	assert.Equal(t, "gs://billing-snapshots/2024-06/plataformas.csv", paths.Platforms)
	assert.Equal(t, "gs://billing-snapshots/2024-06/01_clientes_normalizado.csv", paths.Clients)
	assert.Equal(t, "/abs/transacciones.csv", paths.Transactions)

	t.Run("unreadable manifest", func(t *testing.T) {
		t.Setenv("SEED_MANIFEST", filepath.Join(dir, "missing.yaml"))
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read seed manifest")
	})
}

func TestSeedPathsResolve(t *testing.T) {
	cfg := SeedConfig{
		DataDir:          "/srv/seed",
		PlatformsFile:    "p.csv",
		ClientsFile:      "gs://other/c.csv",
		InvoicesFile:     "/tmp/i.csv",
		TransactionsFile: "t.csv",
	}
	assert.Equal(t, SeedPaths{
		Platforms:    "/srv/seed/p.csv",
		Clients:      "gs://other/c.csv",
		Invoices:     "/tmp/i.csv",
		Transactions: "/srv/seed/t.csv",
	}, cfg.Paths())

	cfg.ApplyManifest(&SeedManifest{Files: SeedManifestFiles{Platforms: "  "}})
	assert.Equal(t, "p.csv", cfg.PlatformsFile)
}
