package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[storage]
driver = "memory"

[auth]
jwt_secret = "secret"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimalConfig)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, 3, cfg.Ledger.MaxAttempts)
	assert.Equal(t, 1, cfg.Ledger.PremiumPerSlot)
	assert.Equal(t, "UTC", cfg.Ledger.Timezone)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Len(t, cfg.Services, 5)
}

func TestParse_Services(t *testing.T) {
	cfg, err := Parse(minimalConfig + `
[[services]]
name = "Engine Wash"
price = 450
duration_minutes = 45
is_premium = true
`)
	require.NoError(t, err)
	require.Len(t, cfg.Services, 1)
	assert.Equal(t, "Engine Wash", cfg.Services[0].Name)
	assert.True(t, cfg.Services[0].IsPremium)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing secret", data: "[storage]\ndriver = \"memory\""},
		{name: "unknown driver", data: "[storage]\ndriver = \"etcd\"\n[auth]\njwt_secret = \"x\""},
		{name: "postgres without host", data: "[auth]\njwt_secret = \"x\""},
		{name: "redis without addr", data: minimalConfig + "[redis]\nenabled = true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("LEDGER_TEST_SECRET", "from-env")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
driver = "memory"

[auth]
jwt_secret = "${LEDGER_TEST_SECRET}"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=ledger sslmode=disable", c.DSN())
}
