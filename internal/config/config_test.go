package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[server]
http_port = 9090

[database]
host = "db"
port = 5432
dbname = "agro"

[auth]
jwt_secret = "secret"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "simulated", cfg.PayTech.Mode)
	assert.Equal(t, "Africa/Dakar", cfg.App.Timezone)
	assert.Equal(t, "XOF", cfg.App.Currency)
	assert.Equal(t, 5, cfg.Auth.OTPMaxAttempts)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Contains(t, cfg.Database.DSN(), "host=db port=5432")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AGRO_JWT_SECRET", "from-env")
	t.Setenv("AGRO_DB_PORT", "6543")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoadRejectsLivePayTechWithoutCredentials(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+"\n[paytech]\nmode = \"live\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	_, err := Load(writeConfig(t, "[server]\nhttp_port = 1\n[database]\nhost = \"h\"\ndbname = \"d\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
