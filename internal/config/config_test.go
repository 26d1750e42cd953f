package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
user = "scheduler"
password = "from-file"
dbname = "scheduling"

[catalog_service]
url = "http://catalog:8080"

[scheduling]
default_slot_interval_minutes = 30
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "scheduling", cfg.Database.DBName)
	// значения, которых нет в файле, берутся по умолчанию
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "booking_events", cfg.Notifications.Queue)

	defaults := cfg.Scheduling.ScheduleDefaults()
	assert.Equal(t, 30, defaults.SlotIntervalMinutes)
	assert.Equal(t, 60, defaults.MinBookingNoticeMinutes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "sk_test_123", cfg.Payments.StripeSecretKey)
}

func TestLoad_InvalidEnvPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	broken := *cfg
	broken.Catalog.URL = ""
	assert.Error(t, broken.Validate())

	broken = *cfg
	broken.Scheduling.DefaultSlotIntervalMinutes = 1
	assert.Error(t, broken.Validate())

	broken = *cfg
	broken.RateLimit = RateLimitConfig{Enabled: true}
	assert.Error(t, broken.Validate())
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", c.DSN())
}
