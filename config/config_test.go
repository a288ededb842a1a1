package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistroboss/config"
)

func setRequired(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "segredo")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_123")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "postgres://bistro:bistro@db:5432/bistro?sslmode=disable")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenExpiry)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, "usd", cfg.PaymentCurrency)
	assert.False(t, cfg.PaymentVerifyCharge)
	assert.Equal(t, "postgres://bistro:bistro@db:5432/bistro?sslmode=disable", cfg.DSN())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_123")
	t.Setenv("DATABASE_URL", "postgres://localhost/bistro")

	_, err := config.LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_MissingDatabase(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_USER", "")

	_, err := config.LoadConfig()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestDSN_FromCredentials(t *testing.T) {
	cfg := config.Config{DBUser: "boss", DBPass: "p@ss", DBHost: "db:5432", DBName: "bistroDB"}

	assert.Equal(t, "postgres://boss:p%40ss@db:5432/bistroDB?sslmode=disable", cfg.DSN())
}
