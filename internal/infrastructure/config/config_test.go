package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	t.Run("fills every empty field", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)

		assert.Equal(t, "oms-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, 1<<20, cfg.HTTP.MaxHeaderBytes)
		assert.Equal(t, 30, cfg.Billing.InvoiceDueDays)
		assert.Equal(t, "oms-backend", cfg.Telemetry.ServiceName)
	})

	t.Run("telemetry service name follows the app name", func(t *testing.T) {
		cfg := &Config{}
		cfg.App.Name = "oms-staging"
		applyDefaults(cfg)
		assert.Equal(t, "oms-staging", cfg.Telemetry.ServiceName)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := &Config{}
		cfg.App.Port = "9090"
		cfg.Billing.InvoiceDueDays = 45
		applyDefaults(cfg)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, 45, cfg.Billing.InvoiceDueDays)
	})

	t.Run("log defaults depend on the environment", func(t *testing.T) {
		dev := &Config{}
		applyDefaults(dev)
		assert.Equal(t, "debug", dev.Log.Level)
		assert.Equal(t, "console", dev.Log.Format)

		prod := &Config{}
		prod.App.Env = "production"
		applyDefaults(prod)
		assert.Equal(t, "info", prod.Log.Level)
		assert.Equal(t, "json", prod.Log.Format)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("accepts the defaults", func(t *testing.T) {
		assert.NoError(t, valid().validate())
	})

	t.Run("rejects an unknown environment", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "qa"
		require.Error(t, cfg.validate())
	})

	t.Run("rejects an out-of-range database port", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Port = 70000
		require.Error(t, cfg.validate())
	})

	t.Run("rejects idle connections exceeding open connections", func(t *testing.T) {
		cfg := valid()
		cfg.Database.MaxIdleConns = 50
		cfg.Database.MaxOpenConns = 10
		require.Error(t, cfg.validate())
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "oms", Password: "secret",
		DBName: "oms", SSLMode: "disable",
	}

	t.Run("builds a keyword DSN", func(t *testing.T) {
		assert.Equal(t,
			"host=db port=5432 user=oms password=secret dbname=oms sslmode=disable",
			cfg.DSN())
	})

	t.Run("appends the statement timeout when set", func(t *testing.T) {
		withTimeout := cfg
		withTimeout.StatementTimeout = 30
		assert.Contains(t, withTimeout.DSN(), "statement_timeout=30s")
	})

	t.Run("escapes credentials in the URL form", func(t *testing.T) {
		escaped := cfg
		escaped.Password = "p@ss/word"
		assert.Equal(t,
			"postgres://oms:p%40ss%2Fword@db:5432/oms?sslmode=disable",
			escaped.URL())
	})
}
