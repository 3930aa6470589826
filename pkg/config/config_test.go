package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, 18.0, cfg.Catalog.SizeRangeMin)
	assert.Equal(t, 45.0, cfg.Catalog.SizeRangeMax)
	assert.True(t, cfg.Catalog.LegacyDecode)
	assert.False(t, cfg.HTTP.ProtectWrites)
	assert.Equal(t, "0.19", cfg.Checkout.TaxRate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_ValoresDeEntorno(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "SQLite")
	v.Set("SQLITE_PATH", ":memory:")
	v.Set("HTTP_PORT", "9090")
	v.Set("HTTP_PROTECT_WRITES", "true")
	v.Set("CATALOG_SIZE_RANGE_MIN", "0")
	v.Set("CATALOG_SIZE_RANGE_MAX", "0")
	v.Set("CATALOG_LEGACY_DECODE", "false")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, ":memory:", cfg.DB.SQLitePath)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.ProtectWrites)
	assert.Zero(t, cfg.Catalog.SizeRangeMax)
	assert.False(t, cfg.Catalog.LegacyDecode)
}

func TestFromViper_Invalida(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "oracle")
	v.Set("CATALOG_SIZE_RANGE_MIN", "50")
	v.Set("CHECKOUT_TAX_RATE", "diecinueve")
	v.Set("APP_ENV", "production")

	_, err := config.FromViper(v)
	require.Error(t, err)
	for _, want := range []string{"DB_DRIVER", "CATALOG_SIZE_RANGE", "CHECKOUT_TAX_RATE", "JWT_SECRET"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss:word", DBName: "tienda", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%3Aword@db:5432/tienda?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
