package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	cfg := FromViper(viper.New())

	assert.Equal(t, "8080", cfg.App.Port)
	assert.False(t, cfg.Printer.Enabled)
	assert.Equal(t, 9100, cfg.Printer.Port)
	assert.Equal(t, 10*time.Second, cfg.Printer.Timeout)
	assert.Equal(t, 48, cfg.Printer.Width)
	assert.Equal(t, "Vhojon Bilash", cfg.Store.Name)
	assert.Equal(t, "ORD", cfg.OrderNo.Prefix)
	assert.Equal(t, 4, cfg.OrderNo.PadWidth)
	assert.True(t, cfg.Features.Expenses)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.CORS.AllowedHeaders)
}

func TestFromViperEnvironment(t *testing.T) {
	t.Setenv("POS_PRINTER_ENABLED", "true")
	t.Setenv("POS_PRINTER_HOST", " 192.168.1.100 ")
	t.Setenv("POS_PRINTER_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("FEATURE_EXPENSES", "false")

	v := viper.New()
	v.AutomaticEnv()
	cfg := FromViper(v)

	sink := cfg.Printer.Sink()
	assert.True(t, sink.Enabled)
	assert.Equal(t, "192.168.1.100", sink.Host)
	assert.Equal(t, 3*time.Second, sink.Timeout)
	assert.Equal(t, "192.168.1.100:9100", sink.Address())
	require.NoError(t, sink.Validate())

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Features.Expenses)
}

func TestNumeratorConfig(t *testing.T) {
	cfg := OrderNoConfig{Prefix: "INV", PadWidth: 6}.Numerator()
	assert.Equal(t, "INV", cfg.Prefix)
	assert.Equal(t, 6, cfg.PadWidth)

	cfg = OrderNoConfig{Prefix: "ORD"}.Numerator()
	assert.Equal(t, 4, cfg.PadWidth)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", db.DSN())
}
