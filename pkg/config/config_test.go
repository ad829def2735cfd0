package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-vtr/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", cfg.Readiness.Epoch)
	assert.Equal(t, "07:30", cfg.Readiness.Cutoff)
	assert.Equal(t, []string{"VERDE", "AMARELA", "AZUL"}, cfg.Readiness.States)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("READINESS_CUTOFF", "08:00")
	t.Setenv("READINESS_STATES", "VERDE, AZUL ,AMARELA")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CHECKLIST_SESSION_TTL_MINUTES", "30")
	t.Setenv("DB_PORT", "6543")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "08:00", cfg.Readiness.Cutoff)
	assert.Equal(t, []string{"VERDE", "AZUL", "AMARELA"}, cfg.Readiness.States)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestLoad_EstadosInvalidos(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("READINESS_STATES", "VERDE,AZUL")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_CorteYEpocaInvalidos(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("READINESS_CUTOFF", "7h30")
	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("READINESS_CUTOFF", "07:30")
	t.Setenv("READINESS_EPOCH", "01/01/2024")
	_, err = config.Load()
	require.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "vtr", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/vtr?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
