package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.DB.QueryTimeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "0 6 * * *", cfg.Scheduler.RecurringCron)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_EnvSobrescreve(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_QUERY_TIMEOUT_SECONDS", "3")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("DB_PASSWORD", "s3nh@#forte")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.DB.QueryTimeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Contains(t, cfg.DB.DSN(), "s3nh%40%23forte", "senha deve ser codificada na URL")
}

func TestLoad_ProducaoExigeSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_PoolInvalido(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("DB_MIN_CONNS", "5")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_StorageExigeCredenciais(t *testing.T) {
	t.Setenv("STORAGE_ENABLED", "true")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{DatabaseURL: "postgres://u:p@db:5432/x"}
	assert.Equal(t, "postgres://u:p@db:5432/x", c.ConnectionString())

	c = DBConfig{Host: "localhost", Port: 5432, User: "postgres", DBName: "barber", SSLMode: "disable"}
	assert.Equal(t, "postgres://postgres:@localhost:5432/barber?sslmode=disable", c.ConnectionString())
}
