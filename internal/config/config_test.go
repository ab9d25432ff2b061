package config_test

import (
	"testing"

	"ambassador_shop/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := config.LoadConfig()
	assert.Equal(t, "8000", cfg.AppPort)
	assert.Equal(t, "127.0.0.1", cfg.DBHost)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &config.Config{
		DBUser:     "shop",
		DBPassword: "secret",
		DBHost:     "db.internal",
		DBPort:     "3306",
		DBName:     "ambassador",
	}
	assert.Equal(t, "shop:secret@tcp(db.internal:3306)/ambassador?parseTime=true", cfg.DSN())
}
