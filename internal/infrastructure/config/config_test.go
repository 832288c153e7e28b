package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "s3cret",
		"OPENAI_API_KEY": "sk-test",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 500, cfg.OpenAI.MaxTokens)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 5, cfg.RateLimit.LoginMax)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.LoginWindow)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "s3cret",
		"OPENAI_API_KEY": "sk-test",
		"APP_ENV":        "development",
		"REDIS_ADDR":     "redis:6379",
		"JWT_TTL":        "24h",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}

func TestLoad_MissingRequired(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"OPENAI_API_KEY": "sk-test",
	}))
	assert.Error(t, err)

	_, err = load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	assert.Error(t, err)
}

func TestLoad_RejectsZeroLimit(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"OPENAI_API_KEY":  "sk-test",
		"LOGIN_LIMIT_MAX": "0",
	}))
	assert.Error(t, err)
}
