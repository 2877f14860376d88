package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("FC_TEST_STRING", "value")
	t.Setenv("FC_TEST_INT", "24")
	t.Setenv("FC_TEST_BAD_INT", "-3")
	t.Setenv("FC_TEST_DURATION", "90s")
	t.Setenv("FC_TEST_BAD_DURATION", "soon")

	assert.Equal(t, "value", envString("FC_TEST_STRING", "def"))
	assert.Equal(t, "def", envString("FC_TEST_MISSING", "def"))
	assert.Equal(t, 24, envInt("FC_TEST_INT", 12))
	assert.Equal(t, 12, envInt("FC_TEST_BAD_INT", 12))
	assert.Equal(t, 90*time.Second, envDuration("FC_TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, envDuration("FC_TEST_BAD_DURATION", time.Minute))
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:       "FlavorConnect",
		AppEnv:        "production",
		JWTSecret:     "secret",
		AdminPassword: "hunter2hunter2",
		S3SecretKey:   "s3-secret",
		ResendAPIKey:  "re_123",
		UploadURL:     "/uploads",
	}

	safe := cfg.Sanitized()

	assert.Equal(t, "FlavorConnect", safe.AppName)
	assert.Equal(t, "/uploads", safe.UploadURL)
	assert.True(t, safe.IsProduction())
	assert.Empty(t, safe.JWTSecret)
	assert.Empty(t, safe.AdminPassword)
	assert.Empty(t, safe.S3SecretKey)
	assert.Empty(t, safe.ResendAPIKey)
}
