package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvPrecedence(t *testing.T) {
	orig := Env
	t.Cleanup(func() { Env = orig })

	t.Run("file value wins over process env", func(t *testing.T) {
		Env = map[string]string{"APP_PORT": "4000"}
		t.Setenv("APP_PORT", "9999")
		assert.Equal(t, "4000", GetEnv("APP_PORT", "1234"))
	})

	t.Run("falls back to process env", func(t *testing.T) {
		Env = map[string]string{}
		t.Setenv("CACHE_HOST", "redis.internal")
		assert.Equal(t, "redis.internal", GetEnv("CACHE_HOST", "localhost"))
	})

	t.Run("falls back to the default", func(t *testing.T) {
		Env = nil
		assert.Equal(t, "localhost", GetEnv("MISSING_KEY_FOR_TEST", "localhost"))
	})
}

func TestIsDev(t *testing.T) {
	orig := Env
	t.Cleanup(func() { Env = orig })

	Env = map[string]string{"APP_ENV": "dev"}
	assert.True(t, IsDev())

	Env = map[string]string{"APP_ENV": "prod"}
	assert.False(t, IsDev())
}
