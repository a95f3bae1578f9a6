package config

import (
	"testing"

	"medibook-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRequiredEnv(t *testing.T) {
	setBase := func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("ADMIN_EMAIL", "admin@medibook.test")
		t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$hash")
	}

	t.Run("Development Needs Only Base Keys", func(t *testing.T) {
		setBase(t)
		t.Setenv("APP_ENV", "development")
		t.Setenv("STRIPE_SECRET_KEY", "")

		assert.NoError(t, CheckRequiredEnv())
	})

	t.Run("Missing JWT Secret", func(t *testing.T) {
		setBase(t)
		t.Setenv("JWT_SECRET", "")

		err := CheckRequiredEnv()
		require.ErrorIs(t, err, utils.ErrMissingEnv)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("Production Needs Gateway Keys", func(t *testing.T) {
		setBase(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("STRIPE_SECRET_KEY", "")
		t.Setenv("KHALTI_SECRET_KEY", "khalti")
		t.Setenv("MONGODB_PASSWORD", "mongo")
		t.Setenv("REDIS_PASSWORD", "redis")

		err := CheckRequiredEnv()
		require.ErrorIs(t, err, utils.ErrMissingEnv)
		assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY")
		assert.NotContains(t, err.Error(), "KHALTI_SECRET_KEY")
	})
}
