package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvTyped(t *testing.T) {
	t.Run("Unset Keys Use Default", func(t *testing.T) {
		assert.Equal(t, "fallback", GetEnvString("MEDIBOOK_TEST_UNSET_STRING", "fallback"))
		assert.Equal(t, 7, GetEnvInt("MEDIBOOK_TEST_UNSET_INT", 7))
		assert.True(t, GetEnvBool("MEDIBOOK_TEST_UNSET_BOOL", true))
	})

	t.Run("Set Keys Are Parsed", func(t *testing.T) {
		t.Setenv("MEDIBOOK_TEST_STRING", "value")
		t.Setenv("MEDIBOOK_TEST_INT", " 42 ")
		t.Setenv("MEDIBOOK_TEST_BOOL", "false")

		assert.Equal(t, "value", GetEnvString("MEDIBOOK_TEST_STRING", "fallback"))
		assert.Equal(t, 42, GetEnvInt("MEDIBOOK_TEST_INT", 7))
		assert.False(t, GetEnvBool("MEDIBOOK_TEST_BOOL", true))
	})

	t.Run("Unparseable Values Use Default", func(t *testing.T) {
		t.Setenv("MEDIBOOK_TEST_INT", "forty-two")
		t.Setenv("MEDIBOOK_TEST_BOOL", "maybe")

		assert.Equal(t, 7, GetEnvInt("MEDIBOOK_TEST_INT", 7))
		assert.True(t, GetEnvBool("MEDIBOOK_TEST_BOOL", true))
	})
}

func TestRequireEnv(t *testing.T) {
	t.Run("Present Key", func(t *testing.T) {
		t.Setenv("MEDIBOOK_TEST_SECRET", "  s3cret ")

		value, err := RequireEnvString("MEDIBOOK_TEST_SECRET")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", value)
	})

	t.Run("Blank Key Is Missing", func(t *testing.T) {
		t.Setenv("MEDIBOOK_TEST_SECRET", "   ")

		_, err := RequireEnvString("MEDIBOOK_TEST_SECRET")
		require.ErrorIs(t, err, ErrMissingEnv)
		assert.Contains(t, err.Error(), "MEDIBOOK_TEST_SECRET")
	})

	t.Run("Reports Every Missing Key", func(t *testing.T) {
		t.Setenv("MEDIBOOK_TEST_PRESENT", "yes")
		t.Setenv("MEDIBOOK_TEST_BLANK", "")

		err := RequireEnv("MEDIBOOK_TEST_PRESENT", "MEDIBOOK_TEST_BLANK", "MEDIBOOK_TEST_UNSET")
		require.ErrorIs(t, err, ErrMissingEnv)
		assert.Contains(t, err.Error(), "MEDIBOOK_TEST_BLANK, MEDIBOOK_TEST_UNSET")
		assert.NotContains(t, err.Error(), "MEDIBOOK_TEST_PRESENT")

		assert.NoError(t, RequireEnv("MEDIBOOK_TEST_PRESENT"))
	})
}
