package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestContentSanitizer(t *testing.T) {
	s := NewContentSanitizer(100, zap.NewNop())

	t.Run("trims whitespace", func(t *testing.T) {
		got, err := s.Sanitize("  hello  \n")
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := s.Sanitize("   \t\n ")
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("rejects oversized", func(t *testing.T) {
		_, err := s.Sanitize(strings.Repeat("x", 101))
		assert.ErrorIs(t, err, ErrContentTooLarge)
	})

	t.Run("repairs invalid utf8", func(t *testing.T) {
		got, err := s.Sanitize("ok\xffok")
		require.NoError(t, err)
		assert.Equal(t, "okok", got)
	})
}
