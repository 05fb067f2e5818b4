package allowlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestChecker(t *testing.T) {
	c := NewChecker([]string{" Example.COM ", "corp.internal", ""}, zap.NewNop())

	tests := []struct {
		addr string
		want bool
	}{
		{"alice@example.com", true},
		{"bob@EXAMPLE.com", true},
		{"<carol@corp.internal>", true},
		{"mallory@evil.example.net", false},
		{"no-at-sign", false},
		{"trailing@", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.IsTrusted(tt.addr), tt.addr)
	}
}

func TestChecker_EmptyList(t *testing.T) {
	c := NewChecker(nil, nil)
	assert.False(t, c.IsTrusted("alice@example.com"))
}
