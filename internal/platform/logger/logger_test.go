package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVsRedactsCredentials(t *testing.T) {
	got := sanitizeKVs([]interface{}{"user_id", "u1", "api_key", "abc", "Authorization", "Bearer x", "dangling"})
	assert.Equal(t, []interface{}{"user_id", "u1", "api_key", "[REDACTED]", "Authorization", "[REDACTED]", "dangling"}, got)
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("hello", "k", "v")
	l.Sync()
}
