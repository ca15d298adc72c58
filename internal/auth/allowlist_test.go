package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowListContains(t *testing.T) {
	l := NewAllowList([]string{"admin@example.com", " Ops@Example.COM "})

	assert.True(t, l.Contains("admin@example.com"))
	assert.True(t, l.Contains("ADMIN@example.com"))
	assert.True(t, l.Contains("ops@example.com"))
	assert.True(t, l.Contains("  ops@example.com  "))
	assert.False(t, l.Contains("intruder@example.com"))
	assert.False(t, l.Contains(""))
}

func TestAllowListEmpty(t *testing.T) {
	l := NewAllowList(nil)
	assert.False(t, l.Contains("admin@example.com"))
}
