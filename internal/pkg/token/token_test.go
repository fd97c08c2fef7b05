package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexRe = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestNewVerificationToken_Format(t *testing.T) {
	tok, err := NewVerificationToken()
	require.NoError(t, err)
	assert.True(t, hexRe.MatchString(tok), "token %q should be 32 lowercase hex chars", tok)
}

func TestNewVerificationToken_Distinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		tok, err := NewVerificationToken()
		require.NoError(t, err)
		_, dup := seen[tok]
		require.False(t, dup, "duplicate token generated: %s", tok)
		seen[tok] = struct{}{}
	}
}
