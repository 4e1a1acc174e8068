package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHMACSigner(t *testing.T) {
	s := NewHMACSigner("key")

	sig := s.Sign("payload")
	require.Len(t, sig, 64)
	require.True(t, s.Verify("payload", sig))
	require.False(t, s.Verify("payload ", sig))
	require.False(t, s.Verify("payload", sig[:63]))
	require.False(t, NewHMACSigner("other").Verify("payload", sig))
}

func TestParseClaims(t *testing.T) {
	c, ok := parseClaims("admin:1:2")
	require.True(t, ok)
	require.Equal(t, int64(2), c.expiresAt)

	for _, payload := range []string{"", "admin", "admin:1", "admin:1:2:3", "user:1:2", "admin:1:x", "admin:1:", "admin:x:2", "admin::2"} {
		_, ok := parseClaims(payload)
		require.False(t, ok, payload)
	}
}
