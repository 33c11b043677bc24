package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateQRToken(t *testing.T) {
	token, err := GenerateQRToken(16)
	require.NoError(t, err)

	// 16 bytes come out as 22 unpadded base64 characters, URL-safe.
	require.Len(t, token, 22)
	require.NotContains(t, token, "=")
	require.NotContains(t, token, "+")
	require.NotContains(t, token, "/")

	other, err := GenerateQRToken(16)
	require.NoError(t, err)
	require.NotEqual(t, token, other)
}

func TestConstantTimeEquals(t *testing.T) {
	require.True(t, ConstantTimeEquals("abc", "abc"))
	require.False(t, ConstantTimeEquals("abc", "abd"))
	require.False(t, ConstantTimeEquals("abc", "abcd"))
	require.False(t, ConstantTimeEquals("", "a"))
	require.True(t, ConstantTimeEquals("", ""))
}

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode(8)
	require.Len(t, code, 8)

	// The alphabet omits characters that read ambiguously.
	for _, banned := range []string{"0", "O", "1", "I", "l"} {
		require.False(t, strings.Contains(code, banned), "code %q contains %q", code, banned)
	}
}
