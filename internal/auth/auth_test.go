package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/baitline/scam-gateway/internal/core"
)

func TestFromHeader(t *testing.T) {
	token, err := FromHeader("Bearer sk-test-12345")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-12345", token)
}

func TestFromHeader_Missing(t *testing.T) {
	_, err := FromHeader("")
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
}

func TestFromHeader_WrongScheme(t *testing.T) {
	for _, header := range []string{
		"Basic dXNlcjpwYXNz",
		"bearer sk-test-12345",
		"Bearersk-test-12345",
		"Token sk-test-12345",
	} {
		_, err := FromHeader(header)
		assert.ErrorIs(t, err, core.ErrUnauthenticated, "header %q", header)
	}
}

func TestFromHeader_EmptyToken(t *testing.T) {
	_, err := FromHeader("Bearer ")
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
}

func TestVerify(t *testing.T) {
	v := NewVerifier("sk-test-12345", zap.NewNop())

	assert.NoError(t, v.Verify("sk-test-12345"))
}

func TestVerify_Mismatch(t *testing.T) {
	v := NewVerifier("sk-test-12345", zap.NewNop())

	for _, presented := range []string{"sk-test-12346", "sk-test-1234", "sk-test-123456", "", "completely-wrong"} {
		assert.ErrorIs(t, v.Verify(presented), core.ErrUnauthorized, "presented %q", presented)
	}
}

func TestPrefix_BoundsDisclosure(t *testing.T) {
	assert.Equal(t, "sk-very-...", prefix("sk-very-long-credential-value"))
	assert.Equal(t, "ab...", prefix("abcd"))
	assert.Equal(t, "...", prefix("x"))
	assert.Equal(t, "...", prefix(""))
}
