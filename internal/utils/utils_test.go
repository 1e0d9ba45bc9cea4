package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	signed, exp, err := GenerateToken(42, "ada@example.com", "test-secret", "15m")
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	claims, err := VerifyToken(signed, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.SubjectInt())
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	signed, _, err := GenerateToken(42, "ada@example.com", "test-secret", "15m")
	require.NoError(t, err)

	_, err = VerifyToken(signed, "other-secret")
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	signed, _, err := GenerateToken(42, "ada@example.com", "test-secret", "1s")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)
	_, err = VerifyToken(signed, "test-secret")
	assert.Error(t, err)
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 15 * time.Minute},
		{"15m", 15 * time.Minute},
		{"1h", time.Hour},
		{"20s", 20 * time.Second},
		{"30", 30 * time.Minute},
	}
	for _, tt := range tests {
		got, err := ParseTTL(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseTTL("nonsense")
	assert.Error(t, err)
}

func TestJWTVerifier(t *testing.T) {
	signed, _, err := GenerateToken(42, "ada@example.com", "test-secret", "15m")
	require.NoError(t, err)

	v := JWTVerifier{Secret: "test-secret"}
	uid, err := v.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)

	_, err = v.Verify("garbage")
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "", BearerToken(r))

	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", BearerToken(r))

	r.Header.Set("Authorization", "bearer abc123")
	assert.Equal(t, "abc123", BearerToken(r))

	r.Header.Set("Authorization", "Basic abc123")
	assert.Equal(t, "", BearerToken(r))
}
