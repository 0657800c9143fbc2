package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", "HS256", "42", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	claims, err := ParseAccessToken("secret", "HS256", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
}

func TestAccessToken_OtherHMACAlgorithm(t *testing.T) {
	tok, err := NewAccessToken("secret", "HS512", "7", time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", "HS512", tok.Token)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", "HS256", tok.Token)
	require.Error(t, err, "algorithm mismatch must be rejected")
}

func TestAccessToken_UnsupportedAlgorithm(t *testing.T) {
	for _, alg := range []string{"RS256", "none", ""} {
		_, err := NewAccessToken("secret", alg, "1", time.Minute)
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm, alg)
	}
}

func TestParseAccessToken_Rejects(t *testing.T) {
	good, err := NewAccessToken("secret", "HS256", "1", time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken("other", "HS256", good.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, err := NewAccessToken("secret", "HS256", "1", -time.Minute)
	require.NoError(t, err)
	_, err = ParseAccessToken("secret", "HS256", expired.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRefreshToken(t *testing.T) {
	rt, err := NewRefreshToken(7 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 43)
	assert.NotContains(t, rt.Raw, "=")
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), rt.Exp, 5*time.Second)

	other, err := NewRefreshToken(time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, rt.Raw, other.Raw)
}

func TestHashRefreshToken(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashRefreshToken("abc"))
}

func TestIssueTokenPair(t *testing.T) {
	pair, err := IssueTokenPair("secret", "HS256", "42", 15*time.Minute, 48*time.Hour)
	require.NoError(t, err)

	claims, err := ParseAccessToken("secret", "HS256", pair.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), pair.Access.Exp, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), pair.Refresh.Exp, 5*time.Second)
	assert.Equal(t, HashRefreshToken(pair.Refresh.Raw), pair.RefreshHash)

	_, err = IssueTokenPair("secret", "RS256", "42", time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}
