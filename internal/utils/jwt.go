// Package utils provides token creation and hashing helpers.
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnsupportedAlgorithm is returned when ALGORITHM names anything other
// than an HMAC signing method (HS256, HS384, HS512).
var ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

// AccessToken represents a signed JWT access token along with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// RefreshToken represents a long-lived token used to obtain new access tokens.
// Only the SHA-256 hash of Raw should ever be persisted.
type RefreshToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// SigningMethod resolves an algorithm name such as "HS256" to its HMAC
// signing method.
func SigningMethod(algorithm string) (*jwt.SigningMethodHMAC, error) {
	m, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	return m, nil
}

// NewAccessToken builds and signs a JWT for subject with the configured
// secret and algorithm.  The claims are sub, exp and iat.
func NewAccessToken(secret, algorithm, subject string, ttl time.Duration) (AccessToken, error) {
	method, err := SigningMethod(algorithm)
	if err != nil {
		return AccessToken{}, err
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw against secret and algorithm and returns
// its registered claims.  Tokens signed with any other method are rejected.
func ParseAccessToken(secret, algorithm, raw string) (*jwt.RegisteredClaims, error) {
	method, err := SigningMethod(algorithm)
	if err != nil {
		return nil, err
	}
	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// refreshTokenBytes is the entropy of an opaque refresh token.
const refreshTokenBytes = 32

// TokenPair is what a login hands out: a short-lived JWT plus an opaque
// refresh token.  RefreshHash is the value to persist server-side.
type TokenPair struct {
	Access      AccessToken
	Refresh     RefreshToken
	RefreshHash string
}

// IssueTokenPair signs an access token valid for accessTTL and generates a
// refresh token valid for refreshTTL, both for subject.
func IssueTokenPair(secret, algorithm, subject string, accessTTL, refreshTTL time.Duration) (TokenPair, error) {
	access, err := NewAccessToken(secret, algorithm, subject, accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := NewRefreshToken(refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh, RefreshHash: HashRefreshToken(refresh.Raw)}, nil
}

// NewRefreshToken generates an opaque, URL-safe refresh token expiring
// after ttl.
func NewRefreshToken(ttl time.Duration) (RefreshToken, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return RefreshToken{}, fmt.Errorf("generate refresh token: %w", err)
	}
	return RefreshToken{
		Raw: base64.RawURLEncoding.EncodeToString(buf),
		Exp: time.Now().UTC().Add(ttl),
	}, nil
}

// HashRefreshToken is the hex SHA-256 digest of raw.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
