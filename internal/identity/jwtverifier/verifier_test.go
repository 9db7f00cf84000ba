package jwtverifier

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelquest/accounts/internal/dependencies/mocks"
	"github.com/pixelquest/accounts/internal/identity"
)

const (
	testIssuer   = "https://id.example.com"
	testAudience = "pixelquest"
)

func newTestVerifier(t *testing.T) (*Verifier, ed25519.PrivateKey, *mocks.MockClock) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewWithKey(testIssuer, testAudience, pub, clk), priv, clk
}

func signToken(t *testing.T, priv ed25519.PrivateKey, claims jwt.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(priv)
	require.NoError(t, err)
	return token
}

func validClaims(now time.Time) idTokenClaims {
	return idTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			Subject:   "uid-123",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Name:  "Alice",
		Email: "alice@example.com",
	}
}

func TestVerifyValidToken(t *testing.T) {
	v, priv, clk := newTestVerifier(t)

	token := signToken(t, priv, validClaims(clk.Now()))

	claim, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claim.UID)
	assert.Equal(t, "Alice", claim.Name)
	assert.Equal(t, "alice@example.com", claim.Email)
}

func TestVerifyOptionalFieldsAbsent(t *testing.T) {
	v, priv, clk := newTestVerifier(t)

	claims := validClaims(clk.Now())
	claims.Name = ""
	claims.Email = ""
	token := signToken(t, priv, claims)

	claim, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claim.UID)
	assert.Empty(t, claim.Name)
	assert.Empty(t, claim.Email)
}

func TestVerifyEmptyToken(t *testing.T) {
	v, _, _ := newTestVerifier(t)

	_, err := v.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerifyGarbageToken(t *testing.T) {
	v, _, _ := newTestVerifier(t)

	_, err := v.Verify(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerifyWrongKey(t *testing.T) {
	v, _, clk := newTestVerifier(t)

	_, otherPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	token := signToken(t, otherPriv, validClaims(clk.Now()))

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	v, priv, clk := newTestVerifier(t)

	token := signToken(t, priv, validClaims(clk.Now()))
	clk.Advance(2 * time.Hour)

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerifyWrongIssuer(t *testing.T) {
	v, priv, clk := newTestVerifier(t)

	claims := validClaims(clk.Now())
	claims.Issuer = "https://other.example.com"
	token := signToken(t, priv, claims)

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerifyWrongAudience(t *testing.T) {
	v, priv, clk := newTestVerifier(t)

	claims := validClaims(clk.Now())
	claims.Audience = jwt.ClaimStrings{"someone-else"}
	token := signToken(t, priv, claims)

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerifyMissingSubject(t *testing.T) {
	v, priv, clk := newTestVerifier(t)

	claims := validClaims(clk.Now())
	claims.Subject = ""
	token := signToken(t, priv, claims)

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestNewRejectsBadKey(t *testing.T) {
	clk := mocks.NewMockClock(time.Now())

	_, err := New(Config{Issuer: testIssuer, Audience: testAudience, PublicKey: "c2hvcnQ"}, clk)
	assert.Error(t, err)
}
