package jwtverifier

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pixelquest/accounts/internal/dependencies/clock"
	"github.com/pixelquest/accounts/internal/identity"
)

// Config holds verification settings for provider-issued ID tokens
type Config struct {
	Issuer    string `env:"PQACCT_TOKEN_ISSUER"`
	Audience  string `env:"PQACCT_TOKEN_AUDIENCE"`
	PublicKey string `env:"PQACCT_TOKEN_PUBLIC_KEY"` // base64 ed25519 public key
}

// LoadConfigFromEnv reads token verification configuration from the environment
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse token env: %w", err)
	}
	if cfg.Issuer == "" {
		return Config{}, fmt.Errorf("PQACCT_TOKEN_ISSUER is required")
	}
	if cfg.Audience == "" {
		return Config{}, fmt.Errorf("PQACCT_TOKEN_AUDIENCE is required")
	}
	if cfg.PublicKey == "" {
		return Config{}, fmt.Errorf("PQACCT_TOKEN_PUBLIC_KEY is required")
	}
	return cfg, nil
}

// idTokenClaims is the claims shape issued by the identity provider
type idTokenClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Verifier verifies EdDSA-signed ID tokens
type Verifier struct {
	issuer   string
	audience string
	key      ed25519.PublicKey
	clock    clock.Clock
}

// Ensure Verifier implements the interface
var _ identity.Verifier = (*Verifier)(nil)

// New creates a Verifier from config
func New(cfg Config, clk clock.Clock) (*Verifier, error) {
	keyBytes, err := decodeBase64(cfg.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("decode token public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("token public key must be %d bytes", ed25519.PublicKeySize)
	}

	return &Verifier{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		key:      ed25519.PublicKey(keyBytes),
		clock:    clk,
	}, nil
}

// NewWithKey creates a Verifier with an explicit key (for testing)
func NewWithKey(issuer, audience string, key ed25519.PublicKey, clk clock.Clock) *Verifier {
	return &Verifier{
		issuer:   issuer,
		audience: audience,
		key:      key,
		clock:    clk,
	}
}

// Verify parses and validates an ID token and returns its claim.
// Every failure maps to identity.ErrInvalidToken; the parse detail is
// intentionally not surfaced to callers.
func (v *Verifier) Verify(_ context.Context, token string) (*identity.Claim, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, identity.ErrInvalidToken
	}

	var parsed idTokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return v.key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithTimeFunc(v.clock.Now),
	)
	if err != nil {
		return nil, identity.ErrInvalidToken
	}

	if parsed.Subject == "" {
		return nil, identity.ErrInvalidToken
	}

	return &identity.Claim{
		UID:   parsed.Subject,
		Name:  parsed.Name,
		Email: parsed.Email,
	}, nil
}

func decodeBase64(value string) ([]byte, error) {
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
