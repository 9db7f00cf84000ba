package mocks

import (
	"context"

	"github.com/pixelquest/accounts/internal/identity"
)

// MockVerifier is a mock implementation of identity.Verifier for testing.
// Tokens map to canned claims; unknown tokens fail verification.
type MockVerifier struct {
	// Claims maps token strings to the claim returned for them
	Claims map[string]*identity.Claim

	// Calls records every token passed to Verify
	Calls []string
}

// Ensure MockVerifier implements Verifier
var _ identity.Verifier = (*MockVerifier)(nil)

// NewMockVerifier creates a MockVerifier with no known tokens
func NewMockVerifier() *MockVerifier {
	return &MockVerifier{Claims: make(map[string]*identity.Claim)}
}

// Allow registers a token and the claim it decodes to
func (v *MockVerifier) Allow(token string, claim *identity.Claim) {
	v.Claims[token] = claim
}

// Verify returns the registered claim or identity.ErrInvalidToken
func (v *MockVerifier) Verify(_ context.Context, token string) (*identity.Claim, error) {
	v.Calls = append(v.Calls, token)
	claim, ok := v.Claims[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return claim, nil
}
