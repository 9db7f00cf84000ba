package identity

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned for any token that fails verification
var ErrInvalidToken = errors.New("invalid identity token")

// Claim is the decoded, verified payload of an identity token.
// Name and Email are optional; providers do not always include them.
type Claim struct {
	UID   string
	Name  string
	Email string
}

// Verifier checks an opaque identity token and returns its decoded claim.
// Implementations must not have side effects on failure.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claim, error)
}
