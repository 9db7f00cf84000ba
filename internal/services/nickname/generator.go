package nickname

import (
	"strings"

	"github.com/pixelquest/accounts/internal/dependencies/random"
)

const (
	digits       = "0123456789"
	suffixLength = 4
	fallbackStem = "player"
	maxStemLen   = 20
)

// Generator produces a display name for a newly created account
type Generator interface {
	Generate(email string) string
}

// Service derives nicknames from the email local part plus a random suffix
type Service struct {
	random random.Random
}

// Ensure Service implements Generator
var _ Generator = (*Service)(nil)

// New creates a nickname generator
func New(rnd random.Random) *Service {
	return &Service{random: rnd}
}

// Generate returns a nickname like "alice4821".
// Emails with an unusable local part fall back to a generic stem.
func (s *Service) Generate(email string) string {
	stem := stemFromEmail(email)
	return stem + s.random.String(suffixLength, digits)
}

func stemFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")

	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() >= maxStemLen {
			break
		}
	}

	if b.Len() == 0 {
		return fallbackStem
	}
	return b.String()
}
