package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Code is a short numeric passcode with its expiry instant.
type Code struct {
	Value     int
	ExpiresAt time.Time
}

// String renders the code zero-padded to six digits, the form users see in
// email.
func (c Code) String() string {
	return fmt.Sprintf("%06d", c.Value)
}

// Generator produces 6-digit numeric codes from the CSPRNG.
type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

func (g *Generator) Generate(ttl time.Duration) (Code, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return Code{}, fmt.Errorf("generating otp: %w", err)
	}
	return Code{
		Value:     int(n.Int64()),
		ExpiresAt: g.now().Add(ttl),
	}, nil
}
