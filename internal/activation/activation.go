// Package activation produces the time-limited tokens handed to the account
// activation flow.
package activation

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	DefaultTTL = 24 * time.Hour
	randomLen  = 20
)

type Activation struct {
	Token  string
	Expiry time.Time
}

type Generator struct {
	TTL time.Duration
	Now func() time.Time
}

func NewGenerator(ttl time.Duration) *Generator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Generator{TTL: ttl, Now: time.Now}
}

// Generate returns email followed by the hex of 20 random bytes.
func (g *Generator) Generate(email string) (Activation, error) {
	return g.GenerateAt(email, g.Now())
}

// GenerateAt is Generate with the issue time fixed by the caller.
func (g *Generator) GenerateAt(email string, now time.Time) (Activation, error) {
	buf := make([]byte, randomLen)
	if _, err := rand.Read(buf); err != nil {
		return Activation{}, fmt.Errorf("activation token: %w", err)
	}
	return Activation{
		Token:  email + hex.EncodeToString(buf),
		Expiry: now.UTC().Add(g.TTL),
	}, nil
}
