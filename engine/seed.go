package engine

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

// SeedPair is a commit-reveal pair: the hash is fixed before the outcome is
// computed, the seed is revealed with the result so anyone can replay it.
type SeedPair struct {
	Seed     string
	SeedHash string
}

// NewSeedPair generates a 256-bit seed from crypto/rand and its SHA-256
// commitment, both hex encoded.
func NewSeedPair() (SeedPair, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return SeedPair{}, fmt.Errorf("failed to read random seed: %w", err)
	}
	seed := hex.EncodeToString(buf)
	return SeedPair{Seed: seed, SeedHash: HashSeed(seed)}, nil
}

// HashSeed returns the hex SHA-256 of the hex-encoded seed string.
func HashSeed(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// VerifySeed reports whether hash is the commitment for seed.
func VerifySeed(seed, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashSeed(seed)), []byte(hash)) == 1
}

// NewSessionID returns an ephemeral identifier attached to a single bet,
// useful for support and log correlation but carrying no game state.
func NewSessionID() string {
	buf := make([]byte, 4)
	rand.Read(buf)
	return fmt.Sprintf("vm_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
