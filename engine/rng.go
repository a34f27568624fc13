package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// Float derives a deterministic value in [0,1] from (seed, nonce) by keying
// HMAC-SHA256 with the seed and hashing the decimal nonce, then mapping the
// first 32 bits of the digest onto the unit interval. Identical inputs always
// produce identical outputs, which is what makes third-party replay possible.
//
// Games that need several independent draws from one seed must use distinct
// nonces, one per draw.
func Float(seed string, nonce int) float64 {
	mac := hmac.New(sha256.New, []byte(seed))
	mac.Write([]byte(strconv.Itoa(nonce)))
	digest := mac.Sum(nil)
	return float64(binary.BigEndian.Uint32(digest[:4])) / float64(0xffffffff)
}
