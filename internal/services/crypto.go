package services

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// ContentDigest fingerprints uploaded bytes for the usage ledger so repeated
// uploads can be spotted without storing the image itself
func ContentDigest(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}
