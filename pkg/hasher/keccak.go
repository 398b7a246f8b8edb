package hasher

import (
	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes two 32-byte digests with the pre-NIST Keccak-256 padding
// used by Ethereum tooling.
type Keccak256 struct{}

// Hash2 implements smt.Hasher.
func (Keccak256) Hash2(left, right Bytes32) (Bytes32, error) {
	h := sha3.NewLegacyKeccak256()
	h.Write(left[:])
	h.Write(right[:])

	var out Bytes32
	copy(out[:], h.Sum(nil))
	return out, nil
}
