// Package hasher provides concrete two-to-one hashers for the sparse Merkle
// tree core: byte-oriented digests (SHA-256, legacy Keccak-256) over Bytes32
// and algebraic hashes (Poseidon2, Poseidon) over BN254 scalar field
// elements.
package hasher

import (
	"crypto/sha256"
)

// Bytes32 is a 32-byte digest leaf. Its zero value is the conventional
// default leaf.
type Bytes32 [32]byte

// Sha256 hashes two 32-byte digests by concatenating and digesting. The
// output is already 32 bytes, so no truncation is involved.
type Sha256 struct{}

// Hash2 implements smt.Hasher.
func (Sha256) Hash2(left, right Bytes32) (Bytes32, error) {
	h := sha256.New()
	h.Write(left[:])
	h.Write(right[:])

	var out Bytes32
	copy(out[:], h.Sum(nil))
	return out, nil
}
