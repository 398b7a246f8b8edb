package hasher

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/iden3/go-iden3-crypto/poseidon"
)

// Poseidon compresses two BN254 scalar field elements with the width-3,
// rate-2 Poseidon permutation (x^5 S-box, 8 full rounds).
type Poseidon struct{}

// Hash2 implements smt.Hasher.
func (Poseidon) Hash2(left, right fr.Element) (fr.Element, error) {
	lBytes := left.Bytes()
	rBytes := right.Bytes()

	sum, err := poseidon.Hash([]*big.Int{
		new(big.Int).SetBytes(lBytes[:]),
		new(big.Int).SetBytes(rBytes[:]),
	})
	if err != nil {
		return fr.Element{}, fmt.Errorf("poseidon hash: %w", err)
	}

	var out fr.Element
	out.SetBigInt(sum)
	return out, nil
}
