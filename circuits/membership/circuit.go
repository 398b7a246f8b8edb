// Package membership provides the gnark circuit that consumes the arithmetic
// witnesses produced by pkg/smt: it verifies a single membership path
// against a public root in-circuit.
package membership

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash"
	"github.com/consensys/gnark/std/permutation/poseidon2"

	"github.com/ple1n/sparsetree/config"
)

// MembershipCircuit verifies that a leaf belongs to a sparse Merkle tree
// with the given root.
type MembershipCircuit struct {
	// Public inputs
	RootHash frontend.Variable `gnark:"rootHash,public"`

	// Private inputs
	LeafValue  frontend.Variable                           `gnark:"leafValue"`
	Siblings   [config.CircuitTreeHeight]frontend.Variable `gnark:"siblings"`   // sibling hashes along the path to root
	Directions [config.CircuitTreeHeight]frontend.Variable `gnark:"directions"` // 0 = sibling on right, 1 = sibling on left
}

// Define implements the circuit logic for membership verification.
func (circuit *MembershipCircuit) Define(api frontend.API) error {
	// Initialize Poseidon2 hasher
	p, err := poseidon2.NewPoseidon2FromParameters(api, 2, 6, 50)
	if err != nil {
		return err
	}
	hasher := hash.NewMerkleDamgardHasher(api, p, 0)

	currentHash := circuit.LeafValue

	// We process exactly CircuitTreeHeight levels; padding levels have
	// sibling=0 and must not alter the running hash.
	for i := 0; i < config.CircuitTreeHeight; i++ {
		sibling := circuit.Siblings[i]
		direction := circuit.Directions[i]

		siblingIsZero := api.IsZero(sibling)

		// Convention: direction == 0 → sibling on the RIGHT (current node is LEFT)
		//             direction == 1 → sibling on the LEFT  (current node is RIGHT)
		hasher.Reset()
		leftHash := api.Select(direction, sibling, currentHash)
		rightHash := api.Select(direction, currentHash, sibling)
		hasher.Write(leftHash, rightHash)
		newHash := hasher.Sum()

		// Update the accumulator only when sibling != 0
		currentHash = api.Select(siblingIsZero, currentHash, newHash)
	}

	api.AssertIsEqual(currentHash, circuit.RootHash)

	return nil
}
