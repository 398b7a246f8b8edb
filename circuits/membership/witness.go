package membership

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"

	"github.com/ple1n/sparsetree/config"
	"github.com/ple1n/sparsetree/pkg/hasher"
	"github.com/ple1n/sparsetree/pkg/smt"
)

// WitnessResult holds the populated circuit assignment plus the values
// callers typically need for logging or fixture export.
type WitnessResult struct {
	Assignment MembershipCircuit
	Root       *big.Int
	Leaf       *big.Int
}

// PrepareWitness converts a native membership proof into a circuit
// assignment. The proof must come from a Poseidon2 tree of height at most
// config.CircuitTreeHeight; shorter paths are padded with zero siblings,
// which the circuit skips.
func PrepareWitness(proof smt.Proof[fr.Element]) (*WitnessResult, error) {
	pairs := proof.Path.Pairs
	if len(pairs) > config.CircuitTreeHeight {
		return nil, fmt.Errorf("path of %d levels exceeds circuit height %d", len(pairs), config.CircuitTreeHeight)
	}

	var siblings [config.CircuitTreeHeight]frontend.Variable
	var directions [config.CircuitTreeHeight]frontend.Variable

	// Walk the pairs with the native hasher to recover, per level, which
	// side the running node is on and which side is the sibling.
	h := hasher.Poseidon2{}
	current := proof.Leaf
	for i, pair := range pairs {
		switch current {
		case pair.Left:
			siblings[i] = elementToBig(pair.Right)
			directions[i] = 0 // sibling on the right
		case pair.Right:
			siblings[i] = elementToBig(pair.Left)
			directions[i] = 1 // sibling on the left
		default:
			return nil, fmt.Errorf("level %d: %w", i, smt.ErrInvalidPathNodes)
		}

		var err error
		current, err = h.Hash2(pair.Left, pair.Right)
		if err != nil {
			return nil, fmt.Errorf("fold level %d: %w", i, err)
		}
	}
	if current != proof.Root {
		return nil, fmt.Errorf("path does not reach root: %w", smt.ErrInvalidPathNodes)
	}
	for i := len(pairs); i < config.CircuitTreeHeight; i++ {
		siblings[i] = 0
		directions[i] = 0
	}

	root := elementToBig(proof.Root)
	leaf := elementToBig(proof.Leaf)

	assignment := MembershipCircuit{
		RootHash:   root,
		LeafValue:  leaf,
		Siblings:   siblings,
		Directions: directions,
	}

	return &WitnessResult{
		Assignment: assignment,
		Root:       root,
		Leaf:       leaf,
	}, nil
}

func elementToBig(e fr.Element) *big.Int {
	out := new(big.Int)
	e.BigInt(out)
	return out
}
