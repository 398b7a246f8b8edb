package smt

import "fmt"

// Pair is one level of a membership path: the two children whose hash is the
// node one level up.
type Pair[F comparable] struct {
	Left  F `cbor:"left"`
	Right F `cbor:"right"`
}

// Path is a membership path from a leaf to the root, stored as sibling pairs
// with level 0 adjacent to the leaf. Each pair identifies whether an
// incremental root construction is valid at that step.
type Path[F comparable] struct {
	Pairs []Pair[F] `cbor:"path"`
}

// CalculateRoot folds the path starting from the candidate leaf. At every
// level the running hash must appear on one side of the pair; the fold
// result is the implied root.
func (p Path[F]) CalculateRoot(leaf F, hasher Hasher[F]) (F, error) {
	var zero F
	if len(p.Pairs) == 0 {
		return zero, fmt.Errorf("empty path: %w", ErrInvalidPathNodes)
	}
	if leaf != p.Pairs[0].Left && leaf != p.Pairs[0].Right {
		return zero, ErrInvalidLeaf
	}

	prev := leaf
	for level, pair := range p.Pairs {
		if prev != pair.Left && prev != pair.Right {
			return zero, fmt.Errorf("level %d: %w", level, ErrInvalidPathNodes)
		}
		var err error
		prev, err = hasher.Hash2(pair.Left, pair.Right)
		if err != nil {
			return zero, fmt.Errorf("hash level %d: %w", level, err)
		}
	}

	return prev, nil
}

// CheckMembership reports whether the path connects the leaf to the
// expected root.
func (p Path[F]) CheckMembership(root F, leaf F, hasher Hasher[F]) (bool, error) {
	got, err := p.CalculateRoot(leaf, hasher)
	if err != nil {
		return false, err
	}
	return got == root, nil
}

// Proof is a single-leaf membership proof: the path together with the root
// and leaf value it attests.
type Proof[F comparable] struct {
	Path Path[F] `cbor:"path"`
	Root F       `cbor:"root"`
	Leaf F       `cbor:"leaf"`
}

// Verify checks the proof's path against its own root and leaf.
func (pr Proof[F]) Verify(hasher Hasher[F]) (bool, error) {
	return pr.Path.CheckMembership(pr.Root, pr.Leaf, hasher)
}
