package smt

import (
	"fmt"

	"github.com/ple1n/sparsetree/pkg/witness"
)

// PartialTree is a shippable sub-skeleton of a full sparse Merkle tree: the
// minimal set of materialized digests needed to recompute the root over the
// attested leaf slots, plus the empty-hash ladder so the verifier never
// needs to know the default leaf. It is produced by BatchProve and immutable
// afterwards.
type PartialTree[F comparable] struct {
	// Tree holds exactly the materialized digests the verifier cannot impute
	// from the ladder.
	Tree map[uint64]F `cbor:"tree"`
	// EmptyHashes is the ladder of the producing tree; its length is the
	// tree height.
	EmptyHashes []F `cbor:"empty_hashes"`
	// Leaves lists the attested leaf slots (map indices, not node indices).
	Leaves []uint64 `cbor:"leaves"`
	// Root is the claimed root digest.
	Root F `cbor:"root"`
}

// Height returns the height of the producing tree.
func (pt *PartialTree[F]) Height() int {
	return len(pt.EmptyHashes)
}

// Verify recomputes the skeleton level by level and checks every
// claimed-materialized interior node against the hash of its children,
// imputing missing nodes from the empty-hash ladder. Before the arithmetic
// checks it commits the claimed root and the attested leaf list to the
// build-mode witness sink. An empty leaf set verifies trivially.
//
// The level loop runs through height-2, mirroring the wire protocol: the
// root edge itself is not compared against Root. Use VerifyStrict to close
// that edge.
func (pt *PartialTree[F]) Verify(hasher Hasher[F]) error {
	return pt.verify(hasher, witness.Default(), false)
}

// VerifyStrict is Verify plus a final check that the recomputed top of the
// frontier equals Root.
func (pt *PartialTree[F]) VerifyStrict(hasher Hasher[F]) error {
	return pt.verify(hasher, witness.Default(), true)
}

// VerifyWithSink is Verify with an explicit witness sink.
func (pt *PartialTree[F]) VerifyWithSink(hasher Hasher[F], sink witness.Sink) error {
	return pt.verify(hasher, sink, false)
}

func (pt *PartialTree[F]) verify(hasher Hasher[F], sink witness.Sink, strict bool) error {
	if err := sink.Commit(pt.Root); err != nil {
		return err
	}
	leaves := pt.Leaves
	if leaves == nil {
		leaves = []uint64{}
	}
	if err := sink.Commit(leaves); err != nil {
		return err
	}

	if len(pt.Leaves) == 0 {
		return nil
	}
	height := len(pt.EmptyHashes)
	if height < 1 {
		return fmt.Errorf("empty hash ladder: %w", ErrHeightOverflow)
	}

	frontier := make(map[uint64]struct{}, len(pt.Leaves))
	for _, slot := range pt.Leaves {
		node := LeafSlotToNode(slot, height)
		p, ok := Parent(node)
		if !ok {
			return fmt.Errorf("leaf node %d: %w", node, ErrParentNotFound)
		}
		frontier[p] = struct{}{}
	}

	for level := 0; level < height-1; level++ {
		next := make(map[uint64]struct{}, len(frontier))
		emptyChild := pt.EmptyHashes[level]
		emptyParent := pt.EmptyHashes[level+1]
		// Each parent is checked once per level, ascending.
		for _, i := range sortedIndices(frontier) {
			left := pt.valueOr(LeftChild(i), emptyChild)
			right := pt.valueOr(RightChild(i), emptyChild)
			got := pt.valueOr(i, emptyParent)

			expected, err := hasher.Hash2(left, right)
			if err != nil {
				return fmt.Errorf("hash node %d at level %d: %w", i, level, err)
			}
			if expected != got {
				return fmt.Errorf("node %d at level %d: %w", i, level, ErrHashMismatch)
			}

			p, ok := Parent(i)
			if !ok {
				break
			}
			next[p] = struct{}{}
		}
		frontier = next
	}

	if strict {
		top := pt.EmptyHashes[height-1]
		left := pt.valueOr(LeftChild(0), top)
		right := pt.valueOr(RightChild(0), top)
		expected, err := hasher.Hash2(left, right)
		if err != nil {
			return fmt.Errorf("hash root: %w", err)
		}
		if expected != pt.Root {
			return fmt.Errorf("root: %w", ErrHashMismatch)
		}
	}

	return nil
}

func (pt *PartialTree[F]) valueOr(index uint64, fallback F) F {
	if v, ok := pt.Tree[index]; ok {
		return v
	}
	return fallback
}
