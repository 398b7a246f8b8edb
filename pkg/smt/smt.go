// Package smt implements a fixed-height sparse Merkle tree over an opaque
// digest type F and a two-to-one hasher.
//
// A sparse Merkle tree represents 2^height leaf slots, almost all of which
// hold a canonical default value. Only non-default nodes and their ancestors
// are materialized in a node-index map; every missing node is imputed from a
// precomputed ladder of "empty hashes", where the empty hash at level l is
// the root of an all-default subtree of height l.
//
// The path from a leaf to the root is stored as a sequence of (left, right)
// sibling pairs, level 0 adjacent to the leaf. For example, in
//
//	      a
//	    /   \
//	   b     c
//	  / \   / \
//	 d   e f   g
//
// the path for leaf e is [(d,e), (b,c)].
//
// Beyond single-leaf paths, the tree can compress the proofs for a whole set
// of leaves into one PartialTree: the minimal sub-skeleton of materialized
// digests from which an independent verifier re-derives the root.
package smt

import (
	"fmt"
	"slices"
)

// MaxHeight bounds the tree height so that node indices fit in a uint64.
const MaxHeight = 63

// Hasher is a pure, deterministic two-to-one hash over F. Identical inputs
// must yield identical outputs across processes.
type Hasher[F any] interface {
	Hash2(left, right F) (F, error)
}

// GenEmptyHashes derives the ladder of empty hashes for a tree of the given
// height: out[0] is defaultLeaf and out[l] = H(out[l-1], out[l-1]). The
// ladder lets every unmaterialized node contribute its canonical value
// without being stored.
func GenEmptyHashes[F any](hasher Hasher[F], defaultLeaf F, height int) ([]F, error) {
	if height < 1 || height > MaxHeight {
		return nil, fmt.Errorf("height %d not in [1, %d]: %w", height, MaxHeight, ErrHeightOverflow)
	}

	empty := make([]F, height)
	empty[0] = defaultLeaf
	for l := 1; l < height; l++ {
		h, err := hasher.Hash2(empty[l-1], empty[l-1])
		if err != nil {
			return nil, fmt.Errorf("empty hash at level %d: %w", l, err)
		}
		empty[l] = h
	}
	return empty, nil
}

// SparseMerkleTree is the authoritative structure. Tree maps node indices to
// materialized digests; a missing entry means "equal to the empty hash at
// that level".
type SparseMerkleTree[F comparable] struct {
	// Tree maps heap-encoded node indices to digests.
	Tree map[uint64]F

	emptyHashes []F
	height      int
}

// New builds a tree of the given height from a map of leaf slots to digests.
func New[F comparable](leaves map[uint64]F, hasher Hasher[F], defaultLeaf F, height int) (*SparseMerkleTree[F], error) {
	empty, err := GenEmptyHashes(hasher, defaultLeaf, height)
	if err != nil {
		return nil, err
	}
	if uint64(len(leaves)) > uint64(1)<<height {
		return nil, fmt.Errorf("%d leaves under height %d: %w", len(leaves), height, ErrHeightOverflow)
	}

	t := &SparseMerkleTree[F]{
		Tree:        make(map[uint64]F, len(leaves)*height),
		emptyHashes: empty,
		height:      height,
	}
	if err := t.InsertBatch(leaves, hasher); err != nil {
		return nil, err
	}
	return t, nil
}

// NewSequential builds a tree whose slot i holds leaves[i].
func NewSequential[F comparable](leaves []F, hasher Hasher[F], defaultLeaf F, height int) (*SparseMerkleTree[F], error) {
	pairs := make(map[uint64]F, len(leaves))
	for i, leaf := range leaves {
		pairs[uint64(i)] = leaf
	}
	return New(pairs, hasher, defaultLeaf, height)
}

// Height returns the tree height.
func (t *SparseMerkleTree[F]) Height() int {
	return t.height
}

// Len returns the number of materialized nodes.
func (t *SparseMerkleTree[F]) Len() int {
	return len(t.Tree)
}

// EmptyHashes returns the empty-hash ladder. Callers must not modify it.
func (t *SparseMerkleTree[F]) EmptyHashes() []F {
	return t.emptyHashes
}

// Root returns the Merkle root: the materialized node 0, or the top of the
// empty-hash ladder for an untouched tree.
func (t *SparseMerkleTree[F]) Root() F {
	if r, ok := t.Tree[0]; ok {
		return r
	}
	return t.emptyHashes[t.height-1]
}

// InsertBatch writes the given leaves and recomputes all affected ancestors
// level by level. Within a level every dirty parent is visited exactly once,
// in ascending index order, regardless of how many of its descendants
// changed, so the root is deterministic for a given leaf map.
func (t *SparseMerkleTree[F]) InsertBatch(leaves map[uint64]F, hasher Hasher[F]) error {
	dirty := make(map[uint64]struct{}, len(leaves))
	for slot, leaf := range leaves {
		if slot >= uint64(1)<<t.height {
			return fmt.Errorf("leaf slot %d under height %d: %w", slot, t.height, ErrHeightOverflow)
		}
		node := LeafSlotToNode(slot, t.height)
		t.Tree[node] = leaf

		p, ok := Parent(node)
		if !ok {
			return fmt.Errorf("leaf node %d: %w", node, ErrParentNotFound)
		}
		dirty[p] = struct{}{}
	}

	for level := 0; level < t.height; level++ {
		next := make(map[uint64]struct{}, len(dirty))
		empty := t.emptyHashes[level]
		for _, i := range sortedIndices(dirty) {
			left := t.valueOr(LeftChild(i), empty)
			right := t.valueOr(RightChild(i), empty)

			sum, err := hasher.Hash2(left, right)
			if err != nil {
				return fmt.Errorf("hash node %d at level %d: %w", i, level, err)
			}
			t.Tree[i] = sum

			p, ok := Parent(i)
			if !ok {
				break
			}
			next[p] = struct{}{}
		}
		dirty = next
	}

	return nil
}

// MembershipPath gives the path leading from the leaf at slot up to the
// root: height (left, right) pairs in level order, missing nodes substituted
// from the empty-hash ladder. This is a "proof" in the sense of "valid path
// in a Merkle tree", not a ZK argument.
func (t *SparseMerkleTree[F]) MembershipPath(slot uint64) (Path[F], error) {
	if slot >= uint64(1)<<t.height {
		return Path[F]{}, fmt.Errorf("leaf slot %d under height %d: %w", slot, t.height, ErrHeightOverflow)
	}

	pairs := make([]Pair[F], 0, t.height)
	current := LeafSlotToNode(slot, t.height)
	for level := 0; !IsRoot(current); level++ {
		sib, ok := Sibling(current)
		if !ok {
			return Path[F]{}, fmt.Errorf("node %d: %w", current, ErrParentNotFound)
		}
		empty := t.emptyHashes[level]

		cur := t.valueOr(current, empty)
		sibling := t.valueOr(sib, empty)

		if IsLeftChild(current) {
			pairs = append(pairs, Pair[F]{Left: cur, Right: sibling})
		} else {
			pairs = append(pairs, Pair[F]{Left: sibling, Right: cur})
		}
		current, _ = Parent(current)
	}

	return Path[F]{Pairs: pairs}, nil
}

// MembershipProof bundles the path for a slot with the current root and the
// leaf value stored there (the default leaf for an empty slot).
func (t *SparseMerkleTree[F]) MembershipProof(slot uint64) (Proof[F], error) {
	path, err := t.MembershipPath(slot)
	if err != nil {
		return Proof[F]{}, err
	}
	return Proof[F]{
		Path: path,
		Root: t.Root(),
		Leaf: t.valueOr(LeafSlotToNode(slot, t.height), t.emptyHashes[0]),
	}, nil
}

// BatchProve compresses the membership proofs for a set of leaf slots into
// one PartialTree. Walking each leaf's ancestor chain, a node or its sibling
// is included only when its materialized value differs from the level's
// empty hash; everything omitted is reconstructible by the verifier from the
// ladder alone, which keeps the proof minimal.
func (t *SparseMerkleTree[F]) BatchProve(slots []uint64) (*PartialTree[F], error) {
	partial := &PartialTree[F]{
		Tree:        make(map[uint64]F),
		EmptyHashes: slices.Clone(t.emptyHashes),
		Leaves:      make([]uint64, 0, len(slots)),
		Root:        t.Root(),
	}

	for _, slot := range slots {
		if slot >= uint64(1)<<t.height {
			return nil, fmt.Errorf("leaf slot %d under height %d: %w", slot, t.height, ErrHeightOverflow)
		}
		partial.Leaves = append(partial.Leaves, slot)

		current := LeafSlotToNode(slot, t.height)
		for level := 0; !IsRoot(current); level++ {
			sib, _ := Sibling(current)
			empty := t.emptyHashes[level]

			if v, ok := t.Tree[current]; ok && v != empty {
				partial.Tree[current] = v
			}
			if v, ok := t.Tree[sib]; ok && v != empty {
				partial.Tree[sib] = v
			}
			current, _ = Parent(current)
		}
	}

	return partial, nil
}

func (t *SparseMerkleTree[F]) valueOr(index uint64, fallback F) F {
	if v, ok := t.Tree[index]; ok {
		return v
	}
	return fallback
}

// sortedIndices returns the set's indices in ascending order. Go maps are
// unordered, so every level pass sorts its frontier before visiting.
func sortedIndices(set map[uint64]struct{}) []uint64 {
	indices := make([]uint64, 0, len(set))
	for i := range set {
		indices = append(indices, i)
	}
	slices.Sort(indices)
	return indices
}
