package smt_test

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/ple1n/sparsetree/pkg/hasher"
	"github.com/ple1n/sparsetree/pkg/smt"
)

func TestCalculateRootRejectsForeignLeaf(t *testing.T) {
	h := hasher.Sha256{}
	tree := tenLeafTree(t)

	path, err := tree.MembershipPath(5)
	if err != nil {
		t.Fatalf("path: %v", err)
	}

	_, err = path.CalculateRoot(slotLeaf(0x99), h)
	if !errors.Is(err, smt.ErrInvalidLeaf) {
		t.Fatalf("foreign leaf: got %v, want ErrInvalidLeaf", err)
	}
}

func TestCalculateRootRejectsBrokenPath(t *testing.T) {
	h := hasher.Sha256{}
	tree := tenLeafTree(t)

	path, err := tree.MembershipPath(5)
	if err != nil {
		t.Fatalf("path: %v", err)
	}

	// Corrupt a middle pair so the running hash matches neither side there.
	path.Pairs[10].Left[0] ^= 0x01
	path.Pairs[10].Right[0] ^= 0x01

	_, err = path.CalculateRoot(slotLeaf(5), h)
	if !errors.Is(err, smt.ErrInvalidPathNodes) {
		t.Fatalf("broken path: got %v, want ErrInvalidPathNodes", err)
	}
}

func TestCalculateRootEmptyPath(t *testing.T) {
	var path smt.Path[hasher.Bytes32]
	_, err := path.CalculateRoot(hasher.Bytes32{}, hasher.Sha256{})
	if !errors.Is(err, smt.ErrInvalidPathNodes) {
		t.Fatalf("empty path: got %v, want ErrInvalidPathNodes", err)
	}
}

func TestCheckMembershipWrongRoot(t *testing.T) {
	h := hasher.Sha256{}
	tree := tenLeafTree(t)

	path, err := tree.MembershipPath(5)
	if err != nil {
		t.Fatalf("path: %v", err)
	}

	wrong := tree.Root()
	wrong[31] ^= 0x01

	ok, err := path.CheckMembership(wrong, slotLeaf(5), h)
	if err != nil {
		t.Fatalf("check membership: %v", err)
	}
	if ok {
		t.Fatal("path verified against a tampered root")
	}
}

// TestPathFieldElements runs the membership round trip over the two
// algebraic hashers.
func TestPathFieldElements(t *testing.T) {
	hashers := []struct {
		name string
		h    smt.Hasher[fr.Element]
	}{
		{"Poseidon2", hasher.Poseidon2{}},
		{"Poseidon", hasher.Poseidon{}},
	}

	for _, hh := range hashers {
		t.Run(hh.name, func(t *testing.T) {
			var leaf, defaultLeaf fr.Element
			leaf.SetUint64(42)

			tree, err := smt.New(map[uint64]fr.Element{6: leaf}, hh.h, defaultLeaf, 10)
			if err != nil {
				t.Fatalf("build tree: %v", err)
			}

			proof, err := tree.MembershipProof(6)
			if err != nil {
				t.Fatalf("proof: %v", err)
			}
			ok, err := proof.Verify(hh.h)
			if err != nil {
				t.Fatalf("verify: %v", err)
			}
			if !ok {
				t.Fatal("field-element proof does not verify")
			}
		})
	}
}
