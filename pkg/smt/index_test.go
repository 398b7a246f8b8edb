package smt_test

import (
	"testing"

	"github.com/ple1n/sparsetree/pkg/smt"
)

func TestNodeArithmetic(t *testing.T) {
	if !smt.IsRoot(0) {
		t.Fatal("0 must be the root")
	}
	if smt.IsRoot(1) {
		t.Fatal("1 is not the root")
	}

	if _, ok := smt.Parent(0); ok {
		t.Fatal("root must have no parent")
	}
	if _, ok := smt.Sibling(0); ok {
		t.Fatal("root must have no sibling")
	}

	for _, i := range []uint64{0, 1, 2, 3, 7, 100, 1 << 40} {
		left := smt.LeftChild(i)
		right := smt.RightChild(i)

		if left != 2*i+1 || right != 2*i+2 {
			t.Fatalf("children of %d: got (%d, %d)", i, left, right)
		}
		if !smt.IsLeftChild(left) {
			t.Fatalf("%d must be a left child", left)
		}
		if smt.IsLeftChild(right) {
			t.Fatalf("%d must be a right child", right)
		}

		for _, c := range []uint64{left, right} {
			p, ok := smt.Parent(c)
			if !ok || p != i {
				t.Fatalf("parent of %d: got (%d, %v), want %d", c, p, ok, i)
			}
		}

		sib, ok := smt.Sibling(left)
		if !ok || sib != right {
			t.Fatalf("sibling of %d: got (%d, %v), want %d", left, sib, ok, right)
		}
		sib, ok = smt.Sibling(right)
		if !ok || sib != left {
			t.Fatalf("sibling of %d: got (%d, %v), want %d", right, sib, ok, left)
		}
	}
}

func TestLeafSlotToNode(t *testing.T) {
	cases := []struct {
		slot   uint64
		height int
		want   uint64
	}{
		{0, 1, 1},
		{1, 1, 2},
		{0, 4, 15},
		{3, 4, 18},
		{5, 32, (1 << 32) - 1 + 5},
	}
	for _, c := range cases {
		if got := smt.LeafSlotToNode(c.slot, c.height); got != c.want {
			t.Fatalf("LeafSlotToNode(%d, %d) = %d, want %d", c.slot, c.height, got, c.want)
		}
	}
}
