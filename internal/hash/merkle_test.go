package hash

import "testing"

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := New(AlgorithmSHA256)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestMerkleTree(t *testing.T) {
	hasher := newTestHasher(t)
	mt := NewMerkleTree(hasher)

	if mt.LeafCount() != 0 {
		t.Error("New tree should have 0 leaves")
	}

	data1 := map[string]interface{}{"id": 1, "value": "a"}
	data2 := map[string]interface{}{"id": 2, "value": "b"}
	data3 := map[string]interface{}{"id": 3, "value": "c"}

	for _, d := range []interface{}{data1, data2, data3} {
		if err := mt.AddLeaf(d); err != nil {
			t.Fatalf("Failed to add leaf: %v", err)
		}
	}

	if mt.LeafCount() != 3 {
		t.Errorf("Expected 3 leaves, got %d", mt.LeafCount())
	}

	root1 := mt.Root()
	if root1 == "" {
		t.Error("Root should not be empty")
	}

	mt2 := NewMerkleTree(hasher)
	mt2.AddLeaf(data1)
	mt2.AddLeaf(data2)
	mt2.AddLeaf(data3)

	if mt2.Root() != root1 {
		t.Error("Same leaves in same order should produce same root")
	}
}

func TestMerkleTreeOrderMatters(t *testing.T) {
	hasher := newTestHasher(t)

	mt1 := NewMerkleTree(hasher)
	mt1.AddLeafHash("aaaa")
	mt1.AddLeafHash("bbbb")

	mt2 := NewMerkleTree(hasher)
	mt2.AddLeafHash("bbbb")
	mt2.AddLeafHash("aaaa")

	if mt1.Root() == mt2.Root() {
		t.Error("Reordered leaves should produce a different root")
	}
}

func TestMerkleTreeSingleLeaf(t *testing.T) {
	mt := NewMerkleTree(newTestHasher(t))
	mt.AddLeafHash("single")

	if mt.Root() != "single" {
		t.Error("Single leaf should be its own root")
	}
}

func TestMerkleTreeOddLeafCount(t *testing.T) {
	hasher := newTestHasher(t)

	mt := NewMerkleTree(hasher)
	mt.AddLeafHash("a")
	mt.AddLeafHash("b")
	mt.AddLeafHash("c")

	if mt.Root() == "" {
		t.Error("Root should not be empty for odd leaf count")
	}
}

func TestMerkleTreeEmpty(t *testing.T) {
	mt := NewMerkleTree(newTestHasher(t))

	if mt.Root() != "" {
		t.Error("Root should be empty for empty tree")
	}
}

func TestMerkleTreeReset(t *testing.T) {
	mt := NewMerkleTree(newTestHasher(t))

	mt.AddLeafHash("data1")
	mt.AddLeafHash("data2")

	if mt.LeafCount() != 2 {
		t.Error("Expected 2 leaves before reset")
	}

	mt.Reset()

	if mt.LeafCount() != 0 {
		t.Error("Expected 0 leaves after reset")
	}

	if mt.Root() != "" {
		t.Error("Root should be empty after reset")
	}
}
