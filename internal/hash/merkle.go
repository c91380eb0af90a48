package hash

// MerkleTree builds an order-preserving Merkle root over a sequence of
// leaf hashes. Leaves are NOT sorted: the position of a transaction
// inside a block is part of what the root commits to, so reordering
// two leaves changes the root.
type MerkleTree struct {
	hasher *Hasher
	leaves []string
}

func NewMerkleTree(hasher *Hasher) *MerkleTree {
	return &MerkleTree{
		hasher: hasher,
		leaves: make([]string, 0),
	}
}

func (mt *MerkleTree) AddLeaf(data interface{}) error {
	leafHash, err := mt.hasher.Calculate(data)
	if err != nil {
		return err
	}
	mt.leaves = append(mt.leaves, leafHash)
	return nil
}

func (mt *MerkleTree) AddLeafHash(hash string) {
	mt.leaves = append(mt.leaves, hash)
}

func (mt *MerkleTree) Root() string {
	if len(mt.leaves) == 0 {
		return ""
	}

	return mt.calculateRoot(mt.leaves)
}

func (mt *MerkleTree) calculateRoot(hashes []string) string {
	if len(hashes) == 1 {
		return hashes[0]
	}

	var nextLevel []string

	for i := 0; i < len(hashes); i += 2 {
		var combined string
		if i+1 < len(hashes) {
			combined = hashes[i] + hashes[i+1]
		} else {
			// Odd leaf is paired with itself.
			combined = hashes[i] + hashes[i]
		}
		nextLevel = append(nextLevel, mt.hasher.CalculateString(combined))
	}

	return mt.calculateRoot(nextLevel)
}

func (mt *MerkleTree) Reset() {
	mt.leaves = make([]string, 0)
}

func (mt *MerkleTree) LeafCount() int {
	return len(mt.leaves)
}
