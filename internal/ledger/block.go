package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/ballotz/ballotz/internal/hash"
)

// GenesisPrevHash is the previous-hash sentinel carried by block 0.
var GenesisPrevHash = strings.Repeat("0", 64)

// Block is one sealed batch of transactions. Once appended to a ledger
// its fields are never mutated; ComputeHash recomputes from scratch so
// validation can compare against the stored Hash.
type Block struct {
	Index        uint64        `json:"index"`
	Timestamp    int64         `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
	TxRoot       string        `json:"tx_root"`
	PrevHash     string        `json:"prev_hash"`
	Hash         string        `json:"hash"`
}

// NewBlock seals the given transactions into a block linked to
// prevHash. The self hash is computed once here and stored.
func NewBlock(hasher *hash.Hasher, index uint64, transactions []Transaction, prevHash string) (*Block, error) {
	b := &Block{
		Index:        index,
		Timestamp:    time.Now().Unix(),
		Transactions: transactions,
		PrevHash:     prevHash,
	}

	txRoot, err := b.ComputeTxRoot(hasher)
	if err != nil {
		return nil, err
	}
	b.TxRoot = txRoot

	selfHash, err := b.ComputeHash(hasher)
	if err != nil {
		return nil, err
	}
	b.Hash = selfHash

	return b, nil
}

// ComputeTxRoot returns the order-preserving Merkle root over the
// block's transactions, empty string for an empty block.
func (b *Block) ComputeTxRoot(hasher *hash.Hasher) (string, error) {
	tree := hash.NewMerkleTree(hasher)
	for i := range b.Transactions {
		if err := tree.AddLeaf(b.Transactions[i]); err != nil {
			return "", fmt.Errorf("failed to hash transaction %d: %w", i, err)
		}
	}
	return tree.Root(), nil
}

// ComputeHash recomputes the block's self hash from its current
// fields, including a fresh transaction root so an edited transaction
// list is always reflected. It never mutates the stored Hash.
func (b *Block) ComputeHash(hasher *hash.Hasher) (string, error) {
	txRoot, err := b.ComputeTxRoot(hasher)
	if err != nil {
		return "", err
	}

	header := fmt.Sprintf("%d:%d:%s:%s", b.Index, b.Timestamp, txRoot, b.PrevHash)
	return hasher.CalculateString(header), nil
}
