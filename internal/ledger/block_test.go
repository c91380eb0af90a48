package ledger

import (
	"testing"

	"github.com/ballotz/ballotz/internal/hash"
)

func newTestHasher(t *testing.T) *hash.Hasher {
	t.Helper()
	h, err := hash.New(hash.AlgorithmSHA256)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestNewBlock(t *testing.T) {
	hasher := newTestHasher(t)

	txs := []Transaction{NewCastVoteTx("v1", "c1")}
	block, err := NewBlock(hasher, 1, txs, GenesisPrevHash)
	if err != nil {
		t.Fatalf("NewBlock failed: %v", err)
	}

	if block.Index != 1 {
		t.Errorf("expected index 1, got %d", block.Index)
	}
	if block.Hash == "" {
		t.Error("block hash should be set at construction")
	}
	if block.TxRoot == "" {
		t.Error("tx root should be set at construction")
	}

	recomputed, err := block.ComputeHash(hasher)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	if recomputed != block.Hash {
		t.Error("stored hash should match recomputation for an untouched block")
	}
}

func TestComputeHashDeterministic(t *testing.T) {
	hasher := newTestHasher(t)

	block, err := NewBlock(hasher, 3, []Transaction{NewAddVoterTx("v1", "Alice")}, "prev")
	if err != nil {
		t.Fatal(err)
	}

	hash1, err := block.ComputeHash(hasher)
	if err != nil {
		t.Fatal(err)
	}
	hash2, err := block.ComputeHash(hasher)
	if err != nil {
		t.Fatal(err)
	}

	if hash1 != hash2 {
		t.Error("recomputing the same block twice should yield the same hash")
	}
}

func TestComputeHashDoesNotMutate(t *testing.T) {
	hasher := newTestHasher(t)

	block, err := NewBlock(hasher, 1, []Transaction{NewCastVoteTx("v1", "c1")}, GenesisPrevHash)
	if err != nil {
		t.Fatal(err)
	}

	stored := block.Hash
	block.Transactions[0].CandidateID = "c2"

	if _, err := block.ComputeHash(hasher); err != nil {
		t.Fatal(err)
	}

	if block.Hash != stored {
		t.Error("ComputeHash must not mutate the stored hash")
	}
}

func TestHashChangesWithAnyField(t *testing.T) {
	hasher := newTestHasher(t)

	tx1 := NewCastVoteTx("v1", "c1")
	tx2 := NewCastVoteTx("v2", "c2")

	base, err := NewBlock(hasher, 1, []Transaction{tx1, tx2}, GenesisPrevHash)
	if err != nil {
		t.Fatal(err)
	}
	baseHash, err := base.ComputeHash(hasher)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("index", func(t *testing.T) {
		other := *base
		other.Index = 2
		h, _ := other.ComputeHash(hasher)
		if h == baseHash {
			t.Error("changing the index should change the hash")
		}
	})

	t.Run("timestamp", func(t *testing.T) {
		other := *base
		other.Timestamp = base.Timestamp + 1
		h, _ := other.ComputeHash(hasher)
		if h == baseHash {
			t.Error("changing the timestamp should change the hash")
		}
	})

	t.Run("previous hash", func(t *testing.T) {
		other := *base
		other.PrevHash = "different"
		h, _ := other.ComputeHash(hasher)
		if h == baseHash {
			t.Error("changing the previous hash should change the hash")
		}
	})

	t.Run("transaction content", func(t *testing.T) {
		other := *base
		other.Transactions = []Transaction{tx1, tx2}
		other.Transactions[1].CandidateID = "c3"
		h, _ := other.ComputeHash(hasher)
		if h == baseHash {
			t.Error("changing a transaction should change the hash")
		}
	})

	t.Run("transaction order", func(t *testing.T) {
		other := *base
		other.Transactions = []Transaction{tx2, tx1}
		h, _ := other.ComputeHash(hasher)
		if h == baseHash {
			t.Error("reordering transactions should change the hash")
		}
	})
}
