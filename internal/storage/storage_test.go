package storage

import (
	"os"
	"testing"

	"github.com/ballotz/ballotz/internal/hash"
	"github.com/ballotz/ballotz/internal/ledger"
)

func TestStorage(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "ballotz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()
	defer os.Remove(tmpfile.Name())

	store, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer store.Close()

	hasher, err := hash.New(hash.AlgorithmSHA256)
	if err != nil {
		t.Fatal(err)
	}
	chain, err := ledger.New(hasher)
	if err != nil {
		t.Fatal(err)
	}
	chain.Append([]ledger.Transaction{ledger.NewAddVoterTx("v1", "Alice")})
	chain.Append([]ledger.Transaction{ledger.NewCastVoteTx("v1", "c1")})

	t.Run("SaveAndGetBlock", func(t *testing.T) {
		for _, block := range chain.Blocks() {
			if err := store.SaveBlock(block); err != nil {
				t.Fatalf("SaveBlock failed: %v", err)
			}
		}

		retrieved, err := store.GetBlock(1)
		if err != nil {
			t.Fatalf("GetBlock failed: %v", err)
		}

		original, _ := chain.Block(1)
		if retrieved.Hash != original.Hash {
			t.Errorf("Expected hash %s, got %s", original.Hash, retrieved.Hash)
		}
		if len(retrieved.Transactions) != 1 {
			t.Errorf("Expected 1 transaction, got %d", len(retrieved.Transactions))
		}
	})

	t.Run("LatestBlock", func(t *testing.T) {
		latest, err := store.LatestBlock()
		if err != nil {
			t.Fatalf("LatestBlock failed: %v", err)
		}

		if latest.Index != 2 {
			t.Errorf("Expected index 2, got %d", latest.Index)
		}
	})

	t.Run("LoadChain", func(t *testing.T) {
		blocks, err := store.LoadChain()
		if err != nil {
			t.Fatalf("LoadChain failed: %v", err)
		}

		if len(blocks) != chain.Len() {
			t.Fatalf("Expected %d blocks, got %d", chain.Len(), len(blocks))
		}
		for i, block := range blocks {
			if block.Index != uint64(i) {
				t.Errorf("Expected block index %d at position %d", i, block.Index)
			}
		}

		loaded, err := ledger.Load(hasher, blocks)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if err := loaded.Validate(); err != nil {
			t.Errorf("round-tripped chain should validate: %v", err)
		}
	})

	t.Run("SetAndGetMetadata", func(t *testing.T) {
		if err := store.SetMetadata("hash_algorithm", hash.AlgorithmSHA256); err != nil {
			t.Fatalf("SetMetadata failed: %v", err)
		}

		retrieved, err := store.GetMetadata("hash_algorithm")
		if err != nil {
			t.Fatalf("GetMetadata failed: %v", err)
		}

		if retrieved != hash.AlgorithmSHA256 {
			t.Errorf("Expected value %s, got %s", hash.AlgorithmSHA256, retrieved)
		}
	})

	t.Run("MissingBlock", func(t *testing.T) {
		if _, err := store.GetBlock(99); err == nil {
			t.Error("expected error for missing block")
		}
	})
}

func TestEmptyStorage(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "ballotz-empty-*.db")
	if err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()
	defer os.Remove(tmpfile.Name())

	store, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer store.Close()

	if _, err := store.LatestBlock(); err == nil {
		t.Error("expected error on empty storage")
	}

	blocks, err := store.LoadChain()
	if err != nil {
		t.Fatalf("LoadChain failed: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
}
