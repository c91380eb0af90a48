package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ballotz/ballotz/internal/ledger"
)

// Demo tool: rewrites one transaction inside a stored block without
// recomputing the block hash, so `ballotz verify` can be shown
// catching the edit.
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <boltdb-path> <block-index>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Corrupts the first transaction of the given block in place\n")
		os.Exit(1)
	}

	dbPath := os.Args[1]
	index, err := strconv.ParseUint(os.Args[2], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid block index: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Opening BoltDB: %s\n", dbPath)
	fmt.Printf("Target block: %d\n", index)

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open BoltDB: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	bucketName := []byte("blocks")

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, index)

	var block ledger.Block

	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", bucketName)
		}

		data := bucket.Get(key)
		if data == nil {
			return fmt.Errorf("block %d not found", index)
		}

		if err := json.Unmarshal(data, &block); err != nil {
			return fmt.Errorf("failed to unmarshal block: %w", err)
		}

		return nil
	})

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(block.Transactions) == 0 {
		fmt.Fprintf(os.Stderr, "Block %d has no transactions to corrupt\n", index)
		os.Exit(1)
	}

	target := &block.Transactions[0]
	fmt.Printf("Found transaction %s (%s)\n", target.ID, target.Type)

	switch target.Type {
	case ledger.TxCastVote:
		fmt.Printf("  Original candidate: %s\n", target.CandidateID)
		target.CandidateID = target.CandidateID + "-tampered"
		fmt.Printf("  Rewritten candidate: %s\n", target.CandidateID)
	default:
		fmt.Printf("  Original name: %s\n", target.Name)
		target.Name = target.Name + "-tampered"
		fmt.Printf("  Rewritten name: %s\n", target.Name)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", bucketName)
		}

		corrupted, err := json.Marshal(&block)
		if err != nil {
			return fmt.Errorf("failed to marshal corrupted block: %w", err)
		}

		if err := bucket.Put(key, corrupted); err != nil {
			return fmt.Errorf("failed to save corrupted block: %w", err)
		}

		fmt.Println("✓ Successfully corrupted block (stored hash left untouched)")
		return nil
	})

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Ledger tampering completed")
}
