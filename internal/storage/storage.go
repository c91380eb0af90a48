package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ballotz/ballotz/internal/ledger"
)

var (
	BlocksBucket   = []byte("blocks")
	MetadataBucket = []byte("metadata")
)

// Storage persists the chain between CLI invocations. Blocks are keyed
// by their big-endian index so a cursor walks them in chain order.
type Storage struct {
	db *bolt.DB
}

func New(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{BlocksBucket, MetadataBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func blockKey(index uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, index)
	return key
}

func (s *Storage) SaveBlock(block *ledger.Block) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(BlocksBucket)

		data, err := json.Marshal(block)
		if err != nil {
			return fmt.Errorf("failed to marshal block: %w", err)
		}

		return bucket.Put(blockKey(block.Index), data)
	})
}

func (s *Storage) GetBlock(index uint64) (*ledger.Block, error) {
	var block ledger.Block

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(BlocksBucket)

		data := bucket.Get(blockKey(index))
		if data == nil {
			return fmt.Errorf("block %d not found", index)
		}

		return json.Unmarshal(data, &block)
	})

	if err != nil {
		return nil, err
	}

	return &block, nil
}

func (s *Storage) LatestBlock() (*ledger.Block, error) {
	var latest *ledger.Block

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(BlocksBucket)

		_, data := bucket.Cursor().Last()
		if data == nil {
			return nil
		}

		var block ledger.Block
		if err := json.Unmarshal(data, &block); err != nil {
			return fmt.Errorf("failed to unmarshal block: %w", err)
		}
		latest = &block

		return nil
	})

	if err != nil {
		return nil, err
	}

	if latest == nil {
		return nil, fmt.Errorf("no blocks stored")
	}

	return latest, nil
}

// LoadChain reads every stored block in index order.
func (s *Storage) LoadChain() ([]*ledger.Block, error) {
	var blocks []*ledger.Block

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(BlocksBucket)
		cursor := bucket.Cursor()

		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var block ledger.Block
			if err := json.Unmarshal(v, &block); err != nil {
				return fmt.Errorf("failed to unmarshal block: %w", err)
			}
			blocks = append(blocks, &block)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return blocks, nil
}

func (s *Storage) SetMetadata(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(MetadataBucket)
		return bucket.Put([]byte(key), []byte(value))
	})
}

func (s *Storage) GetMetadata(key string) (string, error) {
	var value string

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(MetadataBucket)
		data := bucket.Get([]byte(key))
		if data == nil {
			return fmt.Errorf("metadata key not found: %s", key)
		}
		value = string(data)
		return nil
	})

	return value, err
}
