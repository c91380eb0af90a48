package ledger

import (
	"fmt"
	"sync"

	"github.com/ballotz/ballotz/internal/hash"
)

// Ledger is the append-only chain of blocks, starting from a fixed
// genesis block. Appends are serialized behind a mutex: the next index
// and the tail hash must be read and extended atomically.
type Ledger struct {
	mu         sync.RWMutex
	hasher     *hash.Hasher
	blocks     []*Block
	allowEmpty bool
}

type Option func(*Ledger)

// WithAllowEmptyBlocks permits appending blocks with no transactions.
// By default an empty append is rejected.
func WithAllowEmptyBlocks() Option {
	return func(l *Ledger) {
		l.allowEmpty = true
	}
}

// New constructs a ledger holding only the genesis block: index 0, no
// transactions, previous hash set to the all-zero sentinel.
func New(hasher *hash.Hasher, opts ...Option) (*Ledger, error) {
	l := &Ledger{hasher: hasher}
	for _, opt := range opts {
		opt(l)
	}

	genesis, err := NewBlock(hasher, 0, nil, GenesisPrevHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create genesis block: %w", err)
	}
	l.blocks = []*Block{genesis}

	return l, nil
}

// Load reconstructs a ledger around blocks read back from storage. The
// chain is taken as-is; call Validate to find out whether it is still
// consistent.
func Load(hasher *hash.Hasher, blocks []*Block, opts ...Option) (*Ledger, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("cannot load an empty chain: genesis block is missing")
	}

	l := &Ledger{hasher: hasher}
	for _, opt := range opts {
		opt(l)
	}
	l.blocks = make([]*Block, len(blocks))
	copy(l.blocks, blocks)

	return l, nil
}

// Append seals the given transactions into a new block at the tail of
// the chain and returns it.
func (l *Ledger) Append(transactions []Transaction) (*Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(transactions) == 0 && !l.allowEmpty {
		return nil, &InvalidAppendError{Reason: "block must contain at least one transaction"}
	}

	tail := l.blocks[len(l.blocks)-1]

	block, err := NewBlock(l.hasher, uint64(len(l.blocks)), transactions, tail.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed to seal block: %w", err)
	}

	l.blocks = append(l.blocks, block)
	return block, nil
}

// Validate walks the chain in index order and recomputes every hash.
// For each block it checks that the stored self hash matches a fresh
// recomputation and, past genesis, that the stored previous hash
// matches the recomputed hash of the predecessor. Returns nil when the
// whole chain is consistent, otherwise a *TamperError carrying the
// first failing index. Read-only: nothing is corrected.
func (l *Ledger) Validate() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	genesis := l.blocks[0]
	if genesis.PrevHash != GenesisPrevHash {
		return &TamperError{Index: 0, Reason: "genesis previous hash is not the sentinel"}
	}

	for i, block := range l.blocks {
		recomputed, err := block.ComputeHash(l.hasher)
		if err != nil {
			return fmt.Errorf("failed to recompute hash of block %d: %w", i, err)
		}

		if recomputed != block.Hash {
			return &TamperError{
				Index:  block.Index,
				Reason: fmt.Sprintf("stored hash %s does not match recomputed %s", block.Hash, recomputed),
			}
		}

		if i == 0 {
			continue
		}

		prev := l.blocks[i-1]

		if block.Index != prev.Index+1 {
			return &TamperError{
				Index:  block.Index,
				Reason: fmt.Sprintf("index %d does not follow %d", block.Index, prev.Index),
			}
		}

		prevRecomputed, err := prev.ComputeHash(l.hasher)
		if err != nil {
			return fmt.Errorf("failed to recompute hash of block %d: %w", i-1, err)
		}

		if block.PrevHash != prevRecomputed {
			return &TamperError{
				Index:  block.Index,
				Reason: fmt.Sprintf("previous hash %s does not match block %d", block.PrevHash, prev.Index),
			}
		}
	}

	return nil
}

func (l *Ledger) Genesis() *Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.blocks[0]
}

func (l *Ledger) Latest() *Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.blocks[len(l.blocks)-1]
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.blocks)
}

// Block returns the block at the given index.
func (l *Ledger) Block(index uint64) (*Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index >= uint64(len(l.blocks)) {
		return nil, fmt.Errorf("block index %d out of range (chain length %d)", index, len(l.blocks))
	}
	return l.blocks[index], nil
}

// Blocks returns the chain in index order. The slice is a copy; the
// blocks themselves are shared and must be treated as immutable.
func (l *Ledger) Blocks() []*Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	blocks := make([]*Block, len(l.blocks))
	copy(blocks, l.blocks)
	return blocks
}
