package election

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ballotz/ballotz/internal/ledger"
)

// Election ties the voter and candidate registries to the ledger.
// Every registration and every cast vote is sealed into its own block.
// The registries and the ledger tail are guarded by one mutex so a
// cast vote is atomic: the has-voted flag only flips after the block
// holding the vote is appended.
type Election struct {
	mu       sync.Mutex
	registry *Registry
	ledger   *ledger.Ledger
}

func New(l *ledger.Ledger) *Election {
	return &Election{
		registry: NewRegistry(),
		ledger:   l,
	}
}

// Rebuild reconstructs the registries by replaying every transaction
// in the given chain, in order. Used after loading blocks back from
// storage.
func Rebuild(l *ledger.Ledger) (*Election, error) {
	e := New(l)

	for _, block := range l.Blocks() {
		for _, tx := range block.Transactions {
			if err := e.apply(tx); err != nil {
				return nil, fmt.Errorf("failed to replay block %d: %w", block.Index, err)
			}
		}
	}

	return e, nil
}

func (e *Election) apply(tx ledger.Transaction) error {
	switch tx.Type {
	case ledger.TxAddVoter:
		_, err := e.registry.AddVoter(tx.VoterID, tx.Name)
		return err
	case ledger.TxAddCandidate:
		_, err := e.registry.AddCandidate(tx.CandidateID, tx.Name)
		return err
	case ledger.TxCastVote:
		voter, err := e.registry.Voter(tx.VoterID)
		if err != nil {
			return err
		}
		if _, err := e.registry.Candidate(tx.CandidateID); err != nil {
			return err
		}
		if voter.HasVoted {
			return &AlreadyVotedError{VoterID: tx.VoterID}
		}
		voter.HasVoted = true
		return nil
	default:
		return fmt.Errorf("unknown transaction type: %s", tx.Type)
	}
}

// RegisterVoter adds a voter to the registry and seals the
// registration into a new block.
func (e *Election) RegisterVoter(id, name string) (*ledger.Block, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return nil, fmt.Errorf("voter id and name must not be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.registry.Voter(id); err == nil {
		return nil, &DuplicateIdentifierError{Kind: "voter", ID: id}
	}

	block, err := e.ledger.Append([]ledger.Transaction{ledger.NewAddVoterTx(id, name)})
	if err != nil {
		return nil, err
	}

	if _, err := e.registry.AddVoter(id, name); err != nil {
		return nil, err
	}

	return block, nil
}

// RegisterCandidate adds a candidate to the registry and seals the
// registration into a new block.
func (e *Election) RegisterCandidate(id, name string) (*ledger.Block, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return nil, fmt.Errorf("candidate id and name must not be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.registry.Candidate(id); err == nil {
		return nil, &DuplicateIdentifierError{Kind: "candidate", ID: id}
	}

	block, err := e.ledger.Append([]ledger.Transaction{ledger.NewAddCandidateTx(id, name)})
	if err != nil {
		return nil, err
	}

	if _, err := e.registry.AddCandidate(id, name); err != nil {
		return nil, err
	}

	return block, nil
}

// CastVote verifies both references and the voter's has-voted flag,
// seals the vote into a new block and only then marks the voter as
// having voted. A failed append leaves the voter free to vote again.
func (e *Election) CastVote(voterID, candidateID string) (*ledger.Block, error) {
	voterID = strings.TrimSpace(voterID)
	candidateID = strings.TrimSpace(candidateID)

	e.mu.Lock()
	defer e.mu.Unlock()

	voter, err := e.registry.Voter(voterID)
	if err != nil {
		return nil, err
	}
	if _, err := e.registry.Candidate(candidateID); err != nil {
		return nil, err
	}
	if voter.HasVoted {
		return nil, &AlreadyVotedError{VoterID: voterID}
	}

	block, err := e.ledger.Append([]ledger.Transaction{ledger.NewCastVoteTx(voterID, candidateID)})
	if err != nil {
		return nil, err
	}

	voter.HasVoted = true
	return block, nil
}

func (e *Election) Ledger() *ledger.Ledger {
	return e.ledger
}

func (e *Election) Voters() []*Voter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Voters()
}

func (e *Election) Candidates() []*Candidate {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Candidates()
}
