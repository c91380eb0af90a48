package ledger

import (
	"time"

	"github.com/google/uuid"
)

type TxType string

const (
	TxAddVoter     TxType = "ADD_VOTER"
	TxAddCandidate TxType = "ADD_CANDIDATE"
	TxCastVote     TxType = "CAST_VOTE"
)

// Transaction is one record sealed into a block. Field order is fixed:
// the canonical JSON encoding used for hashing follows declaration
// order, so it must not change once chains exist.
type Transaction struct {
	ID          string `json:"id"`
	Type        TxType `json:"type"`
	VoterID     string `json:"voter_id,omitempty"`
	CandidateID string `json:"candidate_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

func NewAddVoterTx(voterID, name string) Transaction {
	return Transaction{
		ID:        uuid.NewString(),
		Type:      TxAddVoter,
		VoterID:   voterID,
		Name:      name,
		Timestamp: time.Now().Unix(),
	}
}

func NewAddCandidateTx(candidateID, name string) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Type:        TxAddCandidate,
		CandidateID: candidateID,
		Name:        name,
		Timestamp:   time.Now().Unix(),
	}
}

func NewCastVoteTx(voterID, candidateID string) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Type:        TxCastVote,
		VoterID:     voterID,
		CandidateID: candidateID,
		Timestamp:   time.Now().Unix(),
	}
}
