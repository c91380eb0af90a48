package election

import "github.com/ballotz/ballotz/internal/ledger"

// CandidateResult is one row of a tally.
type CandidateResult struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Votes       int    `json:"votes"`
}

// Tally walks the chain and counts CAST_VOTE transactions per
// candidate. Every registered candidate appears in the result, zero
// votes included, ordered by identifier. Double counting cannot occur
// on a chain built through CastVote, but duplicate transaction IDs are
// skipped anyway so a replayed chain tallies the same.
func (e *Election) Tally() []CandidateResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	counted := make(map[string]bool)
	votes := make(map[string]int)

	for _, block := range e.ledger.Blocks() {
		for _, tx := range block.Transactions {
			if tx.Type != ledger.TxCastVote {
				continue
			}
			if counted[tx.ID] {
				continue
			}
			counted[tx.ID] = true
			votes[tx.CandidateID]++
		}
	}

	candidates := e.registry.Candidates()
	results := make([]CandidateResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, CandidateResult{
			CandidateID: c.ID,
			Name:        c.Name,
			Votes:       votes[c.ID],
		})
	}

	return results
}
