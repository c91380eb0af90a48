package election

import "sort"

type Voter struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HasVoted bool   `json:"has_voted"`
}

type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Registry holds the registered voters and candidates, keyed by
// identifier so uniqueness checks are a single map lookup. Entries are
// never removed.
type Registry struct {
	voters     map[string]*Voter
	candidates map[string]*Candidate
}

func NewRegistry() *Registry {
	return &Registry{
		voters:     make(map[string]*Voter),
		candidates: make(map[string]*Candidate),
	}
}

func (r *Registry) AddVoter(id, name string) (*Voter, error) {
	if _, exists := r.voters[id]; exists {
		return nil, &DuplicateIdentifierError{Kind: "voter", ID: id}
	}

	voter := &Voter{ID: id, Name: name}
	r.voters[id] = voter
	return voter, nil
}

func (r *Registry) AddCandidate(id, name string) (*Candidate, error) {
	if _, exists := r.candidates[id]; exists {
		return nil, &DuplicateIdentifierError{Kind: "candidate", ID: id}
	}

	candidate := &Candidate{ID: id, Name: name}
	r.candidates[id] = candidate
	return candidate, nil
}

func (r *Registry) Voter(id string) (*Voter, error) {
	voter, ok := r.voters[id]
	if !ok {
		return nil, &UnknownReferenceError{Kind: "voter", ID: id}
	}
	return voter, nil
}

func (r *Registry) Candidate(id string) (*Candidate, error) {
	candidate, ok := r.candidates[id]
	if !ok {
		return nil, &UnknownReferenceError{Kind: "candidate", ID: id}
	}
	return candidate, nil
}

// Voters returns all registered voters ordered by identifier.
func (r *Registry) Voters() []*Voter {
	voters := make([]*Voter, 0, len(r.voters))
	for _, v := range r.voters {
		voters = append(voters, v)
	}
	sort.Slice(voters, func(i, j int) bool { return voters[i].ID < voters[j].ID })
	return voters
}

// Candidates returns all registered candidates ordered by identifier.
func (r *Registry) Candidates() []*Candidate {
	candidates := make([]*Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates
}
