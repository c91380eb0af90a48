package election

import "fmt"

// DuplicateIdentifierError rejects a registration whose identifier is
// already taken. Kind names the registry ("voter" or "candidate").
type DuplicateIdentifierError struct {
	Kind string
	ID   string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate %s identifier: %s", e.Kind, e.ID)
}

func IsDuplicateIdentifierError(err error) bool {
	_, ok := err.(*DuplicateIdentifierError)
	return ok
}

// UnknownReferenceError rejects a vote naming an identifier that was
// never registered.
type UnknownReferenceError struct {
	Kind string
	ID   string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Kind, e.ID)
}

func IsUnknownReferenceError(err error) bool {
	_, ok := err.(*UnknownReferenceError)
	return ok
}

// AlreadyVotedError rejects a second vote from the same voter.
type AlreadyVotedError struct {
	VoterID string
}

func (e *AlreadyVotedError) Error() string {
	return fmt.Sprintf("voter %s has already voted", e.VoterID)
}

func IsAlreadyVotedError(err error) bool {
	_, ok := err.(*AlreadyVotedError)
	return ok
}
