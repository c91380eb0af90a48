package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

const (
	AlgorithmSHA256     = "sha256"
	AlgorithmBlake2b256 = "blake2b_256"
)

// Hasher produces hex-encoded digests with a fixed algorithm so every
// block in a chain is hashed the same way.
type Hasher struct {
	algorithm string
}

func New(algorithm string) (*Hasher, error) {
	switch algorithm {
	case AlgorithmSHA256, AlgorithmBlake2b256:
		return &Hasher{algorithm: algorithm}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s (valid options: %s, %s)",
			algorithm, AlgorithmSHA256, AlgorithmBlake2b256)
	}
}

func (h *Hasher) Algorithm() string {
	return h.algorithm
}

func (h *Hasher) Sum(data []byte) string {
	switch h.algorithm {
	case AlgorithmBlake2b256:
		digest := blake2b.Sum256(data)
		return hex.EncodeToString(digest[:])
	default:
		digest := sha256.Sum256(data)
		return hex.EncodeToString(digest[:])
	}
}

// Calculate hashes the canonical JSON encoding of data. Struct fields
// marshal in declaration order, so identical values always yield
// identical digests.
func (h *Hasher) Calculate(data interface{}) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}

	return h.Sum(jsonData), nil
}

func (h *Hasher) CalculateString(data string) string {
	return h.Sum([]byte(data))
}
