package hashes

import (
	"crypto/sha256"
	"hash"

	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
)

// HashWriter is used to incrementally hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
// The used hash function is SHA-256, so HashWriter.Write(slice).Finalize == sha256.Sum256(slice).
type HashWriter struct {
	inner hash.Hash
}

// NewHashWriter returns a new HashWriter
func NewHashWriter() *HashWriter {
	return &HashWriter{inner: sha256.New()}
}

// Write will always return (len(p), nil)
func (h *HashWriter) Write(p []byte) (n int, err error) {
	return h.inner.Write(p)
}

// Finalize returns the resulting hash
func (h *HashWriter) Finalize() externalapi.DomainHash {
	var sum externalapi.DomainHash
	copy(sum[:], h.inner.Sum(sum[:0]))
	return sum
}
