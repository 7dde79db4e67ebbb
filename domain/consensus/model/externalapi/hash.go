package externalapi

import (
	"bytes"
	"encoding/hex"

	"github.com/pkg/errors"
)

// DomainHashSize of array used to store hashes.
const DomainHashSize = 32

// DomainHash is a SHA-256 digest identifying a block or a commitment.
// It is a value type so that it may be used directly as a map key.
type DomainHash [DomainHashSize]byte

// ZeroHash is the DomainHash with all bytes set to zero.
var ZeroHash DomainHash

// NewDomainHashFromByteArray returns the DomainHash holding hashBytes.
func NewDomainHashFromByteArray(hashBytes *[DomainHashSize]byte) DomainHash {
	return DomainHash(*hashBytes)
}

// NewDomainHashFromByteSlice decodes a DomainHash from untrusted bytes.
func NewDomainHashFromByteSlice(hashBytes []byte) (DomainHash, error) {
	if len(hashBytes) != DomainHashSize {
		return DomainHash{}, errors.Errorf("invalid hash size. Want: %d, got: %d",
			DomainHashSize, len(hashBytes))
	}
	var domainHash DomainHash
	copy(domainHash[:], hashBytes)
	return domainHash, nil
}

// NewDomainHashFromString decodes the hex representation returned by String.
func NewDomainHashFromString(hashString string) (DomainHash, error) {
	expectedLength := DomainHashSize * 2
	if len(hashString) != expectedLength {
		return DomainHash{}, errors.Errorf("hash string length is %d, while it should be %d",
			len(hashString), expectedLength)
	}

	hashBytes, err := hex.DecodeString(hashString)
	if err != nil {
		return DomainHash{}, errors.WithStack(err)
	}

	return NewDomainHashFromByteSlice(hashBytes)
}

// String returns the Hash as the hexadecimal string of the hash.
func (hash DomainHash) String() string {
	return hex.EncodeToString(hash[:])
}

// ByteSlice returns a copy of the hash bytes.
func (hash DomainHash) ByteSlice() []byte {
	slice := make([]byte, DomainHashSize)
	copy(slice, hash[:])
	return slice
}

// Equal returns whether hash equals to other
func (hash DomainHash) Equal(other DomainHash) bool {
	return hash == other
}

// Compare compares two hashes byte-wise and returns:
//
//   -1 if hash <  other
//    0 if hash == other
//   +1 if hash >  other
func (hash DomainHash) Compare(other DomainHash) int {
	return bytes.Compare(hash[:], other[:])
}

// Less returns true iff hash is less than other
func (hash DomainHash) Less(other DomainHash) bool {
	return hash.Compare(other) < 0
}

// IsZero returns whether every byte of hash is zero.
func (hash DomainHash) IsZero() bool {
	return hash == ZeroHash
}

// CloneHashes returns a clone of the given hashes slice.
func CloneHashes(hashes []DomainHash) []DomainHash {
	clone := make([]DomainHash, len(hashes))
	copy(clone, hashes)
	return clone
}

// HashesEqual returns whether the given hash slices are equal.
func HashesEqual(a, b []DomainHash) bool {
	if len(a) != len(b) {
		return false
	}

	for i, hash := range a {
		if hash != b[i] {
			return false
		}
	}
	return true
}
