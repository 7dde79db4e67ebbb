// Package blocks defines the proposer, voter and transaction blocks of the
// block graph and the consensus commitments binding their contents to their
// identities.
package blocks

import (
	"io"

	"github.com/pkg/errors"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/utils/hashes"
)

// Hashable is implemented by everything that participates in a commitment.
// Hash is deterministic and depends only on the logical content of the value.
type Hashable interface {
	Hash() externalapi.DomainHash
}

// Block is implemented by every block kind. A block's hash is the hash of
// its header.
type Block interface {
	Hashable
	Header() *BlockHeader
}

// ErrCommitmentMismatch is returned when a header does not commit to the
// content of its block.
var ErrCommitmentMismatch = errors.New("header commitment mismatch")

var (
	_ Hashable = (*BlockHeader)(nil)
	_ Hashable = Vote{}
	_ Hashable = (*VoterMetadata)(nil)
	_ Hashable = (*ProposerMetadata)(nil)
	_ Hashable = (*Transaction)(nil)

	_ Block = (*VoterBlock)(nil)
	_ Block = (*ProposerBlock)(nil)
	_ Block = (*TransactionBlock)(nil)
)

// hashWith feeds everything serialize writes into a fresh SHA-256 writer and
// returns the digest. Serialization failures are programming errors.
func hashWith(serialize func(w io.Writer) error) externalapi.DomainHash {
	writer := hashes.NewHashWriter()
	err := serialize(writer)
	if err != nil {
		// The writer itself never fails, so the only way to get here is an
		// element with no encoding.
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}
	return writer.Finalize()
}

func checkCommitment(field string, committed, actual externalapi.DomainHash) error {
	if committed != actual {
		return errors.Wrapf(ErrCommitmentMismatch, "header %s is %s, while the content hashes to %s",
			field, committed, actual)
	}
	return nil
}
