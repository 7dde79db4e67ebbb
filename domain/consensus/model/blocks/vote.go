package blocks

import (
	"fmt"
	"io"

	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/utils/serialization"
)

// VoteSize is the length of an encoded Vote.
const VoteSize = 8 + externalapi.DomainHashSize

// Vote asserts that the proposer block BlockHash is the one a voter chain
// extends at depth Level.
type Vote struct {
	Level     uint64
	BlockHash externalapi.DomainHash
}

// Hash returns the SHA-256 of the vote's canonical encoding.
func (vote Vote) Hash() externalapi.DomainHash {
	return hashWith(func(w io.Writer) error {
		return SerializeVote(w, vote)
	})
}

func (vote Vote) String() string {
	return fmt.Sprintf("{level=%d, hash=%s}", vote.Level, vote.BlockHash)
}

// SerializeVote writes the little-endian level followed by the voted hash.
func SerializeVote(w io.Writer, vote Vote) error {
	return serialization.WriteElements(w, vote.Level, vote.BlockHash)
}

// DeserializeVote reads a vote encoded by SerializeVote from r.
func DeserializeVote(r io.Reader) (Vote, error) {
	var vote Vote
	err := serialization.ReadElements(r, &vote.Level, &vote.BlockHash)
	if err != nil {
		return Vote{}, err
	}
	return vote, nil
}
