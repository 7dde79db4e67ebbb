package blocks

import (
	"io"
	"strings"

	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/utils/serialization"
)

// VoterMetadata is the content specific to voter blocks. Both lists are
// positional: ParentLinks[0] is the direct voter chain parent, and
// reordering either list changes the hash.
type VoterMetadata struct {
	Votes       []Vote
	ParentLinks []externalapi.DomainHash
}

// Hash streams every vote and then every parent link, in order, into a
// single SHA-256. Empty metadata hashes to the SHA-256 of no input.
func (metadata *VoterMetadata) Hash() externalapi.DomainHash {
	return hashWith(func(w io.Writer) error {
		for _, vote := range metadata.Votes {
			err := SerializeVote(w, vote)
			if err != nil {
				return err
			}
		}
		for _, parentLink := range metadata.ParentLinks {
			err := serialization.WriteElement(w, parentLink)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Clone returns a deep copy of metadata. A nil metadata clones into an
// empty one.
func (metadata *VoterMetadata) Clone() *VoterMetadata {
	if metadata == nil {
		return &VoterMetadata{}
	}
	votes := make([]Vote, len(metadata.Votes))
	copy(votes, metadata.Votes)
	return &VoterMetadata{
		Votes:       votes,
		ParentLinks: externalapi.CloneHashes(metadata.ParentLinks),
	}
}

func (metadata *VoterMetadata) String() string {
	builder := &strings.Builder{}
	builder.WriteString("{\n  votes: [\n")
	for _, vote := range metadata.Votes {
		builder.WriteString("    " + vote.String() + ",\n")
	}
	builder.WriteString("  ]\n  parent links: [\n")
	for _, parentLink := range metadata.ParentLinks {
		builder.WriteString("    " + parentLink.String() + ",\n")
	}
	builder.WriteString("  ]\n}")
	return builder.String()
}

// VoterBlock is a block of a voter chain.
type VoterBlock struct {
	header       *BlockHeader
	transactions []*Transaction
	metadata     *VoterMetadata
}

// NewVoterBlock returns a voter block owning copies of the given parts.
// header and every transaction must be non-nil. A nil metadata stands for
// an empty one.
func NewVoterBlock(header *BlockHeader, transactions []*Transaction, metadata *VoterMetadata) *VoterBlock {
	return &VoterBlock{
		header:       header.Clone(),
		transactions: cloneTransactions(transactions),
		metadata:     metadata.Clone(),
	}
}

// Header returns the block header. It must not be modified.
func (block *VoterBlock) Header() *BlockHeader {
	return block.header
}

// Hash returns the block identity, the hash of its header.
func (block *VoterBlock) Hash() externalapi.DomainHash {
	return block.header.Hash()
}

// Transactions returns the transactions of the block. They must not be modified.
func (block *VoterBlock) Transactions() []*Transaction {
	return block.transactions
}

// Metadata returns the votes and parent links of the block. It must not be modified.
func (block *VoterBlock) Metadata() *VoterMetadata {
	return block.metadata
}

// CheckCommitments verifies that the header commits to the block's voter
// metadata and transactions.
func (block *VoterBlock) CheckCommitments() error {
	err := checkCommitment("voter hash", block.header.VoterHash, block.metadata.Hash())
	if err != nil {
		return err
	}
	return checkCommitment("transactions hash", block.header.TransactionsHash, TransactionsHash(block.transactions))
}
