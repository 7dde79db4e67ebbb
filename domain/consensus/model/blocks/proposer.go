package blocks

import (
	"io"

	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/utils/serialization"
)

// ProposerMetadata is the content specific to proposer blocks: the ordered
// references to transaction blocks and to other proposer blocks. The
// position of a reference becomes the index of its graph edge.
type ProposerMetadata struct {
	TransactionRefs []externalapi.DomainHash
	ProposerRefs    []externalapi.DomainHash
}

// Hash commits to both reference lists. Each list is prefixed with its
// length so that a reference can't move from one list to the other without
// changing the hash.
func (metadata *ProposerMetadata) Hash() externalapi.DomainHash {
	return hashWith(func(w io.Writer) error {
		for _, refs := range [][]externalapi.DomainHash{metadata.TransactionRefs, metadata.ProposerRefs} {
			err := serialization.WriteElement(w, uint64(len(refs)))
			if err != nil {
				return err
			}
			for _, ref := range refs {
				err := serialization.WriteElement(w, ref)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Clone returns a deep copy of metadata. A nil metadata clones into an
// empty one.
func (metadata *ProposerMetadata) Clone() *ProposerMetadata {
	if metadata == nil {
		return &ProposerMetadata{}
	}
	return &ProposerMetadata{
		TransactionRefs: externalapi.CloneHashes(metadata.TransactionRefs),
		ProposerRefs:    externalapi.CloneHashes(metadata.ProposerRefs),
	}
}

// ProposerBlock is a block of the proposer tree.
type ProposerBlock struct {
	header       *BlockHeader
	transactions []*Transaction
	metadata     *ProposerMetadata
}

// NewProposerBlock returns a proposer block owning copies of the given parts.
// header and every transaction must be non-nil. A nil metadata stands for
// an empty one.
func NewProposerBlock(header *BlockHeader, transactions []*Transaction, metadata *ProposerMetadata) *ProposerBlock {
	return &ProposerBlock{
		header:       header.Clone(),
		transactions: cloneTransactions(transactions),
		metadata:     metadata.Clone(),
	}
}

// Header returns the block header. It must not be modified.
func (block *ProposerBlock) Header() *BlockHeader {
	return block.header
}

// Hash returns the block identity, the hash of its header.
func (block *ProposerBlock) Hash() externalapi.DomainHash {
	return block.header.Hash()
}

// Transactions returns the transactions of the block. They must not be modified.
func (block *ProposerBlock) Transactions() []*Transaction {
	return block.transactions
}

// Metadata returns the references of the block. It must not be modified.
func (block *ProposerBlock) Metadata() *ProposerMetadata {
	return block.metadata
}

// CheckCommitments verifies that the header commits to the block's
// references and transactions.
func (block *ProposerBlock) CheckCommitments() error {
	err := checkCommitment("proposal hash", block.header.ProposalHash, block.metadata.Hash())
	if err != nil {
		return err
	}
	return checkCommitment("transactions hash", block.header.TransactionsHash, TransactionsHash(block.transactions))
}
