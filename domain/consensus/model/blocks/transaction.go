package blocks

import (
	"io"

	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/utils/serialization"
)

// Transaction is an opaque ledger transaction.
type Transaction struct {
	Payload []byte
}

// Hash returns the SHA-256 of the length-prefixed payload.
func (tx *Transaction) Hash() externalapi.DomainHash {
	return hashWith(func(w io.Writer) error {
		return serialization.WriteElement(w, tx.Payload)
	})
}

// Clone returns a deep copy of tx.
func (tx *Transaction) Clone() *Transaction {
	payload := make([]byte, len(tx.Payload))
	copy(payload, tx.Payload)
	return &Transaction{Payload: payload}
}

func cloneTransactions(transactions []*Transaction) []*Transaction {
	clone := make([]*Transaction, len(transactions))
	for i, tx := range transactions {
		clone[i] = tx.Clone()
	}
	return clone
}

// TransactionsHash commits to an ordered list of transactions: the
// transaction count followed by every transaction hash.
func TransactionsHash(transactions []*Transaction) externalapi.DomainHash {
	return hashWith(func(w io.Writer) error {
		err := serialization.WriteElement(w, uint64(len(transactions)))
		if err != nil {
			return err
		}
		for _, tx := range transactions {
			err := serialization.WriteElement(w, tx.Hash())
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// TransactionBlock is a block carrying a batch of transactions.
type TransactionBlock struct {
	header       *BlockHeader
	transactions []*Transaction
}

// NewTransactionBlock returns a transaction block owning copies of the given parts.
// header and every transaction must be non-nil.
func NewTransactionBlock(header *BlockHeader, transactions []*Transaction) *TransactionBlock {
	return &TransactionBlock{
		header:       header.Clone(),
		transactions: cloneTransactions(transactions),
	}
}

// Header returns the block header. It must not be modified.
func (block *TransactionBlock) Header() *BlockHeader {
	return block.header
}

// Hash returns the block identity, the hash of its header.
func (block *TransactionBlock) Hash() externalapi.DomainHash {
	return block.header.Hash()
}

// Transactions returns the transactions of the block. They must not be modified.
func (block *TransactionBlock) Transactions() []*Transaction {
	return block.transactions
}

// CheckCommitments verifies that the header commits to the block's transactions.
func (block *TransactionBlock) CheckCommitments() error {
	return checkCommitment("transactions hash", block.header.TransactionsHash, TransactionsHash(block.transactions))
}
