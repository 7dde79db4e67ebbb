package blocks

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
)

func TestProposerMetadataHash(t *testing.T) {
	a := externalapi.DomainHash{0xa}
	b := externalapi.DomainHash{0xb}

	tests := []struct {
		name     string
		metadata *ProposerMetadata
	}{
		{"empty", &ProposerMetadata{}},
		{"one tx ref", &ProposerMetadata{TransactionRefs: []externalapi.DomainHash{a}}},
		{"one proposer ref", &ProposerMetadata{ProposerRefs: []externalapi.DomainHash{a}}},
		{"two tx refs", &ProposerMetadata{TransactionRefs: []externalapi.DomainHash{a, b}}},
		{"two tx refs reordered", &ProposerMetadata{TransactionRefs: []externalapi.DomainHash{b, a}}},
		{"both lists", &ProposerMetadata{
			TransactionRefs: []externalapi.DomainHash{a},
			ProposerRefs:    []externalapi.DomainHash{b},
		}},
	}

	seen := make(map[externalapi.DomainHash]string)
	for _, test := range tests {
		hash := test.metadata.Hash()
		if hash != test.metadata.Clone().Hash() {
			t.Fatalf("TestProposerMetadataHash: %s: hash isn't deterministic", test.name)
		}
		if other, ok := seen[hash]; ok {
			t.Fatalf("TestProposerMetadataHash: %s and %s hash to the same value", test.name, other)
		}
		seen[hash] = test.name
	}
}

func TestTransactionsHash(t *testing.T) {
	tx1 := &Transaction{Payload: []byte{1, 2}}
	tx2 := &Transaction{Payload: []byte{3}}
	tx12 := &Transaction{Payload: []byte{1, 2, 3}}

	if tx1.Hash() != tx1.Clone().Hash() {
		t.Fatalf("TestTransactionsHash: transaction hash isn't deterministic")
	}
	if TransactionsHash([]*Transaction{tx1, tx2}) == TransactionsHash([]*Transaction{tx2, tx1}) {
		t.Fatalf("TestTransactionsHash: transaction order doesn't affect the hash")
	}
	if TransactionsHash([]*Transaction{tx1, tx2}) == TransactionsHash([]*Transaction{tx12}) {
		t.Fatalf("TestTransactionsHash: payload boundaries don't affect the hash")
	}
	if TransactionsHash(nil) != TransactionsHash([]*Transaction{}) {
		t.Fatalf("TestTransactionsHash: nil and empty transaction lists hash differently")
	}
}

func TestProposerAndTransactionBlocks(t *testing.T) {
	transactions := []*Transaction{{Payload: []byte("tx")}}
	metadata := &ProposerMetadata{TransactionRefs: []externalapi.DomainHash{{1}}}
	header := NewBlockHeader(externalapi.ZeroHash, metadata.Hash(), TransactionsHash(transactions), 7)

	proposer := NewProposerBlock(header, transactions, metadata)
	if proposer.Hash() != header.Hash() {
		t.Fatalf("TestProposerAndTransactionBlocks: proposer hash isn't its header hash")
	}
	if err := proposer.CheckCommitments(); err != nil {
		t.Fatalf("TestProposerAndTransactionBlocks: CheckCommitments unexpectedly failed: %+v", err)
	}

	transactions[0].Payload[0] = 'X'
	if proposer.Transactions()[0].Payload[0] != 't' {
		t.Fatalf("TestProposerAndTransactionBlocks: proposer block shares transaction payloads")
	}

	txBlock := NewTransactionBlock(header, proposer.Transactions())
	if err := txBlock.CheckCommitments(); err != nil {
		t.Fatalf("TestProposerAndTransactionBlocks: CheckCommitments unexpectedly failed: %+v", err)
	}
	txBlock = NewTransactionBlock(header, transactions)
	if err := txBlock.CheckCommitments(); !errors.Is(err, ErrCommitmentMismatch) {
		t.Fatalf("TestProposerAndTransactionBlocks: expected ErrCommitmentMismatch, got %v", err)
	}

	allBlocks := []Block{proposer, txBlock, fakeVoterBlock()}
	for _, block := range allBlocks {
		if block.Hash() != block.Header().Hash() {
			t.Fatalf("TestProposerAndTransactionBlocks: %T hash isn't its header hash", block)
		}
	}
}
