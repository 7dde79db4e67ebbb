package blocks

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/utils/serialization"
)

// HeaderSize is the length of an encoded BlockHeader.
const HeaderSize = 3*externalapi.DomainHashSize + 4

// BlockHeader commits to the three kinds of block content and carries the
// proof-of-work nonce. Its hash is the identity of the block.
type BlockHeader struct {
	VoterHash        externalapi.DomainHash
	ProposalHash     externalapi.DomainHash
	TransactionsHash externalapi.DomainHash
	Nonce            uint32
}

// NewBlockHeader returns a new BlockHeader.
func NewBlockHeader(voterHash, proposalHash, transactionsHash externalapi.DomainHash, nonce uint32) *BlockHeader {
	return &BlockHeader{
		VoterHash:        voterHash,
		ProposalHash:     proposalHash,
		TransactionsHash: transactionsHash,
		Nonce:            nonce,
	}
}

// Hash returns the SHA-256 of the header's canonical encoding.
func (header *BlockHeader) Hash() externalapi.DomainHash {
	return hashWith(func(w io.Writer) error {
		return SerializeHeader(w, header)
	})
}

// Clone returns a copy of header.
func (header *BlockHeader) Clone() *BlockHeader {
	clone := *header
	return &clone
}

func (header *BlockHeader) String() string {
	return fmt.Sprintf("{voter_hash=%s, proposal_hash=%s, transactions_hash=%s, nonce=%d}",
		header.VoterHash, header.ProposalHash, header.TransactionsHash, header.Nonce)
}

// SerializeHeader writes the canonical encoding of header to w: the three
// commitment hashes followed by the little-endian nonce.
func SerializeHeader(w io.Writer, header *BlockHeader) error {
	return serialization.WriteElements(w, header.VoterHash, header.ProposalHash, header.TransactionsHash,
		header.Nonce)
}

// DeserializeHeader reads a header encoded by SerializeHeader from r.
func DeserializeHeader(r io.Reader) (*BlockHeader, error) {
	header := &BlockHeader{}
	err := serialization.ReadElements(r, &header.VoterHash, &header.ProposalHash, &header.TransactionsHash,
		&header.Nonce)
	if err != nil {
		return nil, err
	}
	return header, nil
}

// HeaderToBytes returns the canonical encoding of header.
func HeaderToBytes(header *BlockHeader) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize))
	err := SerializeHeader(buf, header)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. bytes.Buffer writes never fail"))
	}
	return buf.Bytes()
}

// HeaderFromBytes decodes a header and rejects trailing bytes.
func HeaderFromBytes(headerBytes []byte) (*BlockHeader, error) {
	if len(headerBytes) != HeaderSize {
		return nil, errors.Errorf("header is %d bytes, while it should be %d", len(headerBytes), HeaderSize)
	}
	return DeserializeHeader(bytes.NewReader(headerBytes))
}
