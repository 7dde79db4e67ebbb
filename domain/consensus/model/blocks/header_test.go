package blocks

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/utils/serialization"
)

func TestHeaderContentSensitivity(t *testing.T) {
	base := fakeVoterBlock().Header()
	baseHash := base.Hash()

	tests := []struct {
		name   string
		modify func(header *BlockHeader)
	}{
		{"voter hash", func(header *BlockHeader) { header.VoterHash[31] ^= 1 }},
		{"proposal hash", func(header *BlockHeader) { header.ProposalHash[0] ^= 1 }},
		{"transactions hash", func(header *BlockHeader) { header.TransactionsHash[15] ^= 1 }},
		{"nonce", func(header *BlockHeader) { header.Nonce++ }},
	}

	for _, test := range tests {
		modified := base.Clone()
		test.modify(modified)
		if modified.Hash() == baseHash {
			t.Fatalf("TestHeaderContentSensitivity: changing the %s didn't change the hash", test.name)
		}
		if base.Hash() != baseHash {
			t.Fatalf("TestHeaderContentSensitivity: Clone shares memory with its source")
		}
	}
}

func TestHeaderSerialization(t *testing.T) {
	header := NewBlockHeader(externalapi.DomainHash{1}, externalapi.DomainHash{2}, externalapi.DomainHash{3}, 12345)

	headerBytes := HeaderToBytes(header)
	if len(headerBytes) != HeaderSize {
		t.Fatalf("TestHeaderSerialization: got %d bytes, want %d", len(headerBytes), HeaderSize)
	}
	if !bytes.Equal(headerBytes[96:], []byte{0x39, 0x30, 0x00, 0x00}) {
		t.Fatalf("TestHeaderSerialization: nonce isn't little endian: %x", headerBytes[96:])
	}

	decoded, err := HeaderFromBytes(headerBytes)
	if err != nil {
		t.Fatalf("TestHeaderSerialization: HeaderFromBytes unexpectedly failed: %+v", err)
	}
	if !reflect.DeepEqual(decoded, header) {
		t.Fatalf("TestHeaderSerialization: got %s, want %s", spew.Sdump(decoded), spew.Sdump(header))
	}
	if decoded.Hash() != header.Hash() {
		t.Fatalf("TestHeaderSerialization: decoded header has a different hash")
	}

	_, err = HeaderFromBytes(append(headerBytes, 0))
	if err == nil {
		t.Fatalf("TestHeaderSerialization: expected an error for trailing bytes")
	}
	_, err = DeserializeHeader(bytes.NewReader(headerBytes[:HeaderSize-1]))
	if !serialization.IsMalformedError(err) {
		t.Fatalf("TestHeaderSerialization: expected a malformed error for a truncated header, got %v", err)
	}
}

func TestVoteSerialization(t *testing.T) {
	vote := Vote{Level: 2, BlockHash: externalapi.DomainHash{0xff}}
	buf := &bytes.Buffer{}
	err := SerializeVote(buf, vote)
	if err != nil {
		t.Fatalf("TestVoteSerialization: SerializeVote unexpectedly failed: %+v", err)
	}
	if buf.Len() != VoteSize || buf.Bytes()[0] != 2 || buf.Bytes()[8] != 0xff {
		t.Fatalf("TestVoteSerialization: unexpected encoding %x", buf.Bytes())
	}

	decoded, err := DeserializeVote(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("TestVoteSerialization: DeserializeVote unexpectedly failed: %+v", err)
	}
	if decoded != vote {
		t.Fatalf("TestVoteSerialization: got %s, want %s", decoded, vote)
	}
	if decoded.Hash() != vote.Hash() {
		t.Fatalf("TestVoteSerialization: equal votes hash differently")
	}
	if (Vote{Level: 3, BlockHash: vote.BlockHash}).Hash() == vote.Hash() {
		t.Fatalf("TestVoteSerialization: vote hash ignores the level")
	}

	_, err = DeserializeVote(bytes.NewReader(buf.Bytes()[:VoteSize-1]))
	if !serialization.IsMalformedError(err) {
		t.Fatalf("TestVoteSerialization: expected a malformed error, got %v", err)
	}
}
