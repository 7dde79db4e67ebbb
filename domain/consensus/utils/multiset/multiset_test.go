package multiset

import (
	"testing"

	"github.com/kaspanet/go-muhash"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/utils/serialization"
)

func testGraphEdges() [][]byte {
	from := externalapi.DomainHash{1}
	return [][]byte{
		serialization.SerializeGraphEdge(externalapi.GraphEdge{From: from, To: externalapi.DomainHash{2},
			Edge: externalapi.NewEdge(externalapi.EdgeVoterToVoterParent)}),
		serialization.SerializeGraphEdge(externalapi.GraphEdge{From: from, To: externalapi.DomainHash{3},
			Edge: externalapi.NewEdge(externalapi.EdgeVoterToProposerVote)}),
		serialization.SerializeGraphEdge(externalapi.GraphEdge{From: from, To: externalapi.DomainHash{4},
			Edge: externalapi.NewIndexedEdge(externalapi.EdgeProposerToTransactionReference, 9)}),
	}
}

func TestMultisetOrderIndependence(t *testing.T) {
	edges := testGraphEdges()

	forward := New()
	for _, edge := range edges {
		forward.Add(edge)
	}
	backward := New()
	for i := len(edges) - 1; i >= 0; i-- {
		backward.Add(edges[i])
	}
	if forward.Hash() != backward.Hash() {
		t.Fatalf("TestMultisetOrderIndependence: insertion order changed the hash: %s != %s",
			forward.Hash(), backward.Hash())
	}
}

func TestMultisetAddRemove(t *testing.T) {
	edges := testGraphEdges()
	empty := New().Hash()

	ms := New()
	ms.Add(edges[0])
	withOne := ms.Hash()
	if withOne == empty {
		t.Fatalf("TestMultisetAddRemove: adding an element didn't change the hash")
	}

	clone := ms.Clone()
	ms.Add(edges[1])
	if clone.Hash() != withOne {
		t.Fatalf("TestMultisetAddRemove: clone shares state with its source")
	}

	ms.Remove(edges[1])
	if ms.Hash() != withOne {
		t.Fatalf("TestMultisetAddRemove: removing an element didn't restore the hash")
	}
	ms.Remove(edges[0])
	if ms.Hash() != empty {
		t.Fatalf("TestMultisetAddRemove: removing every element didn't restore the empty hash")
	}
}

func TestMultisetSerialization(t *testing.T) {
	ms := New()
	for _, edge := range testGraphEdges() {
		ms.Add(edge)
	}

	deserialized, err := FromBytes(ms.Serialize())
	if err != nil {
		t.Fatalf("TestMultisetSerialization: FromBytes unexpectedly failed: %+v", err)
	}
	if deserialized.Hash() != ms.Hash() {
		t.Fatalf("TestMultisetSerialization: got %s, want %s", deserialized.Hash(), ms.Hash())
	}

	_, err = FromBytes([]byte{1, 2, 3})
	if err == nil {
		t.Fatalf("TestMultisetSerialization: expected an error for a short slice")
	}
}

func TestEmptyMultisetHash(t *testing.T) {
	expected := externalapi.NewDomainHashFromByteArray(muhash.EmptyMuHashHash.AsArray())
	if New().Hash() != expected {
		t.Fatalf("TestEmptyMultisetHash: got %s, want %s", New().Hash(), expected)
	}

	deserialized, err := FromBytes(New().Serialize())
	if err != nil {
		t.Fatalf("TestEmptyMultisetHash: FromBytes unexpectedly failed: %+v", err)
	}
	if deserialized.Hash() != expected {
		t.Fatalf("TestEmptyMultisetHash: deserialized empty multiset hashes to %s", deserialized.Hash())
	}
}
