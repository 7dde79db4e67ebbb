package externalapi

import (
	"fmt"

	"github.com/pkg/errors"
)

// EdgeKind identifies why one block references another. The numeric values
// are part of the protocol and must never be renumbered.
type EdgeKind uint8

// Forward edge kinds. "From" is the referencing block, "to" the referenced one.
const (
	// EdgeTxToProposerParent links a transaction block to the proposer block it was mined on.
	EdgeTxToProposerParent EdgeKind = iota
	// EdgeProposerToProposerParent links a proposer block to the proposer block it was mined on.
	EdgeProposerToProposerParent
	// EdgeProposerToProposerReference links a proposer block to a proposer block it refers to.
	EdgeProposerToProposerReference
	// EdgeProposerToTransactionReference links a proposer block to a transaction block it refers to.
	EdgeProposerToTransactionReference
	// EdgeProposerToTransactionLeaderReference links a leader proposer block to a transaction
	// block it includes in the ledger.
	EdgeProposerToTransactionLeaderReference
	// EdgeProposerToTransactionRefAndLeaderRef is both of the above at once.
	EdgeProposerToTransactionRefAndLeaderRef
	// EdgeVoterToProposerParent links a voter block to the proposer block it was mined on.
	EdgeVoterToProposerParent
	// EdgeVoterToProposerVote links a voter block to a proposer block it votes for.
	EdgeVoterToProposerVote
	// EdgeVoterToProposerParentAndVote is used when the proposer parent is also voted for.
	EdgeVoterToProposerParentAndVote
	// EdgeVoterToVoterParent links a voter block to its voter chain parent.
	EdgeVoterToVoterParent

	// Reverse edge kinds, in the same order as their forward counterparts.
	EdgeTxFromProposerParent
	EdgeProposerFromProposerParent
	EdgeProposerFromProposerReference
	EdgeProposerFromTransactionReference
	EdgeProposerFromTransactionLeaderReference
	EdgeProposerFromTransactionRefAndLeaderRef
	EdgeVoterFromProposerParent
	EdgeVoterFromProposerVote
	EdgeVoterFromProposerParentAndVote
	EdgeVoterFromVoterParent

	edgeKindCount
)

const forwardEdgeKindCount = edgeKindCount / 2

type edgeKindInfo struct {
	label    string
	reverse  EdgeKind
	hasIndex bool
}

var edgeKindInfos = [edgeKindCount]edgeKindInfo{
	EdgeTxToProposerParent:                   {"Tx2PropParent", EdgeTxFromProposerParent, false},
	EdgeProposerToProposerParent:             {"Prop2PropParent", EdgeProposerFromProposerParent, false},
	EdgeProposerToProposerReference:          {"Prop2PropRef", EdgeProposerFromProposerReference, true},
	EdgeProposerToTransactionReference:       {"Prop2TxRef", EdgeProposerFromTransactionReference, true},
	EdgeProposerToTransactionLeaderReference: {"Prop2TxLeaderRef", EdgeProposerFromTransactionLeaderReference, true},
	EdgeProposerToTransactionRefAndLeaderRef: {"Prop2TxRefAndLeaderRef", EdgeProposerFromTransactionRefAndLeaderRef, true},
	EdgeVoterToProposerParent:                {"V2PropParent", EdgeVoterFromProposerParent, false},
	EdgeVoterToProposerVote:                  {"V2PropVote", EdgeVoterFromProposerVote, false},
	EdgeVoterToProposerParentAndVote:         {"V2PropParent_and_Vote", EdgeVoterFromProposerParentAndVote, false},
	EdgeVoterToVoterParent:                   {"V2VParent", EdgeVoterFromVoterParent, false},

	EdgeTxFromProposerParent:                   {"TxFromPropParent", EdgeTxToProposerParent, false},
	EdgeProposerFromProposerParent:             {"PropFromPropParent", EdgeProposerToProposerParent, false},
	EdgeProposerFromProposerReference:          {"PropFromPropRef", EdgeProposerToProposerReference, true},
	EdgeProposerFromTransactionReference:       {"PropFromTxRef", EdgeProposerToTransactionReference, true},
	EdgeProposerFromTransactionLeaderReference: {"PropFromTxLeaderRef", EdgeProposerToTransactionLeaderReference, true},
	EdgeProposerFromTransactionRefAndLeaderRef: {"PropFromTxRefAndLeaderRef", EdgeProposerToTransactionRefAndLeaderRef, true},
	EdgeVoterFromProposerParent:                {"VFromPropParent", EdgeVoterToProposerParent, false},
	EdgeVoterFromProposerVote:                  {"VFromPropVote", EdgeVoterToProposerVote, false},
	EdgeVoterFromProposerParentAndVote:         {"VFromPropParent_and_Vote", EdgeVoterToProposerParentAndVote, false},
	EdgeVoterFromVoterParent:                   {"VFromVParent", EdgeVoterToVoterParent, false},
}

// AllEdgeKinds returns every edge kind, forward kinds first.
func AllEdgeKinds() []EdgeKind {
	kinds := make([]EdgeKind, edgeKindCount)
	for i := range kinds {
		kinds[i] = EdgeKind(i)
	}
	return kinds
}

// IsValid returns whether kind is one of the defined edge kinds.
func (kind EdgeKind) IsValid() bool {
	return kind < edgeKindCount
}

// IsForward returns whether kind points from the referencing block to the referenced one.
func (kind EdgeKind) IsForward() bool {
	return kind < forwardEdgeKindCount
}

// HasIndex returns whether edges of this kind carry a reference ordinal.
func (kind EdgeKind) HasIndex() bool {
	return kind.info().hasIndex
}

// Reverse returns the kind describing the same relationship seen from its target.
func (kind EdgeKind) Reverse() EdgeKind {
	return kind.info().reverse
}

func (kind EdgeKind) String() string {
	if !kind.IsValid() {
		return fmt.Sprintf("EdgeKind(%d)", uint8(kind))
	}
	return kind.info().label
}

// EdgeKindFromString returns the kind whose label is the given string.
func EdgeKindFromString(label string) (EdgeKind, bool) {
	for kind, info := range edgeKindInfos {
		if info.label == label {
			return EdgeKind(kind), true
		}
	}
	return 0, false
}

func (kind EdgeKind) info() edgeKindInfo {
	if !kind.IsValid() {
		panic(errors.Errorf("unknown edge kind %d", uint8(kind)))
	}
	return edgeKindInfos[kind]
}

// Edge is a typed, directed relationship between two blocks. Edges are
// comparable and may be used as map keys.
type Edge struct {
	kind  EdgeKind
	index uint32
}

// NewEdge returns an edge of a kind that carries no index.
// It panics if kind requires an index.
func NewEdge(kind EdgeKind) Edge {
	if kind.HasIndex() {
		panic(errors.Errorf("edge kind %s requires an index", kind))
	}
	return Edge{kind: kind}
}

// NewIndexedEdge returns an edge of an index-carrying kind.
// It panics if kind carries no index.
func NewIndexedEdge(kind EdgeKind, index uint32) Edge {
	if !kind.HasIndex() {
		panic(errors.Errorf("edge kind %s does not carry an index", kind))
	}
	return Edge{kind: kind, index: index}
}

// NewEdgeFromKindAndIndex builds an edge from untrusted components.
func NewEdgeFromKindAndIndex(kind EdgeKind, index uint32) (Edge, error) {
	if !kind.IsValid() {
		return Edge{}, errors.Errorf("unknown edge kind %d", uint8(kind))
	}
	if !kind.HasIndex() && index != 0 {
		return Edge{}, errors.Errorf("edge kind %s does not carry an index, got %d", kind, index)
	}
	return Edge{kind: kind, index: index}, nil
}

// Kind returns the kind of edge.
func (edge Edge) Kind() EdgeKind {
	return edge.kind
}

// Index returns the reference ordinal of edge, and whether its kind carries one.
func (edge Edge) Index() (uint32, bool) {
	return edge.index, edge.kind.HasIndex()
}

// IsForward returns whether edge points from the referencing block to the referenced one.
func (edge Edge) IsForward() bool {
	return edge.kind.IsForward()
}

// Reverse returns the same edge viewed from its target. The index is kept.
func (edge Edge) Reverse() Edge {
	return Edge{kind: edge.kind.Reverse(), index: edge.index}
}

// Less orders edges by kind, then by index.
func (edge Edge) Less(other Edge) bool {
	if edge.kind != other.kind {
		return edge.kind < other.kind
	}
	return edge.index < other.index
}

// String returns the short label of the edge kind. The index is not part of
// the label.
func (edge Edge) String() string {
	return edge.kind.String()
}

// GraphEdge is an edge together with the blocks it connects.
type GraphEdge struct {
	From DomainHash
	To   DomainHash
	Edge Edge
}

// Reverse returns the edge stored at the target block.
func (graphEdge GraphEdge) Reverse() GraphEdge {
	return GraphEdge{
		From: graphEdge.To,
		To:   graphEdge.From,
		Edge: graphEdge.Edge.Reverse(),
	}
}

func (graphEdge GraphEdge) String() string {
	if index, ok := graphEdge.Edge.Index(); ok {
		return fmt.Sprintf("%s -%s(%d)-> %s", graphEdge.From, graphEdge.Edge, index, graphEdge.To)
	}
	return fmt.Sprintf("%s -%s-> %s", graphEdge.From, graphEdge.Edge, graphEdge.To)
}
