package model

import "github.com/prismnet/prismd/domain/consensus/model/externalapi"

// EdgeStore represents a persistent store of graph edges. Every inserted
// forward edge is stored together with its reverse.
type EdgeStore interface {
	Insert(edges ...externalapi.GraphEdge) error
	Remove(edges ...externalapi.GraphEdge) error
	Edges(blockHash externalapi.DomainHash) ([]externalapi.GraphEdge, error)
	EdgesOfKind(blockHash externalapi.DomainHash, kind externalapi.EdgeKind) ([]externalapi.GraphEdge, error)
	Has(edge externalapi.GraphEdge) (bool, error)
	Commitment() externalapi.DomainHash
}
