// Package graphbuilder derives the typed graph edges a block contributes to
// the block graph.
package graphbuilder

import (
	"github.com/prismnet/prismd/domain/consensus/model/blocks"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
)

// TransactionBlockEdges returns the edges of a transaction block mined on proposerParent.
func TransactionBlockEdges(block *blocks.TransactionBlock, proposerParent externalapi.DomainHash) []externalapi.GraphEdge {
	return []externalapi.GraphEdge{{
		From: block.Hash(),
		To:   proposerParent,
		Edge: externalapi.NewEdge(externalapi.EdgeTxToProposerParent),
	}}
}

// ProposerBlockEdges returns the edges of a proposer block mined on
// proposerParent. Reference edges carry the position of the reference in
// the block's metadata.
func ProposerBlockEdges(block *blocks.ProposerBlock, proposerParent externalapi.DomainHash) []externalapi.GraphEdge {
	blockHash := block.Hash()
	metadata := block.Metadata()

	edges := make([]externalapi.GraphEdge, 0, 1+len(metadata.ProposerRefs)+len(metadata.TransactionRefs))
	edges = append(edges, externalapi.GraphEdge{
		From: blockHash,
		To:   proposerParent,
		Edge: externalapi.NewEdge(externalapi.EdgeProposerToProposerParent),
	})
	for i, ref := range metadata.ProposerRefs {
		edges = append(edges, externalapi.GraphEdge{
			From: blockHash,
			To:   ref,
			Edge: externalapi.NewIndexedEdge(externalapi.EdgeProposerToProposerReference, uint32(i)),
		})
	}
	for i, ref := range metadata.TransactionRefs {
		edges = append(edges, externalapi.GraphEdge{
			From: blockHash,
			To:   ref,
			Edge: externalapi.NewIndexedEdge(externalapi.EdgeProposerToTransactionReference, uint32(i)),
		})
	}
	return edges
}

// VoterBlockEdges returns the edges of a voter block mined on
// proposerParent. A vote for the proposer parent itself is merged with the
// parent edge into a single VoterToProposerParentAndVote edge.
func VoterBlockEdges(block *blocks.VoterBlock, proposerParent externalapi.DomainHash) []externalapi.GraphEdge {
	blockHash := block.Hash()
	metadata := block.Metadata()

	edges := make([]externalapi.GraphEdge, 0, 2+len(metadata.Votes))
	if len(metadata.ParentLinks) > 0 {
		edges = append(edges, externalapi.GraphEdge{
			From: blockHash,
			To:   metadata.ParentLinks[0],
			Edge: externalapi.NewEdge(externalapi.EdgeVoterToVoterParent),
		})
	}

	parentKind := externalapi.EdgeVoterToProposerParent
	for _, vote := range metadata.Votes {
		if vote.BlockHash == proposerParent {
			parentKind = externalapi.EdgeVoterToProposerParentAndVote
			continue
		}
		edges = append(edges, externalapi.GraphEdge{
			From: blockHash,
			To:   vote.BlockHash,
			Edge: externalapi.NewEdge(externalapi.EdgeVoterToProposerVote),
		})
	}
	edges = append(edges, externalapi.GraphEdge{
		From: blockHash,
		To:   proposerParent,
		Edge: externalapi.NewEdge(parentKind),
	})
	return edges
}

// LeaderReferenceEdges returns the edges from a leader proposer block to the
// transaction blocks it confirms, in ledger order. A transaction block the
// leader also references directly gets a ProposerToTransactionRefAndLeaderRef edge.
func LeaderReferenceEdges(leader *blocks.ProposerBlock, confirmed []externalapi.DomainHash) []externalapi.GraphEdge {
	leaderHash := leader.Hash()
	referenced := make(map[externalapi.DomainHash]struct{}, len(leader.Metadata().TransactionRefs))
	for _, ref := range leader.Metadata().TransactionRefs {
		referenced[ref] = struct{}{}
	}

	edges := make([]externalapi.GraphEdge, len(confirmed))
	for i, txBlockHash := range confirmed {
		kind := externalapi.EdgeProposerToTransactionLeaderReference
		if _, ok := referenced[txBlockHash]; ok {
			kind = externalapi.EdgeProposerToTransactionRefAndLeaderRef
		}
		edges[i] = externalapi.GraphEdge{
			From: leaderHash,
			To:   txBlockHash,
			Edge: externalapi.NewIndexedEdge(kind, uint32(i)),
		}
	}
	return edges
}

// WithReverses returns edges followed by the reverse of every edge.
func WithReverses(edges []externalapi.GraphEdge) []externalapi.GraphEdge {
	all := make([]externalapi.GraphEdge, 0, 2*len(edges))
	all = append(all, edges...)
	for _, edge := range edges {
		all = append(all, edge.Reverse())
	}
	return all
}
