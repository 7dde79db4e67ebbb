package model

import (
	"github.com/prismnet/prismd/domain/consensus/model/blocks"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
)

// BlockHeaderStore represents a store of block headers indexed by block hash
type BlockHeaderStore interface {
	Insert(header *blocks.BlockHeader) error
	Header(blockHash externalapi.DomainHash) (*blocks.BlockHeader, error)
	Has(blockHash externalapi.DomainHash) (bool, error)
	Count() uint64
}
