package model

import "github.com/prismnet/prismd/domain/consensus/model/externalapi"

// Multiset is an order-independent commitment to a multiset of byte strings.
type Multiset interface {
	Add(data []byte)
	Remove(data []byte)
	Hash() externalapi.DomainHash
	Serialize() []byte
	Clone() Multiset
}
