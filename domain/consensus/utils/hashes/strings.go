package hashes

import (
	"github.com/pkg/errors"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
)

// FromStrings parses every string in hashStrings, in order.
func FromStrings(hashStrings []string) ([]externalapi.DomainHash, error) {
	hashes := make([]externalapi.DomainHash, len(hashStrings))
	for i, hashString := range hashStrings {
		hash, err := externalapi.NewDomainHashFromString(hashString)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid hash at position %d", i)
		}
		hashes[i] = hash
	}
	return hashes, nil
}
