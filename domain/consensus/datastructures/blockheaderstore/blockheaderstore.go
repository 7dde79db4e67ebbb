package blockheaderstore

import (
	"bytes"
	"sync"

	"github.com/prismnet/prismd/domain/consensus/model"
	"github.com/prismnet/prismd/domain/consensus/model/blocks"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/utils/lrucache"
	"github.com/prismnet/prismd/infrastructure/db/database"
	"github.com/prismnet/prismd/util/binaryserializer"
)

var bucketName = []byte("headers")
var countKeyName = []byte("headers-count")

// blockHeaderStore represents a store of block headers
type blockHeaderStore struct {
	lock sync.RWMutex

	db          database.Database
	cache       *lrucache.LRUCache
	countCached uint64
	bucket      *database.Bucket
	countKey    *database.Key
}

// New instantiates a new BlockHeaderStore
func New(db database.Database, cacheSize int) (model.BlockHeaderStore, error) {
	blockHeaderStore := &blockHeaderStore{
		db:       db,
		cache:    lrucache.New(cacheSize),
		bucket:   database.MakeBucket(bucketName),
		countKey: database.MakeBucket().Key(countKeyName),
	}

	err := blockHeaderStore.initializeCount()
	if err != nil {
		return nil, err
	}

	return blockHeaderStore, nil
}

func (bhs *blockHeaderStore) initializeCount() error {
	count := uint64(0)
	hasCountBytes, err := bhs.db.Has(bhs.countKey)
	if err != nil {
		return err
	}
	if hasCountBytes {
		countBytes, err := bhs.db.Get(bhs.countKey)
		if err != nil {
			return err
		}
		count, err = binaryserializer.Uint64(bytes.NewReader(countBytes))
		if err != nil {
			return err
		}
	}
	bhs.countCached = count
	return nil
}

// Insert stores the given header under its hash. Inserting a header that
// is already stored does nothing.
func (bhs *blockHeaderStore) Insert(header *blocks.BlockHeader) error {
	bhs.lock.Lock()
	defer bhs.lock.Unlock()

	blockHash := header.Hash()
	if bhs.cache.Has(blockHash) {
		return nil
	}
	exists, err := bhs.db.Has(bhs.hashAsKey(blockHash))
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	dbTx, err := bhs.db.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	err = dbTx.Put(bhs.hashAsKey(blockHash), blocks.HeaderToBytes(header))
	if err != nil {
		return err
	}
	err = dbTx.Put(bhs.countKey, serializeHeaderCount(bhs.countCached+1))
	if err != nil {
		return err
	}
	err = dbTx.Commit()
	if err != nil {
		return err
	}

	bhs.countCached++
	bhs.cache.Add(blockHash, header.Clone())
	log.Tracef("Stored header %s", blockHash)
	return nil
}

// Header gets the block header associated with the given blockHash
func (bhs *blockHeaderStore) Header(blockHash externalapi.DomainHash) (*blocks.BlockHeader, error) {
	// Not a read lock: a cache miss adds to the cache
	bhs.lock.Lock()
	defer bhs.lock.Unlock()

	if header, ok := bhs.cache.Get(blockHash); ok {
		return header.(*blocks.BlockHeader).Clone(), nil
	}

	headerBytes, err := bhs.db.Get(bhs.hashAsKey(blockHash))
	if err != nil {
		return nil, err
	}
	header, err := blocks.HeaderFromBytes(headerBytes)
	if err != nil {
		return nil, err
	}
	bhs.cache.Add(blockHash, header.Clone())
	return header, nil
}

// Has returns whether a block header with a given hash exists in the store.
func (bhs *blockHeaderStore) Has(blockHash externalapi.DomainHash) (bool, error) {
	bhs.lock.RLock()
	defer bhs.lock.RUnlock()

	if bhs.cache.Has(blockHash) {
		return true, nil
	}
	return bhs.db.Has(bhs.hashAsKey(blockHash))
}

// Count returns the number of stored headers.
func (bhs *blockHeaderStore) Count() uint64 {
	bhs.lock.RLock()
	defer bhs.lock.RUnlock()

	return bhs.countCached
}

func (bhs *blockHeaderStore) hashAsKey(hash externalapi.DomainHash) *database.Key {
	return bhs.bucket.Key(hash.ByteSlice())
}

func serializeHeaderCount(count uint64) []byte {
	buf := &bytes.Buffer{}
	// Writes to a bytes.Buffer never fail
	_ = binaryserializer.PutUint64(buf, count)
	return buf.Bytes()
}
