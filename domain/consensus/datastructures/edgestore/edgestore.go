package edgestore

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/prismnet/prismd/domain/consensus/model"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/utils/multiset"
	"github.com/prismnet/prismd/domain/consensus/utils/serialization"
	"github.com/prismnet/prismd/infrastructure/db/database"
)

var bucketName = []byte("edges")
var multisetKeyName = []byte("edges-multiset")

// edgeStore keeps every edge under the bucket of its source block, keyed
// by the encoded edge followed by the target hash.
type edgeStore struct {
	lock sync.RWMutex

	db          database.Database
	bucket      *database.Bucket
	multisetKey *database.Key
	multiset    model.Multiset
}

// New instantiates a new EdgeStore over db, restoring the edge-set
// commitment if db already holds one.
func New(db database.Database) (model.EdgeStore, error) {
	es := &edgeStore{
		db:          db,
		bucket:      database.MakeBucket(bucketName),
		multisetKey: database.MakeBucket().Key(multisetKeyName),
	}

	err := es.initializeMultiset()
	if err != nil {
		return nil, err
	}
	return es, nil
}

func (es *edgeStore) initializeMultiset() error {
	multisetBytes, err := es.db.Get(es.multisetKey)
	if database.IsNotFoundError(err) {
		es.multiset = multiset.New()
		return nil
	}
	if err != nil {
		return err
	}
	es.multiset, err = multiset.FromBytes(multisetBytes)
	return err
}

// Insert stores every given forward edge and its reverse in a single
// transaction. Edges that are already stored are skipped.
func (es *edgeStore) Insert(edges ...externalapi.GraphEdge) error {
	es.lock.Lock()
	defer es.lock.Unlock()

	dbTx, err := es.db.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	newMultiset := es.multiset.Clone()
	inserted := make(map[externalapi.GraphEdge]struct{}, len(edges))
	for _, edge := range edges {
		if !edge.Edge.IsForward() {
			return errors.Errorf("cannot insert reverse edge %s, only forward edges are accepted", edge)
		}
		if _, ok := inserted[edge]; ok {
			continue
		}
		key := es.edgeKey(edge)
		exists, err := dbTx.Has(key)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		err = dbTx.Put(key, []byte{})
		if err != nil {
			return err
		}
		err = dbTx.Put(es.edgeKey(edge.Reverse()), []byte{})
		if err != nil {
			return err
		}
		newMultiset.Add(serialization.SerializeGraphEdge(edge))
		inserted[edge] = struct{}{}
	}
	if len(inserted) == 0 {
		return nil
	}

	err = dbTx.Put(es.multisetKey, newMultiset.Serialize())
	if err != nil {
		return err
	}
	err = dbTx.Commit()
	if err != nil {
		return err
	}

	es.multiset = newMultiset
	log.Debugf("Inserted %d new edges (%d given)", len(inserted), len(edges))
	return nil
}

// Remove deletes every given forward edge and its reverse in a single
// transaction. Edges that aren't stored are skipped.
func (es *edgeStore) Remove(edges ...externalapi.GraphEdge) error {
	es.lock.Lock()
	defer es.lock.Unlock()

	dbTx, err := es.db.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	newMultiset := es.multiset.Clone()
	removed := make(map[externalapi.GraphEdge]struct{}, len(edges))
	for _, edge := range edges {
		if !edge.Edge.IsForward() {
			return errors.Errorf("cannot remove reverse edge %s, only forward edges are accepted", edge)
		}
		if _, ok := removed[edge]; ok {
			continue
		}
		key := es.edgeKey(edge)
		exists, err := dbTx.Has(key)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}

		err = dbTx.Delete(key)
		if err != nil {
			return err
		}
		err = dbTx.Delete(es.edgeKey(edge.Reverse()))
		if err != nil {
			return err
		}
		newMultiset.Remove(serialization.SerializeGraphEdge(edge))
		removed[edge] = struct{}{}
	}
	if len(removed) == 0 {
		return nil
	}

	err = dbTx.Put(es.multisetKey, newMultiset.Serialize())
	if err != nil {
		return err
	}
	err = dbTx.Commit()
	if err != nil {
		return err
	}

	es.multiset = newMultiset
	log.Debugf("Removed %d edges (%d given)", len(removed), len(edges))
	return nil
}

// Edges returns every stored edge leaving blockHash, forward and reverse,
// ordered by kind, index and target.
func (es *edgeStore) Edges(blockHash externalapi.DomainHash) ([]externalapi.GraphEdge, error) {
	es.lock.RLock()
	defer es.lock.RUnlock()

	cursor, err := es.db.Cursor(es.bucket.Bucket(blockHash.ByteSlice()))
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var edges []externalapi.GraphEdge
	for ok := cursor.First(); ok; ok = cursor.Next() {
		edge, err := es.currentEdge(cursor, blockHash)
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

// EdgesOfKind returns the stored edges of the given kind leaving blockHash.
func (es *edgeStore) EdgesOfKind(blockHash externalapi.DomainHash, kind externalapi.EdgeKind) (
	[]externalapi.GraphEdge, error) {

	es.lock.RLock()
	defer es.lock.RUnlock()

	blockBucket := es.bucket.Bucket(blockHash.ByteSlice())
	cursor, err := es.db.Cursor(blockBucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	// Keys start with the kind byte, so the edges of a kind are contiguous
	err = cursor.Seek(blockBucket.Key([]byte{uint8(kind)}))
	if database.IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var edges []externalapi.GraphEdge
	for ok := true; ok; ok = cursor.Next() {
		edge, err := es.currentEdge(cursor, blockHash)
		if err != nil {
			return nil, err
		}
		if edge.Edge.Kind() != kind {
			break
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

func (es *edgeStore) currentEdge(cursor database.Cursor, blockHash externalapi.DomainHash) (
	externalapi.GraphEdge, error) {

	key, err := cursor.Key()
	if err != nil {
		return externalapi.GraphEdge{}, err
	}
	edge, to, err := deserializeEdgeKeySuffix(key.Suffix())
	if err != nil {
		return externalapi.GraphEdge{}, err
	}
	return externalapi.GraphEdge{From: blockHash, To: to, Edge: edge}, nil
}

// Has returns whether the given edge, forward or reverse, is stored.
func (es *edgeStore) Has(edge externalapi.GraphEdge) (bool, error) {
	es.lock.RLock()
	defer es.lock.RUnlock()

	return es.db.Has(es.edgeKey(edge))
}

// Commitment returns the multiset hash of every stored forward edge.
func (es *edgeStore) Commitment() externalapi.DomainHash {
	es.lock.RLock()
	defer es.lock.RUnlock()

	return es.multiset.Hash()
}

func (es *edgeStore) edgeKey(edge externalapi.GraphEdge) *database.Key {
	suffix := make([]byte, 0, edgeKeySuffixSize)
	suffix = append(suffix, serialization.SerializeEdge(edge.Edge)...)
	suffix = append(suffix, edge.To.ByteSlice()...)
	return es.bucket.Bucket(edge.From.ByteSlice()).Key(suffix)
}

const edgeKeySuffixSize = serialization.EdgeSize + externalapi.DomainHashSize

func deserializeEdgeKeySuffix(suffix []byte) (externalapi.Edge, externalapi.DomainHash, error) {
	if len(suffix) != edgeKeySuffixSize {
		return externalapi.Edge{}, externalapi.DomainHash{}, errors.Errorf(
			"edge key suffix is %d bytes, while it should be %d", len(suffix), edgeKeySuffixSize)
	}
	edge, err := serialization.DeserializeEdge(suffix[:serialization.EdgeSize])
	if err != nil {
		return externalapi.Edge{}, externalapi.DomainHash{}, err
	}
	to, err := externalapi.NewDomainHashFromByteSlice(suffix[serialization.EdgeSize:])
	if err != nil {
		return externalapi.Edge{}, externalapi.DomainHash{}, err
	}
	return edge, to, nil
}
