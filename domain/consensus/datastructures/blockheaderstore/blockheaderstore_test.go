package blockheaderstore

import (
	"reflect"
	"testing"

	"github.com/prismnet/prismd/domain/consensus/model/blocks"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/infrastructure/db/database"
	"github.com/prismnet/prismd/infrastructure/db/database/ldb"
)

func openDatabase(t *testing.T, testName string, path string) (db database.Database, teardownFunc func()) {
	db, err := ldb.NewLevelDB(path)
	if err != nil {
		t.Fatalf("%s: NewLevelDB unexpectedly failed: %s", testName, err)
	}
	return db, func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly failed: %s", testName, err)
		}
	}
}

func TestBlockHeaderStore(t *testing.T) {
	for _, cacheSize := range []int{0, 10} {
		db, teardownFunc := openDatabase(t, "TestBlockHeaderStore", t.TempDir())

		store, err := New(db, cacheSize)
		if err != nil {
			t.Fatalf("TestBlockHeaderStore: New unexpectedly failed: %+v", err)
		}
		header := blocks.NewBlockHeader(externalapi.DomainHash{1}, externalapi.DomainHash{2},
			externalapi.DomainHash{3}, 12345)
		blockHash := header.Hash()

		_, err = store.Header(blockHash)
		if !database.IsNotFoundError(err) {
			t.Fatalf("TestBlockHeaderStore: Header of a missing block returned wrong error: %v", err)
		}

		for i := 0; i < 2; i++ {
			err = store.Insert(header)
			if err != nil {
				t.Fatalf("TestBlockHeaderStore: Insert unexpectedly failed: %+v", err)
			}
		}
		if store.Count() != 1 {
			t.Fatalf("TestBlockHeaderStore: Count is %d after inserting the same header twice", store.Count())
		}

		exists, err := store.Has(blockHash)
		if err != nil {
			t.Fatalf("TestBlockHeaderStore: Has unexpectedly failed: %+v", err)
		}
		if !exists {
			t.Fatalf("TestBlockHeaderStore: inserted header is missing")
		}

		storedHeader, err := store.Header(blockHash)
		if err != nil {
			t.Fatalf("TestBlockHeaderStore: Header unexpectedly failed: %+v", err)
		}
		if !reflect.DeepEqual(storedHeader, header) {
			t.Fatalf("TestBlockHeaderStore: got %s, want %s", storedHeader, header)
		}

		// Mutating a returned header must not affect the store
		storedHeader.Nonce++
		storedHeader, err = store.Header(blockHash)
		if err != nil {
			t.Fatalf("TestBlockHeaderStore: Header unexpectedly failed: %+v", err)
		}
		if storedHeader.Hash() != blockHash {
			t.Fatalf("TestBlockHeaderStore: stored header was modified through a returned copy")
		}

		teardownFunc()
	}
}

func TestBlockHeaderStoreCountSurvivesReopen(t *testing.T) {
	path := t.TempDir()
	db, teardownFunc := openDatabase(t, "TestBlockHeaderStoreCountSurvivesReopen", path)

	store, err := New(db, 10)
	if err != nil {
		t.Fatalf("TestBlockHeaderStoreCountSurvivesReopen: New unexpectedly failed: %+v", err)
	}
	for nonce := uint32(0); nonce < 3; nonce++ {
		err = store.Insert(blocks.NewBlockHeader(externalapi.DomainHash{}, externalapi.DomainHash{},
			externalapi.DomainHash{}, nonce))
		if err != nil {
			t.Fatalf("TestBlockHeaderStoreCountSurvivesReopen: Insert unexpectedly failed: %+v", err)
		}
	}
	teardownFunc()

	db, teardownFunc = openDatabase(t, "TestBlockHeaderStoreCountSurvivesReopen", path)
	defer teardownFunc()
	store, err = New(db, 10)
	if err != nil {
		t.Fatalf("TestBlockHeaderStoreCountSurvivesReopen: New unexpectedly failed: %+v", err)
	}
	if store.Count() != 3 {
		t.Fatalf("TestBlockHeaderStoreCountSurvivesReopen: Count is %d, want 3", store.Count())
	}
}
