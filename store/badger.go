package store

import (
	"context"
	"time"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/MixinNetwork/nfc/computing"
	"github.com/dgraph-io/badger/v3"
)

// BadgerStore is either bound to the database, each call in its own
// transaction, or to a transaction opened by Atomic.
type BadgerStore struct {
	db  *badger.DB
	txn *badger.Txn
}

func OpenBadger(ctx context.Context, path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	go func() {
		for ctx.Err() == nil && !db.IsClosed() {
			lsm, vlog := db.Size()
			logger.Printf("Badger LSM %d VLOG %d\n", lsm, vlog)
			if lsm > 1024*1024*8 || vlog > 1024*1024*32 {
				err := db.RunValueLogGC(0.5)
				logger.Printf("Badger RunValueLogGC %v\n", err)
			}
			time.Sleep(5 * time.Minute)
		}
	}()

	return &BadgerStore{
		db: db,
	}, nil
}

func OpenBadgerInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{
		db: db,
	}, nil
}

func (bs *BadgerStore) Close() error {
	return bs.db.Close()
}

func (bs *BadgerStore) Badger() *badger.DB {
	return bs.db
}

// Atomic runs fn against a store bound to a single read-write transaction.
// Nested calls join the outer transaction.
func (bs *BadgerStore) Atomic(fn func(computing.Store) error) error {
	if bs.txn != nil {
		return fn(bs)
	}
	return bs.db.Update(func(txn *badger.Txn) error {
		return fn(&BadgerStore{db: bs.db, txn: txn})
	})
}

func (bs *BadgerStore) update(fn func(txn *badger.Txn) error) error {
	if bs.txn != nil {
		return fn(bs.txn)
	}
	return bs.db.Update(fn)
}

func (bs *BadgerStore) view(fn func(txn *badger.Txn) error) error {
	if bs.txn != nil {
		return fn(bs.txn)
	}
	return bs.db.View(fn)
}

func (bs *BadgerStore) WriteProperty(key, val []byte) error {
	return bs.update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

func (bs *BadgerStore) ReadProperty(key []byte) ([]byte, error) {
	var val []byte
	err := bs.view(func(txn *badger.Txn) error {
		v, err := readValue(txn, key)
		val = v
		return err
	})
	return val, err
}

func readValue(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}
