package store

import (
	"encoding/binary"

	"github.com/MixinNetwork/nfc/nft"
	"github.com/dgraph-io/badger/v3"
)

const prefixWorkerCollection = "WORKER:COLLECTION:"

func (bs *BadgerStore) WriteWorkerCollection(worker string, id nft.CollectionId) error {
	return bs.update(func(txn *badger.Txn) error {
		key := []byte(prefixWorkerCollection + worker)
		old, err := readValue(txn, key)
		if err != nil {
			return err
		} else if old != nil {
			panic(worker)
		}
		return txn.Set(key, collectionToBytes(id))
	})
}

func (bs *BadgerStore) ReadWorkerCollection(worker string) (nft.CollectionId, bool, error) {
	var val []byte
	err := bs.view(func(txn *badger.Txn) error {
		v, err := readValue(txn, []byte(prefixWorkerCollection+worker))
		val = v
		return err
	})
	if err != nil || len(val) != 4 {
		return 0, false, err
	}
	return nft.CollectionId(binary.BigEndian.Uint32(val)), true, nil
}
