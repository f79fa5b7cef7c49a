package store

import (
	"encoding/binary"

	"github.com/MixinNetwork/mixin/common"
	"github.com/MixinNetwork/nfc/nft"
	"github.com/dgraph-io/badger/v3"
)

const (
	keyCollectionNextId = "NFT:COLLECTION:NEXT"

	prefixCollectionPayload = "NFT:COLLECTION:PAYLOAD:"
	prefixItemPayload       = "NFT:ITEM:PAYLOAD:"
	prefixItemOwner         = "NFT:ITEM:OWNER:"
	prefixItemClaim         = "NFT:ITEM:CLAIM:"
)

type collectionRecord struct {
	Details *nft.CollectionDetails
	Config  *nft.CollectionConfig
}

func (bs *BadgerStore) NextCollectionId() (nft.CollectionId, error) {
	var id nft.CollectionId
	err := bs.view(func(txn *badger.Txn) error {
		next, err := readNextCollectionId(txn)
		id = next
		return err
	})
	return id, err
}

// WriteCollection writes a new collection and moves the id counter past
// it. An id below the counter was already handed out and is never
// written again.
func (bs *BadgerStore) WriteCollection(details *nft.CollectionDetails, config *nft.CollectionConfig) error {
	return bs.update(func(txn *badger.Txn) error {
		next, err := readNextCollectionId(txn)
		if err != nil {
			return err
		}
		if details.Id < next {
			panic(details.Id)
		}

		key := append([]byte(prefixCollectionPayload), collectionToBytes(details.Id)...)
		val := common.MsgpackMarshalPanic(&collectionRecord{Details: details, Config: config})
		err = txn.Set(key, val)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyCollectionNextId), collectionToBytes(details.Id+1))
	})
}

func (bs *BadgerStore) ReadCollection(id nft.CollectionId) (*nft.CollectionDetails, *nft.CollectionConfig, error) {
	var rec *collectionRecord
	err := bs.view(func(txn *badger.Txn) error {
		r, err := readCollection(txn, id)
		rec = r
		return err
	})
	if err != nil || rec == nil {
		return nil, nil, err
	}
	return rec.Details, rec.Config, nil
}

// WriteMintItem stores a fresh item with its owner index and the updated
// collection details in one transaction.
func (bs *BadgerStore) WriteMintItem(details *nft.CollectionDetails, item *nft.Item) error {
	return bs.update(func(txn *badger.Txn) error {
		old, err := readItem(txn, item.Collection, item.Id)
		if err != nil {
			return err
		} else if old != nil {
			panic(item.Id)
		}

		rec, err := readCollection(txn, item.Collection)
		if err != nil {
			return err
		}
		if rec == nil || details.Id != item.Collection {
			panic(item.Collection)
		}
		rec.Details = details

		key := append([]byte(prefixCollectionPayload), collectionToBytes(details.Id)...)
		err = txn.Set(key, common.MsgpackMarshalPanic(rec))
		if err != nil {
			return err
		}
		key = itemKey(prefixItemPayload, item.Collection, item.Id)
		err = txn.Set(key, common.MsgpackMarshalPanic(item))
		if err != nil {
			return err
		}
		key = itemKey(prefixItemOwner+item.Owner, item.Collection, item.Id)
		return txn.Set(key, []byte{1})
	})
}

func (bs *BadgerStore) ReadItem(collection nft.CollectionId, id nft.ItemId) (*nft.Item, error) {
	var item *nft.Item
	err := bs.view(func(txn *badger.Txn) error {
		i, err := readItem(txn, collection, id)
		item = i
		return err
	})
	return item, err
}

func (bs *BadgerStore) ListItemsForOwner(owner string, limit int) ([]*nft.Item, error) {
	var items []*nft.Item
	err := bs.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefixItemOwner + owner)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.Valid(); it.Next() {
			key := it.Item().Key()
			ids := key[len(opts.Prefix):]
			collection := nft.CollectionId(binary.BigEndian.Uint32(ids[:4]))
			id := nft.ItemId(binary.BigEndian.Uint32(ids[4:8]))
			item, err := readItem(txn, collection, id)
			if err != nil {
				return err
			}
			items = append(items, item)
			if len(items) == limit {
				break
			}
		}
		return nil
	})
	return items, err
}

func (bs *BadgerStore) WriteItemClaim(holder nft.CollectionId, item nft.ItemId, claimer nft.CollectionId) error {
	return bs.update(func(txn *badger.Txn) error {
		key := itemKey(prefixItemClaim, holder, item)
		key = append(key, collectionToBytes(claimer)...)
		return txn.Set(key, []byte{1})
	})
}

func (bs *BadgerStore) ReadItemClaim(holder nft.CollectionId, item nft.ItemId, claimer nft.CollectionId) (bool, error) {
	var claimed bool
	err := bs.view(func(txn *badger.Txn) error {
		key := itemKey(prefixItemClaim, holder, item)
		key = append(key, collectionToBytes(claimer)...)
		val, err := readValue(txn, key)
		claimed = len(val) > 0
		return err
	})
	return claimed, err
}

func readNextCollectionId(txn *badger.Txn) (nft.CollectionId, error) {
	val, err := readValue(txn, []byte(keyCollectionNextId))
	if err != nil || len(val) == 0 {
		return 0, err
	}
	return nft.CollectionId(binary.BigEndian.Uint32(val)), nil
}

func readCollection(txn *badger.Txn, id nft.CollectionId) (*collectionRecord, error) {
	key := append([]byte(prefixCollectionPayload), collectionToBytes(id)...)
	val, err := readValue(txn, key)
	if err != nil || val == nil {
		return nil, err
	}
	var rec collectionRecord
	err = common.MsgpackUnmarshal(val, &rec)
	return &rec, err
}

func readItem(txn *badger.Txn, collection nft.CollectionId, id nft.ItemId) (*nft.Item, error) {
	val, err := readValue(txn, itemKey(prefixItemPayload, collection, id))
	if err != nil || val == nil {
		return nil, err
	}
	var item nft.Item
	err = common.MsgpackUnmarshal(val, &item)
	return &item, err
}
