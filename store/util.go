package store

import (
	"encoding/binary"

	"github.com/MixinNetwork/nfc/nft"
)

func uint64ToBytes(n uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n)
	return buf
}

func collectionToBytes(id nft.CollectionId) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(id))
	return buf
}

func itemKey(prefix string, collection nft.CollectionId, id nft.ItemId) []byte {
	key := append([]byte(prefix), collectionToBytes(collection)...)
	return binary.BigEndian.AppendUint32(key, uint32(id))
}
