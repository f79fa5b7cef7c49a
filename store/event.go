package store

import (
	"encoding/binary"

	"github.com/MixinNetwork/mixin/common"
	"github.com/MixinNetwork/nfc/computing"
	"github.com/dgraph-io/badger/v3"
)

const (
	keyEventSequence   = "EVENT:SEQUENCE"
	prefixEventPayload = "EVENT:PAYLOAD:"
)

// WriteEvent appends ev to the event log and assigns its sequence,
// starting from 1.
func (bs *BadgerStore) WriteEvent(ev *computing.Event) error {
	return bs.update(func(txn *badger.Txn) error {
		val, err := readValue(txn, []byte(keyEventSequence))
		if err != nil {
			return err
		}
		var seq uint64
		if len(val) == 8 {
			seq = binary.BigEndian.Uint64(val)
		}
		seq += 1
		ev.Sequence = seq

		err = txn.Set([]byte(keyEventSequence), uint64ToBytes(seq))
		if err != nil {
			return err
		}
		key := append([]byte(prefixEventPayload), uint64ToBytes(seq)...)
		return txn.Set(key, common.MsgpackMarshalPanic(ev))
	})
}

// ListEvents returns up to limit events with a sequence after offset.
func (bs *BadgerStore) ListEvents(offset uint64, limit int) ([]*computing.Event, error) {
	var events []*computing.Event
	err := bs.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixEventPayload)
		it := txn.NewIterator(opts)
		defer it.Close()

		start := append([]byte(prefixEventPayload), uint64ToBytes(offset+1)...)
		for it.Seek(start); it.Valid(); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var ev computing.Event
			err = common.MsgpackUnmarshal(val, &ev)
			if err != nil {
				return err
			}
			events = append(events, &ev)
			if len(events) == limit {
				break
			}
		}
		return nil
	})
	return events, err
}
