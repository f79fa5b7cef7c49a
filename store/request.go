package store

import (
	"encoding/binary"

	"github.com/MixinNetwork/mixin/common"
	"github.com/MixinNetwork/nfc/ledger"
	"github.com/dgraph-io/badger/v3"
)

const (
	keyRequestSequence   = "REQUEST:SEQUENCE"
	prefixRequestPayload = "REQUEST:PAYLOAD:"
	prefixRequestState   = "REQUEST:STATE:"
	prefixRequestApplied = "REQUEST:APPLIED:"
)

// AppendRequest queues req with the next sequence. A request with a known
// trace id is not queued again, the stored one is returned instead.
func (bs *BadgerStore) AppendRequest(req *ledger.Request) (*ledger.Request, error) {
	var res *ledger.Request
	err := bs.update(func(txn *badger.Txn) error {
		old, err := readRequest(txn, req.TraceId)
		if err != nil || old != nil {
			res = old
			return err
		}

		val, err := readValue(txn, []byte(keyRequestSequence))
		if err != nil {
			return err
		}
		var seq uint64
		if len(val) == 8 {
			seq = binary.BigEndian.Uint64(val)
		}
		req.Sequence = seq + 1
		err = txn.Set([]byte(keyRequestSequence), uint64ToBytes(req.Sequence))
		if err != nil {
			return err
		}

		res = req
		return writeRequest(txn, req)
	})
	return res, err
}

func (bs *BadgerStore) WriteRequest(req *ledger.Request) error {
	return bs.update(func(txn *badger.Txn) error {
		old, err := readRequest(txn, req.TraceId)
		if err != nil {
			return err
		}
		if old == nil || old.Sequence != req.Sequence {
			panic(req.TraceId)
		}
		if old.State > req.State {
			panic(old.State)
		}
		if old.State != req.State {
			err = txn.Delete(buildRequestStateKey(old))
			if err != nil {
				return err
			}
		}
		return writeRequest(txn, req)
	})
}

func (bs *BadgerStore) ReadRequest(traceId string) (*ledger.Request, error) {
	var req *ledger.Request
	err := bs.view(func(txn *badger.Txn) error {
		r, err := readRequest(txn, traceId)
		req = r
		return err
	})
	return req, err
}

func (bs *BadgerStore) ListRequests(state int, limit int) ([]*ledger.Request, error) {
	var reqs []*ledger.Request
	err := bs.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(requestStatePrefix(state))
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.Valid(); it.Next() {
			traceId, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			req, err := readRequest(txn, string(traceId))
			if err != nil {
				return err
			}
			reqs = append(reqs, req)
			if len(reqs) == limit {
				break
			}
		}
		return nil
	})
	return reqs, err
}

// WriteRequestApplied marks the changes of traceId as committed. It is
// written with those changes, independent of the request state index.
func (bs *BadgerStore) WriteRequestApplied(traceId string) error {
	return bs.update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixRequestApplied+traceId), []byte{1})
	})
}

func (bs *BadgerStore) ReadRequestApplied(traceId string) (bool, error) {
	var applied bool
	err := bs.view(func(txn *badger.Txn) error {
		val, err := readValue(txn, []byte(prefixRequestApplied+traceId))
		applied = len(val) > 0
		return err
	})
	return applied, err
}

func writeRequest(txn *badger.Txn, req *ledger.Request) error {
	key := []byte(prefixRequestPayload + req.TraceId)
	err := txn.Set(key, common.MsgpackMarshalPanic(req))
	if err != nil {
		return err
	}
	return txn.Set(buildRequestStateKey(req), []byte(req.TraceId))
}

func readRequest(txn *badger.Txn, traceId string) (*ledger.Request, error) {
	val, err := readValue(txn, []byte(prefixRequestPayload+traceId))
	if err != nil || val == nil {
		return nil, err
	}
	var req ledger.Request
	err = common.MsgpackUnmarshal(val, &req)
	return &req, err
}

func buildRequestStateKey(req *ledger.Request) []byte {
	key := []byte(requestStatePrefix(req.State))
	return append(key, uint64ToBytes(req.Sequence)...)
}

func requestStatePrefix(state int) string {
	prefix := prefixRequestState
	switch state {
	case ledger.RequestStatePending:
		return prefix + "pending"
	case ledger.RequestStateDone:
		return prefix + "doneeee"
	}
	panic(state)
}
