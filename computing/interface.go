package computing

import (
	"encoding/json"

	"github.com/MixinNetwork/nfc/identity"
	"github.com/MixinNetwork/nfc/nft"
)

type Engine interface {
	nft.Inspect
	nft.Create
	nft.Mutate
}

type WorkerStore interface {
	WriteWorkerCollection(worker string, id nft.CollectionId) error
	ReadWorkerCollection(worker string) (nft.CollectionId, bool, error)
}

// Store is everything a request touches, bound to one transaction.
type Store interface {
	nft.Store
	nft.Currency
	WorkerStore
	WriteEvent(ev *Event) error

	WriteRequestApplied(traceId string) error
	ReadRequestApplied(traceId string) (bool, error)
}

// Transactor runs fn in a single transaction, committed only when fn
// returns nil.
type Transactor interface {
	Atomic(fn func(Store) error) error
}

type Opener interface {
	Open(envelope string) (identity.Origin, json.RawMessage, error)
}
