package computing

import (
	"encoding/json"

	"github.com/MixinNetwork/nfc/nft"
)

const (
	CallCreateCollection = "create_collection"
	CallMint             = "mint"
)

// Call is the payload of a request envelope.
type Call struct {
	Method     string  `json:"method"`
	Worker     string  `json:"worker,omitempty"`
	Collection *uint32 `json:"collection,omitempty"`
	Witness    *uint32 `json:"witness,omitempty"`
}

func CreateCollectionCall(worker string) *Call {
	return &Call{Method: CallCreateCollection, Worker: worker}
}

func MintCall(collection nft.CollectionId) *Call {
	id := uint32(collection)
	return &Call{Method: CallMint, Collection: &id}
}

func DecodeCall(payload json.RawMessage) (*Call, error) {
	var call Call
	err := json.Unmarshal(payload, &call)
	if err != nil {
		return nil, ErrInvalidCall
	}
	switch call.Method {
	case CallCreateCollection:
	case CallMint:
		if call.Collection == nil {
			return nil, ErrInvalidCall
		}
	default:
		return nil, ErrInvalidCall
	}
	return &call, nil
}

func (c *Call) witness() *nft.MintWitness {
	if c.Witness == nil {
		return nil
	}
	return &nft.MintWitness{OwnedItem: nft.ItemId(*c.Witness)}
}
