package computing

import (
	"context"

	"github.com/MixinNetwork/nfc/nft"
)

const EventCollectionCreated = "CollectionCreated"

type Event struct {
	Sequence   uint64
	Kind       string
	Who        string
	Worker     string `msgpack:",omitempty"`
	Collection nft.CollectionId
	Height     uint64
	TraceId    string
}

// Recorder receives events of a request. It is only called after the
// engine mutation succeeded.
type Recorder interface {
	Record(ev *Event) error
}

// Listener is notified of events once the request that produced them has
// been committed.
type Listener interface {
	OnEvent(ctx context.Context, ev *Event)
}

// requestRecorder persists events in the request transaction and keeps
// them for notification after commit.
type requestRecorder struct {
	store   Store
	height  uint64
	traceId string
	events  []*Event
}

func (rr *requestRecorder) Record(ev *Event) error {
	ev.Height = rr.height
	ev.TraceId = rr.traceId
	err := rr.store.WriteEvent(ev)
	if err != nil {
		return err
	}
	rr.events = append(rr.events, ev)
	return nil
}
