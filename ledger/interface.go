package ledger

import (
	"context"
)

type Store interface {
	WriteProperty(key, val []byte) error
	ReadProperty(key []byte) ([]byte, error)

	AppendRequest(req *Request) (*Request, error)
	WriteRequest(req *Request) error
	ReadRequest(traceId string) (*Request, error)
	ListRequests(state int, limit int) ([]*Request, error)
}

// Worker applies one request. An error wrapped by Reject fails the request,
// any other error is retried later. Either way the worker leaves no state
// change behind, and a request it already applied must be a no-op.
type Worker interface {
	ProcessRequest(context.Context, *Request) error
}
