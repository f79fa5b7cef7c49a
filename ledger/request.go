package ledger

import (
	"time"
)

const (
	RequestStatePending = 10
	RequestStateDone    = 11

	RequestResultOK = "OK"
)

// Request is a signed envelope queued for sequential application. Sequence
// is assigned by the store on append and orders all requests.
type Request struct {
	Sequence  uint64
	TraceId   string
	Sender    string
	Envelope  string
	State     int
	Height    uint64
	Result    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Request) Failed() bool {
	return r.State == RequestStateDone && r.Result != RequestResultOK
}
