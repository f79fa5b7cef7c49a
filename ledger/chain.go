package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/MixinNetwork/mixin/logger"
)

// Chain applies queued requests one at a time in sequence order. It is
// the only writer of request state, workers never run concurrently.
type Chain struct {
	sync.Mutex
	store   Store
	clock   *Clock
	workers []Worker
	batch   int
}

func BuildChain(ctx context.Context, store Store) (*Chain, error) {
	clock, err := NewClock(store)
	if err != nil {
		return nil, err
	}
	return &Chain{
		store: store,
		clock: clock,
		batch: 16,
	}, nil
}

func (c *Chain) AddWorker(wkr Worker) {
	c.workers = append(c.workers, wkr)
}

func (c *Chain) Height() uint64 {
	return c.clock.Height()
}

// Submit queues envelope from sender. The trace id makes submission
// idempotent, when empty it is derived from the envelope itself so a
// replayed envelope is queued only once.
func (c *Chain) Submit(ctx context.Context, sender, envelope, traceId string) (*Request, error) {
	if envelope == "" {
		return nil, fmt.Errorf("empty envelope from %s", sender)
	}
	if traceId == "" {
		traceId = crypto.NewHash([]byte(envelope)).String()
	}
	c.Lock()
	defer c.Unlock()

	now := time.Now()
	req, err := c.store.AppendRequest(&Request{
		TraceId:   traceId,
		Sender:    sender,
		Envelope:  envelope,
		State:     RequestStatePending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	logger.Verbosef("Chain.Submit(%s, %s) => %d\n", sender, traceId, req.Sequence)
	return req, nil
}

func (c *Chain) Run(ctx context.Context) {
	for ctx.Err() == nil {
		n, err := c.Step(ctx)
		if err != nil {
			logger.Printf("Chain.Step() => %v\n", err)
		}
		if n == 0 || err != nil {
			time.Sleep(time.Second)
		}
	}
}

// Step applies up to one batch of pending requests and reports how many
// were applied.
func (c *Chain) Step(ctx context.Context) (int, error) {
	reqs, err := c.store.ListRequests(RequestStatePending, c.batch)
	if err != nil {
		return 0, err
	}
	for i, req := range reqs {
		if ctx.Err() != nil {
			return i, ctx.Err()
		}
		err = c.apply(ctx, req)
		if err != nil {
			return i, err
		}
	}
	return len(reqs), nil
}

// apply runs req through the workers. A rejected request is done with the
// rejection as its result, any other failure leaves it pending. Workers
// must remember which trace ids they already applied, the done mark below
// is written after their own commits.
func (c *Chain) apply(ctx context.Context, req *Request) error {
	req.Height = c.clock.Next()
	req.Result = RequestResultOK
	for _, wkr := range c.workers {
		err := wkr.ProcessRequest(ctx, req)
		if re, ok := rejection(err); ok {
			req.Result = re.Err.Error()
			break
		} else if err != nil {
			logger.Printf("Chain.apply(%d, %s) => %v\n", req.Sequence, req.TraceId, err)
			return err
		}
	}
	logger.Verbosef("Chain.apply(%d, %s, %d) => %s\n", req.Sequence, req.TraceId, req.Height, req.Result)

	req.State = RequestStateDone
	req.UpdatedAt = time.Now()
	return c.store.WriteRequest(req)
}
