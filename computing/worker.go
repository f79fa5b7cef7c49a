package computing

import (
	"context"
	"errors"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/MixinNetwork/nfc/identity"
	"github.com/MixinNetwork/nfc/ledger"
	"github.com/MixinNetwork/nfc/nft"
	"github.com/shopspring/decimal"
)

type WorkerConfig struct {
	CollectionDeposit   decimal.Decimal
	FixedItemId         bool
	EnforceMintSettings bool
}

// Worker applies request envelopes on the ledger. Each request runs in one
// store transaction, a failure leaves nothing behind and emits nothing.
type Worker struct {
	store     Transactor
	opener    Opener
	conf      WorkerConfig
	listeners []Listener
}

func NewWorker(store Transactor, opener Opener, conf WorkerConfig) *Worker {
	return &Worker{
		store:  store,
		opener: opener,
		conf:   conf,
	}
}

func (w *Worker) AddListener(l Listener) {
	w.listeners = append(w.listeners, l)
}

// ProcessRequest applies req at most once. The trace id is marked applied
// in the same transaction as the call, so a retried request commits
// nothing and notifies nobody. Failures of the call itself are rejections,
// store failures are returned as is for the chain to retry.
func (w *Worker) ProcessRequest(ctx context.Context, req *ledger.Request) error {
	origin, payload, err := w.opener.Open(req.Envelope)
	if err != nil {
		return reject(err)
	}
	call, err := DecodeCall(payload)
	if err != nil {
		return reject(err)
	}

	var events []*Event
	err = w.store.Atomic(func(tx Store) error {
		applied, err := tx.ReadRequestApplied(req.TraceId)
		if err != nil || applied {
			return err
		}
		rec := &requestRecorder{store: tx, height: req.Height, traceId: req.TraceId}
		svc := w.buildService(tx, rec, req.Height)
		err = w.dispatch(svc, origin, call)
		if err != nil {
			return err
		}
		events = rec.events
		return tx.WriteRequestApplied(req.TraceId)
	})
	if err != nil {
		logger.Verbosef("Worker.ProcessRequest(%s, %s) => %v\n", req.TraceId, call.Method, err)
		return reject(err)
	}

	for _, ev := range events {
		for _, l := range w.listeners {
			l.OnEvent(ctx, ev)
		}
	}
	return nil
}

func (w *Worker) buildService(tx Store, rec Recorder, height uint64) *Service {
	conf := ServiceConfig{FixedItemId: w.conf.FixedItemId}
	if w.conf.EnforceMintSettings {
		conf.Authorizer = func(caller string, witness *nft.MintWitness) nft.Authorize {
			p := &nft.MintSettingsPolicy{
				Caller:   caller,
				Height:   height,
				Witness:  witness,
				Store:    tx,
				Currency: tx,
			}
			return p.Authorize
		}
	}
	engine := nft.NewEngine(tx, tx, w.conf.CollectionDeposit)
	return NewService(engine, tx, rec, conf)
}

func (w *Worker) dispatch(svc *Service, origin identity.Origin, call *Call) error {
	switch call.Method {
	case CallCreateCollection:
		_, err := svc.CreateCollection(origin, call.Worker)
		return err
	case CallMint:
		_, err := svc.Mint(origin, nft.CollectionId(*call.Collection), call.witness())
		return err
	}
	return ErrInvalidCall
}

func reject(err error) error {
	var ne *nft.Error
	var ce *Error
	if errors.As(err, &ne) || errors.As(err, &ce) || errors.Is(err, identity.ErrUnauthenticated) {
		return ledger.Reject(err)
	}
	return err
}
