package computing

import (
	"github.com/MixinNetwork/mixin/logger"
	"github.com/MixinNetwork/nfc/identity"
	"github.com/MixinNetwork/nfc/nft"
)

// Authorizer builds the mint hook handed to the engine for caller.
type Authorizer func(caller string, witness *nft.MintWitness) nft.Authorize

func AllowAll(string, *nft.MintWitness) nft.Authorize {
	return nft.AllowAll
}

type ServiceConfig struct {
	FixedItemId bool
	Authorizer  Authorizer
}

type Service struct {
	engine   Engine
	workers  WorkerStore
	recorder Recorder
	conf     ServiceConfig
}

func NewService(engine Engine, workers WorkerStore, recorder Recorder, conf ServiceConfig) *Service {
	if conf.Authorizer == nil {
		conf.Authorizer = AllowAll
	}
	return &Service{
		engine:   engine,
		workers:  workers,
		recorder: recorder,
		conf:     conf,
	}
}

// CreateCollection creates a collection owned by the signer with the
// default configuration. A non-empty worker is bound to the new
// collection, a worker holds at most one collection.
func (s *Service) CreateCollection(origin identity.Origin, worker string) (nft.CollectionId, error) {
	who, err := identity.EnsureSigned(origin)
	if err != nil {
		return 0, err
	}
	if worker != "" {
		if !identity.ValidAccount(worker) {
			return 0, ErrInvalidAccount
		}
		_, found, err := s.workers.ReadWorkerCollection(worker)
		if err != nil {
			return 0, err
		}
		if found {
			return 0, ErrWorkerAlreadyAssigned
		}
	}

	id, err := s.engine.CreateCollection(who, who, DefaultCollectionConfig())
	if err != nil {
		return 0, err
	}
	if worker != "" {
		err = s.workers.WriteWorkerCollection(worker, id)
		if err != nil {
			return 0, err
		}
	}

	err = s.recorder.Record(&Event{
		Kind:       EventCollectionCreated,
		Who:        who,
		Worker:     worker,
		Collection: id,
	})
	if err != nil {
		return 0, err
	}
	logger.Verbosef("Service.CreateCollection(%s, %s) => %d\n", who, worker, id)
	return id, nil
}

// Mint mints one item of collection to the signer and returns its id.
func (s *Service) Mint(origin identity.Origin, collection nft.CollectionId, witness *nft.MintWitness) (nft.ItemId, error) {
	who, err := identity.EnsureSigned(origin)
	if err != nil {
		return 0, err
	}

	item := LegacyItemId
	if !s.conf.FixedItemId {
		details, _, err := s.engine.Collection(collection)
		if err != nil {
			return 0, err
		}
		if details == nil {
			return 0, nft.ErrUnknownCollection
		}
		item = details.NextItem
	}

	err = s.engine.Mint(collection, item, who, DefaultItemConfig(), s.conf.Authorizer(who, witness))
	if err != nil {
		return 0, err
	}
	logger.Verbosef("Service.Mint(%s, %d) => %d\n", who, collection, item)
	return item, nil
}

func (s *Service) WorkerCollection(worker string) (nft.CollectionId, error) {
	id, found, err := s.workers.ReadWorkerCollection(worker)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrWorkerNotExists
	}
	return id, nil
}
