package nft

import (
	"errors"
	"fmt"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/shopspring/decimal"
)

// Engine owns collection and item storage, the collection id counter and
// deposits. It performs no locking, callers serialize requests and run
// each one inside a single store transaction.
type Engine struct {
	store    Store
	currency Currency
	deposit  decimal.Decimal
}

func NewEngine(store Store, currency Currency, deposit decimal.Decimal) *Engine {
	if deposit.IsNegative() {
		panic(deposit.String())
	}
	return &Engine{
		store:    store,
		currency: currency,
		deposit:  deposit,
	}
}

func (e *Engine) NextCollectionId() (CollectionId, error) {
	return e.store.NextCollectionId()
}

func (e *Engine) Collection(id CollectionId) (*CollectionDetails, *CollectionConfig, error) {
	return e.store.ReadCollection(id)
}

func (e *Engine) Item(collection CollectionId, id ItemId) (*Item, error) {
	return e.store.ReadItem(collection, id)
}

func (e *Engine) CreateCollection(creator, owner string, config *CollectionConfig) (CollectionId, error) {
	if config == nil {
		return 0, ErrInvalidConfig
	}
	if err := config.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	id, err := e.store.NextCollectionId()
	if err != nil {
		return 0, err
	}
	if id == MaxCollectionId {
		return 0, ErrCollectionIdExhausted
	}

	deposit := decimal.Zero
	if !config.Settings.IsDisabled(CollectionDepositRequired) {
		deposit = e.deposit
	}
	if deposit.IsPositive() {
		err = e.currency.Reserve(owner, deposit)
		if errors.Is(err, ErrInsufficientBalance) {
			return 0, ErrInsufficientDeposit
		} else if err != nil {
			return 0, err
		}
	}

	details := &CollectionDetails{
		Id:      id,
		Owner:   owner,
		Creator: creator,
		Deposit: deposit.String(),
	}
	err = e.store.WriteCollection(details, config)
	if err != nil {
		return 0, err
	}
	logger.Verbosef("Engine.CreateCollection(%s, %s) => %d\n", creator, owner, id)
	return id, nil
}

// Mint creates item in collection for recipient. The authorize hook runs
// last, after the existence and supply checks, and before anything is
// written. A nil hook behaves like AllowAll. A hook may itself write, such
// as a witness claim or a price transfer, so a failing Mint must run in a
// transaction the caller discards.
func (e *Engine) Mint(collection CollectionId, item ItemId, recipient string, config *ItemConfig, authorize Authorize) error {
	if config == nil {
		return ErrInvalidConfig
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	details, cc, err := e.store.ReadCollection(collection)
	if err != nil {
		return err
	}
	if details == nil {
		return ErrUnknownCollection
	}
	old, err := e.store.ReadItem(collection, item)
	if err != nil {
		return err
	}
	if old != nil {
		return ErrAlreadyExists
	}

	if cc.MaxSupply != nil && details.Items >= *cc.MaxSupply {
		return ErrMaxSupplyReached
	}
	if authorize != nil {
		err = authorize(details, cc)
		if err != nil {
			return err
		}
	}

	details.Items += 1
	if item >= details.NextItem && item < MaxItemId {
		details.NextItem = item + 1
	} else if item == MaxItemId {
		details.NextItem = MaxItemId
	}
	err = e.store.WriteMintItem(details, &Item{
		Collection: collection,
		Id:         item,
		Owner:      recipient,
		Config:     *config,
	})
	if err != nil {
		return err
	}
	logger.Verbosef("Engine.Mint(%d, %d, %s)\n", collection, item, recipient)
	return nil
}
