package computing_test

import (
	"testing"

	"github.com/MixinNetwork/nfc/computing"
	"github.com/MixinNetwork/nfc/identity"
	"github.com/MixinNetwork/nfc/nft"
	"github.com/MixinNetwork/nfc/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice  = "a3a4d5f0-1c2b-4c8e-9f10-6a7b8c9d0e1f"
	bob    = "b4b5e6a1-2d3c-4d9f-8a21-7b8c9d0e1f2a"
	worker = "c5c6f7b2-3e4d-4e0a-9b32-8c9d0e1f2a3b"
)

type eventLog struct {
	events []*computing.Event
}

func (l *eventLog) Record(ev *computing.Event) error {
	l.events = append(l.events, ev)
	return nil
}

func testService(t *testing.T, conf computing.ServiceConfig) (*computing.Service, *eventLog, *store.BadgerStore) {
	db, err := store.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := &eventLog{}
	engine := nft.NewEngine(db, db, decimal.Zero)
	return computing.NewService(engine, db, log, conf), log, db
}

func TestService_CreateCollection(t *testing.T) {
	svc, log, db := testService(t, computing.ServiceConfig{})

	first, err := svc.CreateCollection(identity.Signed(alice), "")
	require.NoError(t, err)
	second, err := svc.CreateCollection(identity.Signed(alice), "")
	require.NoError(t, err)
	assert.Equal(t, nft.CollectionId(0), first)
	assert.Equal(t, nft.CollectionId(1), second)

	details, config, err := db.ReadCollection(first)
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, alice, details.Owner)
	assert.Equal(t, alice, details.Creator)
	assert.Equal(t, computing.DefaultCollectionConfig(), config)

	require.Len(t, log.events, 2)
	assert.Equal(t, computing.EventCollectionCreated, log.events[0].Kind)
	assert.Equal(t, alice, log.events[0].Who)
	assert.Equal(t, first, log.events[0].Collection)
	assert.Empty(t, log.events[0].Worker)
	assert.Equal(t, second, log.events[1].Collection)
}

func TestService_CreateCollectionUnsigned(t *testing.T) {
	svc, log, db := testService(t, computing.ServiceConfig{})

	_, err := svc.CreateCollection(identity.Origin{Account: alice}, "")
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
	_, err = svc.CreateCollection(identity.Origin{}, worker)
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)

	assert.Empty(t, log.events)
	next, err := db.NextCollectionId()
	require.NoError(t, err)
	assert.Equal(t, nft.CollectionId(0), next)
}

func TestService_CreateCollectionForWorker(t *testing.T) {
	svc, log, _ := testService(t, computing.ServiceConfig{})

	_, err := svc.WorkerCollection(worker)
	assert.ErrorIs(t, err, computing.ErrWorkerNotExists)

	id, err := svc.CreateCollection(identity.Signed(alice), worker)
	require.NoError(t, err)
	mapped, err := svc.WorkerCollection(worker)
	require.NoError(t, err)
	assert.Equal(t, id, mapped)
	require.Len(t, log.events, 1)
	assert.Equal(t, worker, log.events[0].Worker)

	_, err = svc.CreateCollection(identity.Signed(bob), worker)
	assert.ErrorIs(t, err, computing.ErrWorkerAlreadyAssigned)
	_, err = svc.CreateCollection(identity.Signed(bob), "worker-1")
	assert.ErrorIs(t, err, computing.ErrInvalidAccount)
	assert.Len(t, log.events, 1)
}

func TestService_Mint(t *testing.T) {
	svc, log, db := testService(t, computing.ServiceConfig{})
	id, err := svc.CreateCollection(identity.Signed(alice), "")
	require.NoError(t, err)

	first, err := svc.Mint(identity.Signed(alice), id, nil)
	require.NoError(t, err)
	second, err := svc.Mint(identity.Signed(bob), id, nil)
	require.NoError(t, err)
	assert.Equal(t, nft.ItemId(0), first)
	assert.Equal(t, nft.ItemId(1), second)

	item, err := db.ReadItem(id, second)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, bob, item.Owner)
	assert.Equal(t, *computing.DefaultItemConfig(), item.Config)

	_, err = svc.Mint(identity.Signed(alice), 9, nil)
	assert.ErrorIs(t, err, nft.ErrUnknownCollection)
	_, err = svc.Mint(identity.Origin{Account: alice}, id, nil)
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)

	assert.Len(t, log.events, 1)
}

func TestService_MintFixedItemId(t *testing.T) {
	svc, _, db := testService(t, computing.ServiceConfig{FixedItemId: true})
	id, err := svc.CreateCollection(identity.Signed(alice), "")
	require.NoError(t, err)

	item, err := svc.Mint(identity.Signed(alice), id, nil)
	require.NoError(t, err)
	assert.Equal(t, computing.LegacyItemId, item)

	_, err = svc.Mint(identity.Signed(bob), id, nil)
	assert.ErrorIs(t, err, nft.ErrAlreadyExists)

	minted, err := db.ReadItem(id, computing.LegacyItemId)
	require.NoError(t, err)
	assert.Equal(t, alice, minted.Owner)

	_, err = svc.Mint(identity.Signed(alice), 5, nil)
	assert.ErrorIs(t, err, nft.ErrUnknownCollection)
}

func TestService_MintAuthorizer(t *testing.T) {
	var caller string
	svc, _, _ := testService(t, computing.ServiceConfig{
		Authorizer: func(who string, witness *nft.MintWitness) nft.Authorize {
			caller = who
			return func(*nft.CollectionDetails, *nft.CollectionConfig) error {
				return nft.ErrNoPermission
			}
		},
	})
	id, err := svc.CreateCollection(identity.Signed(alice), "")
	require.NoError(t, err)

	_, err = svc.Mint(identity.Signed(bob), id, nil)
	assert.ErrorIs(t, err, nft.ErrNoPermission)
	assert.Equal(t, bob, caller)
}
