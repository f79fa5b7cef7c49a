package nft

import "github.com/shopspring/decimal"

type Store interface {
	NextCollectionId() (CollectionId, error)
	WriteCollection(details *CollectionDetails, config *CollectionConfig) error
	ReadCollection(id CollectionId) (*CollectionDetails, *CollectionConfig, error)

	WriteMintItem(details *CollectionDetails, item *Item) error
	ReadItem(collection CollectionId, id ItemId) (*Item, error)
	ListItemsForOwner(owner string, limit int) ([]*Item, error)

	WriteItemClaim(holder CollectionId, item ItemId, claimer CollectionId) error
	ReadItemClaim(holder CollectionId, item ItemId, claimer CollectionId) (bool, error)
}

// Currency moves funds for deposits and mint prices. Both operations are
// all-or-nothing and fail with ErrInsufficientBalance when the free balance
// of the debited account is short.
type Currency interface {
	Reserve(account string, amount decimal.Decimal) error
	Transfer(from, to string, amount decimal.Decimal) error
}

// Inspect, Create and Mutate are the capabilities the engine offers to
// the policy layer above it.
type Inspect interface {
	NextCollectionId() (CollectionId, error)
	Collection(id CollectionId) (*CollectionDetails, *CollectionConfig, error)
	Item(collection CollectionId, id ItemId) (*Item, error)
}

type Create interface {
	CreateCollection(creator, owner string, config *CollectionConfig) (CollectionId, error)
}

type Mutate interface {
	Mint(collection CollectionId, item ItemId, recipient string, config *ItemConfig, authorize Authorize) error
}
