package nft

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

type CollectionId uint32

type ItemId uint32

const (
	MaxCollectionId = CollectionId(math.MaxUint32)
	MaxItemId       = ItemId(math.MaxUint32)
)

type CollectionSetting uint64

const (
	CollectionTransferableItems CollectionSetting = 1 << iota
	CollectionUnlockedMetadata
	CollectionUnlockedAttributes
	CollectionUnlockedMaxSupply
	CollectionDepositRequired

	collectionSettingsAll = CollectionTransferableItems | CollectionUnlockedMetadata |
		CollectionUnlockedAttributes | CollectionUnlockedMaxSupply | CollectionDepositRequired
)

// CollectionSettings keeps the set of disabled settings, everything not
// listed is enabled.
type CollectionSettings struct {
	Disabled CollectionSetting
}

func CollectionSettingsFromDisabled(disabled CollectionSetting) CollectionSettings {
	return CollectionSettings{Disabled: disabled}
}

func (cs CollectionSettings) IsDisabled(s CollectionSetting) bool {
	return cs.Disabled&s == s
}

type ItemSetting uint64

const (
	ItemTransferable ItemSetting = 1 << iota
	ItemUnlockedMetadata
	ItemUnlockedAttributes

	itemSettingsAll = ItemTransferable | ItemUnlockedMetadata | ItemUnlockedAttributes
)

type ItemSettings struct {
	Disabled ItemSetting
}

func ItemSettingsFromDisabled(disabled ItemSetting) ItemSettings {
	return ItemSettings{Disabled: disabled}
}

func (is ItemSettings) IsDisabled(s ItemSetting) bool {
	return is.Disabled&s == s
}

const (
	MintKindIssuer   = 10
	MintKindPublic   = 11
	MintKindHolderOf = 12
)

type MintType struct {
	Kind     int
	HolderOf CollectionId
}

func MintIssuer() MintType {
	return MintType{Kind: MintKindIssuer}
}

func MintPublic() MintType {
	return MintType{Kind: MintKindPublic}
}

func MintHolderOf(id CollectionId) MintType {
	return MintType{Kind: MintKindHolderOf, HolderOf: id}
}

type MintSettings struct {
	Type                MintType
	Price               string `msgpack:",omitempty"`
	StartBlock          *uint64
	EndBlock            *uint64
	DefaultItemSettings ItemSettings
}

// PriceAmount returns the mint price and whether one is set.
func (ms *MintSettings) PriceAmount() (decimal.Decimal, bool) {
	if ms.Price == "" {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(ms.Price)
	if err != nil {
		panic(ms.Price)
	}
	return price, true
}

type CollectionConfig struct {
	Settings     CollectionSettings
	MaxSupply    *uint32
	MintSettings MintSettings
}

// Validate rejects configurations that are not fully populated or that
// carry values the engine could not enforce.
func (cc *CollectionConfig) Validate() error {
	if cc.Settings.Disabled&^collectionSettingsAll != 0 {
		return fmt.Errorf("unknown collection settings %b", cc.Settings.Disabled)
	}
	ms := &cc.MintSettings
	switch ms.Type.Kind {
	case MintKindIssuer, MintKindPublic:
		if ms.Type.HolderOf != 0 {
			return fmt.Errorf("holder collection %d set for mint kind %d", ms.Type.HolderOf, ms.Type.Kind)
		}
	case MintKindHolderOf:
	default:
		return fmt.Errorf("invalid mint kind %d", ms.Type.Kind)
	}
	if ms.Price != "" {
		price, err := decimal.NewFromString(ms.Price)
		if err != nil || price.IsNegative() {
			return fmt.Errorf("invalid mint price %s", ms.Price)
		}
	}
	if ms.StartBlock != nil && ms.EndBlock != nil && *ms.StartBlock > *ms.EndBlock {
		return fmt.Errorf("invalid mint window %d %d", *ms.StartBlock, *ms.EndBlock)
	}
	if ms.DefaultItemSettings.Disabled&^itemSettingsAll != 0 {
		return fmt.Errorf("unknown item settings %b", ms.DefaultItemSettings.Disabled)
	}
	return nil
}

type ItemConfig struct {
	Settings ItemSettings
}

func (ic *ItemConfig) Validate() error {
	if ic.Settings.Disabled&^itemSettingsAll != 0 {
		return fmt.Errorf("unknown item settings %b", ic.Settings.Disabled)
	}
	return nil
}

type CollectionDetails struct {
	Id       CollectionId
	Owner    string
	Creator  string
	Deposit  string
	Items    uint32
	NextItem ItemId
}

type Item struct {
	Collection CollectionId
	Id         ItemId
	Owner      string
	Config     ItemConfig
}

// MintWitness proves the caller holds an item of the collection named by
// a HolderOf mint type.
type MintWitness struct {
	OwnedItem ItemId
}
