package computing

import "github.com/MixinNetwork/nfc/nft"

// LegacyItemId is the item id every mint used before ids were allocated
// per collection.
const LegacyItemId = nft.ItemId(0)

// DefaultCollectionConfig is the locked-down policy of every collection
// created here. Items never move and nothing about the collection can be
// changed later. Anyone may mint for free.
func DefaultCollectionConfig() *nft.CollectionConfig {
	return &nft.CollectionConfig{
		Settings: nft.CollectionSettingsFromDisabled(
			nft.CollectionTransferableItems |
				nft.CollectionUnlockedMetadata |
				nft.CollectionUnlockedAttributes |
				nft.CollectionUnlockedMaxSupply),
		MaxSupply: nil,
		MintSettings: nft.MintSettings{
			Type:       nft.MintPublic(),
			Price:      "",
			StartBlock: nil,
			EndBlock:   nil,
			DefaultItemSettings: nft.ItemSettingsFromDisabled(
				nft.ItemTransferable |
					nft.ItemUnlockedMetadata |
					nft.ItemUnlockedAttributes),
		},
	}
}

func DefaultItemConfig() *nft.ItemConfig {
	return &nft.ItemConfig{
		Settings: nft.ItemSettingsFromDisabled(nft.ItemTransferable | nft.ItemUnlockedMetadata),
	}
}
