package nft

// Authorize decides whether a mint may proceed, it sees the collection as
// stored before the mint.
type Authorize func(details *CollectionDetails, config *CollectionConfig) error

func AllowAll(*CollectionDetails, *CollectionConfig) error {
	return nil
}

// MintSettingsPolicy enforces the collection mint settings for Caller at
// block Height. The collection owner acts as issuer and bypasses every
// check.
type MintSettingsPolicy struct {
	Caller   string
	Height   uint64
	Witness  *MintWitness
	Store    Store
	Currency Currency
}

func (p *MintSettingsPolicy) Authorize(details *CollectionDetails, config *CollectionConfig) error {
	if details.Owner == p.Caller {
		return nil
	}

	ms := &config.MintSettings
	if ms.StartBlock != nil && *ms.StartBlock > p.Height {
		return ErrMintNotStarted
	}
	if ms.EndBlock != nil && *ms.EndBlock < p.Height {
		return ErrMintEnded
	}

	switch ms.Type.Kind {
	case MintKindIssuer:
		return ErrNoPermission
	case MintKindHolderOf:
		err := p.claimWitness(ms.Type.HolderOf, details.Id)
		if err != nil {
			return err
		}
	}

	if price, ok := ms.PriceAmount(); ok && price.IsPositive() {
		return p.Currency.Transfer(p.Caller, details.Owner, price)
	}
	return nil
}

// claimWitness marks the witness item as used for claimer, an item of the
// holder collection may claim only once per collection.
func (p *MintSettingsPolicy) claimWitness(holder, claimer CollectionId) error {
	if p.Witness == nil {
		return ErrBadWitness
	}
	owned, err := p.Store.ReadItem(holder, p.Witness.OwnedItem)
	if err != nil {
		return err
	}
	if owned == nil || owned.Owner != p.Caller {
		return ErrBadWitness
	}
	claimed, err := p.Store.ReadItemClaim(holder, p.Witness.OwnedItem, claimer)
	if err != nil {
		return err
	}
	if claimed {
		return ErrAlreadyClaimed
	}
	return p.Store.WriteItemClaim(holder, p.Witness.OwnedItem, claimer)
}
