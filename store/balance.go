package store

import (
	"fmt"

	"github.com/MixinNetwork/mixin/common"
	"github.com/MixinNetwork/nfc/nft"
	"github.com/dgraph-io/badger/v3"
	"github.com/shopspring/decimal"
)

const (
	prefixBalancePayload = "BALANCE:PAYLOAD:"
	keyGenesisApplied    = "BALANCE:GENESIS:APPLIED"
)

type Balance struct {
	Account  string
	Free     string
	Reserved string
}

func (b *Balance) free() decimal.Decimal {
	return decimal.RequireFromString(b.Free)
}

func (b *Balance) reserved() decimal.Decimal {
	return decimal.RequireFromString(b.Reserved)
}

// ApplyGenesis credits the initial balances once, later calls are no-ops.
func (bs *BadgerStore) ApplyGenesis(balances map[string]decimal.Decimal) error {
	return bs.update(func(txn *badger.Txn) error {
		applied, err := readValue(txn, []byte(keyGenesisApplied))
		if err != nil || len(applied) > 0 {
			return err
		}
		for account, amount := range balances {
			err = credit(txn, account, amount)
			if err != nil {
				return err
			}
		}
		return txn.Set([]byte(keyGenesisApplied), []byte{1})
	})
}

func (bs *BadgerStore) Deposit(account string, amount decimal.Decimal) error {
	return bs.update(func(txn *badger.Txn) error {
		return credit(txn, account, amount)
	})
}

func (bs *BadgerStore) ReadBalance(account string) (*Balance, error) {
	var b *Balance
	err := bs.view(func(txn *badger.Txn) error {
		bal, err := readBalance(txn, account)
		b = bal
		return err
	})
	return b, err
}

func (bs *BadgerStore) Reserve(account string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("invalid reserve amount %s", amount)
	}
	return bs.update(func(txn *badger.Txn) error {
		b, err := readBalance(txn, account)
		if err != nil {
			return err
		}
		free := b.free()
		if free.Cmp(amount) < 0 {
			return nft.ErrInsufficientBalance
		}
		b.Free = free.Sub(amount).String()
		b.Reserved = b.reserved().Add(amount).String()
		return writeBalance(txn, b)
	})
}

func (bs *BadgerStore) Transfer(from, to string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("invalid transfer amount %s", amount)
	}
	return bs.update(func(txn *badger.Txn) error {
		src, err := readBalance(txn, from)
		if err != nil {
			return err
		}
		free := src.free()
		if free.Cmp(amount) < 0 {
			return nft.ErrInsufficientBalance
		}
		src.Free = free.Sub(amount).String()
		err = writeBalance(txn, src)
		if err != nil {
			return err
		}
		return credit(txn, to, amount)
	})
}

func credit(txn *badger.Txn, account string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("invalid credit amount %s", amount)
	}
	b, err := readBalance(txn, account)
	if err != nil {
		return err
	}
	b.Free = b.free().Add(amount).String()
	return writeBalance(txn, b)
}

func readBalance(txn *badger.Txn, account string) (*Balance, error) {
	val, err := readValue(txn, []byte(prefixBalancePayload+account))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return &Balance{Account: account, Free: "0", Reserved: "0"}, nil
	}
	var b Balance
	err = common.MsgpackUnmarshal(val, &b)
	return &b, err
}

func writeBalance(txn *badger.Txn, b *Balance) error {
	key := []byte(prefixBalancePayload + b.Account)
	return txn.Set(key, common.MsgpackMarshalPanic(b))
}
