package config

import (
	"fmt"
	"os"

	"github.com/MixinNetwork/nfc/identity"
	"github.com/pelletier/go-toml"
	"github.com/shopspring/decimal"
)

type AppConfig struct {
	ClientId   string `toml:"client-id"`
	SessionId  string `toml:"session-id"`
	PrivateKey string `toml:"private-key"`
	PinToken   string `toml:"pin-token"`
}

type ComputingConfig struct {
	CollectionDeposit   string `toml:"collection-deposit"`
	FixedItemId         bool   `toml:"fixed-item-id"`
	EnforceMintSettings bool   `toml:"enforce-mint-settings"`
}

type AccountConfig struct {
	Id        string `toml:"id"`
	PublicKey string `toml:"public-key"`
}

type GenesisConfig struct {
	Account string `toml:"account"`
	Amount  string `toml:"amount"`
}

type LogConfig struct {
	Level int `toml:"level"`
}

type Configuration struct {
	App       AppConfig       `toml:"app"`
	Computing ComputingConfig `toml:"computing"`
	Accounts  []AccountConfig `toml:"accounts"`
	Genesis   []GenesisConfig `toml:"genesis"`
	Log       LogConfig       `toml:"log"`
}

func Setup(path string) (*Configuration, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(f)
}

func Parse(data []byte) (*Configuration, error) {
	var conf Configuration
	err := toml.Unmarshal(data, &conf)
	if err != nil {
		return nil, err
	}
	if conf.Computing.CollectionDeposit == "" {
		conf.Computing.CollectionDeposit = "0"
	}
	if conf.Log.Level == 0 {
		conf.Log.Level = 2
	}
	_, err = conf.Deposit()
	if err != nil {
		return nil, err
	}
	_, err = conf.KeyRing()
	if err != nil {
		return nil, err
	}
	_, err = conf.GenesisBalances()
	return &conf, err
}

func (c *Configuration) Deposit() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Computing.CollectionDeposit)
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid collection deposit %s", c.Computing.CollectionDeposit)
	}
	return d, nil
}

func (c *Configuration) KeyRing() (identity.KeyRing, error) {
	keys := make(identity.KeyRing)
	for _, a := range c.Accounts {
		err := keys.Add(a.Id, a.PublicKey)
		if err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func (c *Configuration) GenesisBalances() (map[string]decimal.Decimal, error) {
	balances := make(map[string]decimal.Decimal)
	for _, g := range c.Genesis {
		if !identity.ValidAccount(g.Account) {
			return nil, fmt.Errorf("invalid genesis account %s", g.Account)
		}
		amount, err := decimal.NewFromString(g.Amount)
		if err != nil || amount.IsNegative() {
			return nil, fmt.Errorf("invalid genesis amount %s for %s", g.Amount, g.Account)
		}
		balances[g.Account] = balances[g.Account].Add(amount)
	}
	return balances, nil
}
