package main

import (
	"context"
	"flag"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/MixinNetwork/nfc/computing"
	"github.com/MixinNetwork/nfc/config"
	"github.com/MixinNetwork/nfc/identity"
	"github.com/MixinNetwork/nfc/ledger"
	"github.com/MixinNetwork/nfc/store"
)

func main() {
	ctx := context.Background()

	bp := flag.String("d", "~/.mixin/nfc/data", "database directory path")
	cp := flag.String("c", "~/.mixin/nfc/config.toml", "configuration file path")
	flag.Parse()

	conf, err := config.Setup(expandHome(*cp))
	if err != nil {
		panic(err)
	}
	logger.SetLevel(conf.Log.Level)

	db, err := store.OpenBadger(ctx, expandHome(*bp))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	balances, err := conf.GenesisBalances()
	if err != nil {
		panic(err)
	}
	err = db.ApplyGenesis(balances)
	if err != nil {
		panic(err)
	}

	chain, err := ledger.BuildChain(ctx, db)
	if err != nil {
		panic(err)
	}
	worker, err := buildComputingWorker(db, conf)
	if err != nil {
		panic(err)
	}
	chain.AddWorker(worker)

	if conf.App.ClientId != "" {
		mw := NewMessengerWorker(ctx, chain, conf)
		worker.AddListener(mw)
	}
	chain.Run(ctx)
}

func buildComputingWorker(db *store.BadgerStore, conf *config.Configuration) (*computing.Worker, error) {
	keys, err := conf.KeyRing()
	if err != nil {
		return nil, err
	}
	deposit, err := conf.Deposit()
	if err != nil {
		return nil, err
	}
	return computing.NewWorker(db, identity.NewVerifier(keys), computing.WorkerConfig{
		CollectionDeposit:   deposit,
		FixedItemId:         conf.Computing.FixedItemId,
		EnforceMintSettings: conf.Computing.EnforceMintSettings,
	}), nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		usr, _ := user.Current()
		return filepath.Join(usr.HomeDir, path[2:])
	}
	return path
}
