package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[app]
client-id = "a3a4d5f0-1c2b-4c8e-9f10-6a7b8c9d0e1f"

[computing]
collection-deposit = "0.01"
fixed-item-id = true

[[accounts]]
id = "b4b5e6a1-2d3c-4d9f-8a21-7b8c9d0e1f2a"
public-key = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"

[[genesis]]
account = "b4b5e6a1-2d3c-4d9f-8a21-7b8c9d0e1f2a"
amount = "100"

[[genesis]]
account = "b4b5e6a1-2d3c-4d9f-8a21-7b8c9d0e1f2a"
amount = "0.5"

[log]
level = 3
`

func TestParse(t *testing.T) {
	conf, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "a3a4d5f0-1c2b-4c8e-9f10-6a7b8c9d0e1f", conf.App.ClientId)
	assert.True(t, conf.Computing.FixedItemId)
	assert.False(t, conf.Computing.EnforceMintSettings)
	assert.Equal(t, 3, conf.Log.Level)

	deposit, err := conf.Deposit()
	require.NoError(t, err)
	assert.Equal(t, "0.01", deposit.String())

	keys, err := conf.KeyRing()
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	balances, err := conf.GenesisBalances()
	require.NoError(t, err)
	assert.Equal(t, "100.5", balances["b4b5e6a1-2d3c-4d9f-8a21-7b8c9d0e1f2a"].String())
}

func TestParseDefaults(t *testing.T) {
	conf, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, "0", conf.Computing.CollectionDeposit)
	assert.Equal(t, 2, conf.Log.Level)
	assert.Empty(t, conf.App.ClientId)
}

func TestParseInvalid(t *testing.T) {
	for _, data := range []string{
		"[computing\n",
		"[computing]\ncollection-deposit = \"-1\"\n",
		"[computing]\ncollection-deposit = \"abc\"\n",
		"[[accounts]]\nid = \"alice\"\npublic-key = \"00\"\n",
		"[[genesis]]\naccount = \"b4b5e6a1-2d3c-4d9f-8a21-7b8c9d0e1f2a\"\namount = \"-3\"\n",
	} {
		_, err := Parse([]byte(data))
		assert.Error(t, err, data)
	}
}

func TestSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0600))

	conf, err := Setup(path)
	require.NoError(t, err)
	assert.Len(t, conf.Genesis, 2)

	_, err = Setup(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
