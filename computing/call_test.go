package computing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCall(t *testing.T) {
	raw, err := json.Marshal(MintCall(3))
	require.NoError(t, err)
	call, err := DecodeCall(raw)
	require.NoError(t, err)
	assert.Equal(t, CallMint, call.Method)
	assert.Equal(t, uint32(3), *call.Collection)
	assert.Nil(t, call.witness())

	call, err = DecodeCall(json.RawMessage(`{"method":"create_collection","worker":"w"}`))
	require.NoError(t, err)
	assert.Equal(t, "w", call.Worker)

	call, err = DecodeCall(json.RawMessage(`{"method":"mint","collection":1,"witness":9}`))
	require.NoError(t, err)
	require.NotNil(t, call.witness())
	assert.EqualValues(t, 9, call.witness().OwnedItem)

	for _, payload := range []string{
		``,
		`[]`,
		`{"method":"burn"}`,
		`{"method":"mint"}`,
	} {
		_, err := DecodeCall(json.RawMessage(payload))
		assert.ErrorIs(t, err, ErrInvalidCall, payload)
	}
}
