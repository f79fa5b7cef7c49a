package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	signer   = "6c4e7b52-5f64-4b2e-9a33-0d1f8e2b7c11"
	stranger = "7d5f8c63-6a75-4c3f-8b44-1e2a9f3c8d22"
)

func testVerifier(t *testing.T) (*Verifier, ed25519.PrivateKey) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	keys := make(KeyRing)
	require.NoError(t, keys.Add(signer, hex.EncodeToString(pub)))
	return NewVerifier(keys), priv
}

func TestVerifier_Open(t *testing.T) {
	v, priv := testVerifier(t)

	envelope, err := Sign(signer, priv, map[string]string{"method": "mint"}, time.Minute)
	require.NoError(t, err)

	origin, payload, err := v.Open(envelope)
	require.NoError(t, err)
	assert.Equal(t, Signed(signer), origin)
	assert.JSONEq(t, `{"method":"mint"}`, string(payload))
}

func TestVerifier_OpenRejects(t *testing.T) {
	v, priv := testVerifier(t)
	_, other, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	forged, err := Sign(signer, other, "x", 0)
	require.NoError(t, err)
	unknown, err := Sign(stranger, priv, "x", 0)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodEdDSA, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   signer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	stale, err := expired.SignedString(priv)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: signer},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, envelope := range map[string]string{
		"empty":    "",
		"garbage":  "not.a.token",
		"forged":   forged,
		"unknown":  unknown,
		"expired":  stale,
		"unsigned": unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			origin, payload, err := v.Open(envelope)
			assert.ErrorIs(t, err, ErrUnauthenticated)
			assert.False(t, origin.Signed)
			assert.Nil(t, payload)
		})
	}
}

func TestKeyRing_Add(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	keys := make(KeyRing)
	assert.Error(t, keys.Add("alice", hex.EncodeToString(pub)))
	assert.Error(t, keys.Add(signer, "zz"))
	assert.Error(t, keys.Add(signer, hex.EncodeToString(pub[:16])))
	assert.NoError(t, keys.Add(signer, hex.EncodeToString(pub)))
	assert.Len(t, keys, 1)
}
