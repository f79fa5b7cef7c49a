package identity

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

// Claims of a request envelope. The subject is the signing account and
// Payload carries the call untouched.
type Claims struct {
	Payload json.RawMessage `json:"payload"`
	jwt.RegisteredClaims
}

type KeyRing map[string]ed25519.PublicKey

func (kr KeyRing) Add(account, publicKey string) error {
	if !ValidAccount(account) {
		return fmt.Errorf("invalid account %s", account)
	}
	pub, err := hex.DecodeString(publicKey)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid public key %s for %s", publicKey, account)
	}
	kr[account] = ed25519.PublicKey(pub)
	return nil
}

type Verifier struct {
	keys KeyRing
}

func NewVerifier(keys KeyRing) *Verifier {
	return &Verifier{keys: keys}
}

// Open verifies envelope and returns the signed origin with its payload.
// Every verification failure is reported as ErrUnauthenticated.
func (v *Verifier) Open(envelope string) (Origin, json.RawMessage, error) {
	if envelope == "" {
		return Origin{}, nil, ErrUnauthenticated
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(envelope, &claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))
	if err != nil {
		logger.Verbosef("Verifier.Open() => %v\n", err)
		return Origin{}, nil, ErrUnauthenticated
	}
	if !ValidAccount(claims.Subject) {
		return Origin{}, nil, ErrUnauthenticated
	}
	return Signed(claims.Subject), claims.Payload, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("invalid claims %T", token.Claims)
	}
	key, found := v.keys[claims.Subject]
	if !found {
		return nil, fmt.Errorf("unknown account %s", claims.Subject)
	}
	return key, nil
}

// Sign builds an envelope for payload signed by account. A zero ttl
// produces an envelope without expiry.
func Sign(account string, key ed25519.PrivateKey, payload interface{}, ttl time.Duration) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := Claims{
		Payload: raw,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  account,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       id.String(),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(key)
}
