package identity

import (
	"errors"

	"github.com/gofrs/uuid"
)

var ErrUnauthenticated = errors.New("identity: Unauthenticated")

// Origin is where a request comes from. The zero value is an unsigned
// origin.
type Origin struct {
	Account string
	Signed  bool
}

func Signed(account string) Origin {
	return Origin{Account: account, Signed: true}
}

// EnsureSigned returns the signing account of o, or ErrUnauthenticated.
func EnsureSigned(o Origin) (string, error) {
	if !o.Signed || !ValidAccount(o.Account) {
		return "", ErrUnauthenticated
	}
	return o.Account, nil
}

func ValidAccount(id string) bool {
	uid, err := uuid.FromString(id)
	if err != nil {
		return false
	}
	return uid != uuid.Nil && uid.String() == id
}
