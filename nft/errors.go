package nft

// Error is a lifecycle failure reported by the engine. The code is stable
// and surfaced to callers as is.
type Error struct {
	Code string
}

func (e *Error) Error() string {
	return "nft: " + e.Code
}

var (
	ErrUnknownCollection     = &Error{Code: "UnknownCollection"}
	ErrUnknownItem           = &Error{Code: "UnknownItem"}
	ErrNoPermission          = &Error{Code: "NoPermission"}
	ErrInsufficientDeposit   = &Error{Code: "InsufficientDeposit"}
	ErrInsufficientBalance   = &Error{Code: "InsufficientBalance"}
	ErrCollectionIdExhausted = &Error{Code: "CollectionIdExhausted"}
	ErrAlreadyExists         = &Error{Code: "AlreadyExists"}
	ErrMaxSupplyReached      = &Error{Code: "MaxSupplyReached"}
	ErrMintNotStarted        = &Error{Code: "MintNotStarted"}
	ErrMintEnded             = &Error{Code: "MintEnded"}
	ErrBadWitness            = &Error{Code: "BadWitness"}
	ErrAlreadyClaimed        = &Error{Code: "AlreadyClaimed"}
	ErrInvalidConfig         = &Error{Code: "InvalidConfig"}
)
