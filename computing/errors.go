package computing

type Error struct {
	Code string
}

func (e *Error) Error() string {
	return "computing: " + e.Code
}

var (
	// ErrNotTheOwner is reserved for owner-only calls, none exists yet.
	ErrNotTheOwner = &Error{Code: "NotTheOwner"}

	ErrWorkerNotExists       = &Error{Code: "WorkerNotExists"}
	ErrWorkerAlreadyAssigned = &Error{Code: "WorkerAlreadyAssigned"}
	ErrInvalidAccount        = &Error{Code: "InvalidAccount"}
	ErrInvalidCall           = &Error{Code: "InvalidCall"}
)
