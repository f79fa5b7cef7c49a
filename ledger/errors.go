package ledger

import "errors"

// RejectError fails a request for good, the cause becomes its result.
// Any other worker error leaves the request pending for another try.
type RejectError struct {
	Err error
}

func Reject(err error) error {
	return &RejectError{Err: err}
}

func (e *RejectError) Error() string {
	return e.Err.Error()
}

func (e *RejectError) Unwrap() error {
	return e.Err
}

func rejection(err error) (*RejectError, bool) {
	var re *RejectError
	ok := errors.As(err, &re)
	return re, ok
}
