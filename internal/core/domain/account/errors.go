package account

import (
	"errors"
	"fmt"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrIDAlreadyExists     = errors.New("account id already exists")
	ErrAccountDoesNotExist = errors.New("account does not exist")
)

// Failure kinds. They are matched with errors.Is against a *Failure.
var (
	// The store could not be reached or did not answer in time. Nothing was changed.
	ErrStoreUnavailable = errors.New("account store unavailable")
	// The store answered but the insert or update did not happen.
	ErrNotPersisted = errors.New("account change not persisted")
	// The change was persisted but the credentials never reached the user.
	ErrCredentialsNotDelivered = errors.New("credentials not delivered")
)

type Failure struct {
	Kind error
	Err  error
}

func NewFailure(kind error, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", f.Kind, f.Err)
}

func (f *Failure) Is(target error) bool {
	return target == f.Kind
}

func (f *Failure) Unwrap() error {
	return f.Err
}
