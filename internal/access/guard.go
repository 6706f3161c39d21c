// Package access scopes every project and task operation to its owner.
//
// A record that does not exist, belongs to someone else, or (when required)
// has been soft-deleted is reported as ErrNotFound in all three cases, so a
// caller cannot discover other accounts' records.
package access

import (
	"errors"
	"reflect"
)

// ErrNotFound is the only denial the guard returns.
var ErrNotFound = errors.New("not found")

// Owned is implemented by records with a single owning account.
type Owned interface {
	OwnerID() uint64
}

// SoftDeletable is implemented by records carrying a soft-delete flag.
type SoftDeletable interface {
	IsDeleted() bool
}

// Option tightens a scope check.
type Option func(*options)

type options struct {
	requireLive bool
}

// RequireLive treats soft-deleted records as absent.
func RequireLive() Option {
	return func(o *options) {
		o.requireLive = true
	}
}

// Scope authorizes accountID against entity.
func Scope(accountID uint64, entity Owned, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if isNil(entity) || accountID == 0 || entity.OwnerID() != accountID {
		return ErrNotFound
	}

	if o.requireLive {
		if sd, ok := entity.(SoftDeletable); ok && sd.IsDeleted() {
			return ErrNotFound
		}
	}

	return nil
}

func isNil(entity Owned) bool {
	if entity == nil {
		return true
	}
	v := reflect.ValueOf(entity)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
