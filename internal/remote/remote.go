// Package remote abstracts the hosted platform's per-environment variable
// store. The platform is reached through its own command-line client, so
// the store is modeled as a capability interface with a subprocess-backed
// implementation; tests substitute in-memory fakes.
package remote

import (
	"context"
	"errors"

	"github.com/lmartin/envsync/internal/scope"
)

// VariableStore is the minimal surface the sync engine needs from the
// remote platform: list keys for a scope, add and remove single keys, and
// bulk-download one target's variables into a local file.
type VariableStore interface {
	List(ctx context.Context, s scope.Scope) ([]string, error)
	Add(ctx context.Context, s scope.Scope, key, value string) error
	Remove(ctx context.Context, s scope.Scope, key string) error
	Pull(ctx context.Context, target scope.Target, destPath string) error
}

// ErrNotFound marks a removal of a key the remote no longer has. Callers
// treat it as benign: the desired end state is already in place.
var ErrNotFound = errors.New("variable not found")
