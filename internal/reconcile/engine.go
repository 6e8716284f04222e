// Package reconcile implements the diff/apply logic behind push and clean,
// plus the thin pull and list pass-throughs. The local env file is the sole
// source of truth: push makes the remote a superset of the local key set,
// clean trims the remote back down to a subset of it.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lmartin/envsync/internal/envfile"
	"github.com/lmartin/envsync/internal/remote"
	"github.com/lmartin/envsync/internal/report"
	"github.com/lmartin/envsync/internal/scope"
)

// Options configure a single operation. Neither flag is persisted anywhere.
type Options struct {
	BranchScoped bool // partition the preview target by current git branch
	Replace      bool // push only: overwrite keys that already exist remotely
}

// Engine drives reconciliation against a remote variable store. Remote
// state is fetched fresh for every scope in every operation; a cached
// listing would make add/remove decisions against stale state.
type Engine struct {
	Store    remote.VariableStore
	Branches scope.BranchResolver
	Reporter report.Sink
}

func New(store remote.VariableStore, branches scope.BranchResolver, sink report.Sink) *Engine {
	if sink == nil {
		sink = report.Discard{}
	}
	return &Engine{Store: store, Branches: branches, Reporter: sink}
}

// Push uploads local entries into every target, in the fixed target order
// and in file order within each target. Keys missing remotely are added;
// existing keys are skipped, or removed and re-added with the local value
// when Options.Replace is set (the store has no in-place update).
//
// Per-key failures are reported and skipped over: environments are shared,
// so partial completion is normal and a re-run converges. Only branch
// resolution aborts the whole run.
func (e *Engine) Push(ctx context.Context, entries envfile.Entries, opts Options) error {
	for _, target := range scope.All() {
		sc, err := scope.Resolve(target, opts.BranchScoped, e.Branches)
		if err != nil {
			return err
		}

		remoteKeys, err := e.Store.List(ctx, sc)
		if err != nil {
			e.report("push", sc, "", report.Failed, err)
			continue
		}
		have := keySet(remoteKeys)

		for _, entry := range entries {
			_, exists := have[entry.Key]
			switch {
			case !exists:
				if err := e.Store.Add(ctx, sc, entry.Key, entry.Value); err != nil {
					e.report("push", sc, entry.Key, report.Failed, err)
					continue
				}
				e.report("push", sc, entry.Key, report.Added, nil)

			case !opts.Replace:
				e.report("push", sc, entry.Key, report.Skipped, nil)

			default:
				if err := e.replace(ctx, sc, entry); err != nil {
					e.report("push", sc, entry.Key, report.Failed, err)
					continue
				}
				e.report("push", sc, entry.Key, report.Updated, nil)
			}
		}
	}
	return nil
}

// replace removes then re-adds a key. The remote may have lost the key
// since the listing was taken; that just turns the replace into an add.
func (e *Engine) replace(ctx context.Context, sc scope.Scope, entry envfile.Entry) error {
	if err := e.Store.Remove(ctx, sc, entry.Key); err != nil && !errors.Is(err, remote.ErrNotFound) {
		return err
	}
	return e.Store.Add(ctx, sc, entry.Key, entry.Value)
}

// Clean removes remote keys absent from the local entries, per scope, in
// the order the remote listing returns them. Keys present locally are never
// touched. A duplicated key in the listing causes a second removal attempt;
// the resulting not-found is benign because the end state already holds.
func (e *Engine) Clean(ctx context.Context, entries envfile.Entries, opts Options) error {
	local := entries.Keys()

	for _, target := range scope.All() {
		sc, err := scope.Resolve(target, opts.BranchScoped, e.Branches)
		if err != nil {
			return err
		}

		remoteKeys, err := e.Store.List(ctx, sc)
		if err != nil {
			e.report("clean", sc, "", report.Failed, err)
			continue
		}

		for _, key := range remoteKeys {
			if _, keep := local[key]; keep {
				continue
			}
			if err := e.Store.Remove(ctx, sc, key); err != nil && !errors.Is(err, remote.ErrNotFound) {
				e.report("clean", sc, key, report.Failed, err)
				continue
			}
			e.report("clean", sc, key, report.Removed, nil)
		}
	}
	return nil
}

// Pull snapshots the production environment into destPath, overwriting any
// existing file. It is a single bulk transfer with no partial-success
// semantics: any failure aborts the operation.
func (e *Engine) Pull(ctx context.Context, destPath string) error {
	if err := e.Store.Pull(ctx, scope.Production, destPath); err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}
	return nil
}

// List renders the remote keys of every target. Listing failures for one
// target are reported and do not stop the remaining targets.
func (e *Engine) List(ctx context.Context, out io.Writer, opts Options) error {
	for _, target := range scope.All() {
		sc, err := scope.Resolve(target, opts.BranchScoped, e.Branches)
		if err != nil {
			return err
		}

		keys, err := e.Store.List(ctx, sc)
		if err != nil {
			e.report("list", sc, "", report.Failed, err)
			continue
		}
		report.RenderListing(out, sc, keys)
	}
	return nil
}

func (e *Engine) report(op string, sc scope.Scope, key string, action report.Action, err error) {
	e.Reporter.Event(report.Event{Operation: op, Scope: sc, Key: key, Action: action, Err: err})
}

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
