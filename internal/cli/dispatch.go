// Package cli turns raw invocation tokens into the set of operations to
// run. Tokens are folded left to right, each one mutating the accumulated
// set, so the final set is order-dependent when --all is combined with
// individual operation flags. That fold is the defined behavior, not an
// accident: the last token always has the final say over what it touches.
package cli

import "fmt"

// Operation is one top-level action the tool can perform.
type Operation string

const (
	OpPush  Operation = "push"
	OpPull  Operation = "pull"
	OpClean Operation = "clean"
	OpList  Operation = "list"
)

// executionOrder is fixed regardless of the order flags appeared in.
var executionOrder = []Operation{OpPush, OpPull, OpClean, OpList}

// Invocation is the parsed result of one command line.
type Invocation struct {
	Operations   []Operation // requested operations in execution order
	Replace      bool        // push overwrites existing remote values
	BranchScoped bool        // partition preview by current git branch
	JSON         bool        // write a JSON run summary afterwards
	Help         bool        // print usage and run nothing
}

// UnknownFlagError reports an unrecognized token. It is fatal: parsing
// aborts before any operation runs.
type UnknownFlagError struct {
	Token string
}

func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("unknown flag: %s", e.Token)
}

// Parse folds the invocation tokens into an Invocation. A help request
// short-circuits everything else. No tokens selecting an operation means
// the default set push+pull+clean.
func Parse(args []string) (Invocation, error) {
	var inv Invocation
	selected := make(map[Operation]bool)

	for _, arg := range args {
		switch arg {
		case "--push", "-u":
			selected[OpPush] = true
		case "--pull", "-d":
			selected[OpPull] = true
		case "--clean", "-c":
			selected[OpClean] = true
		case "--list", "-l":
			selected[OpList] = true
		case "--all", "-a":
			selected = map[Operation]bool{OpPush: true, OpPull: true, OpClean: true}
		case "--replace", "-r":
			inv.Replace = true
		case "--branch-preview", "-b":
			inv.BranchScoped = true
		case "--json", "-j":
			inv.JSON = true
		case "--help", "-h":
			inv.Help = true
		default:
			return Invocation{}, &UnknownFlagError{Token: arg}
		}
	}

	if inv.Help {
		return Invocation{Help: true}, nil
	}

	if len(selected) == 0 {
		selected = map[Operation]bool{OpPush: true, OpPull: true, OpClean: true}
	}

	for _, op := range executionOrder {
		if selected[op] {
			inv.Operations = append(inv.Operations, op)
		}
	}
	return inv, nil
}
