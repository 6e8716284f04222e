// =============================================================================
// FILE: cmd/envsync/main.go
// ROLE: Command-Line Entry Point — Flag Dispatch and Dependency Wiring
// =============================================================================
//
// envsync keeps a local .env.local file and the hosted platform's
// per-environment variable store in agreement. The local file is always
// the source of truth; the remote side is reconciled toward it.
//
// Usage examples:
//   envsync                   ← push, pull, clean (the default set)
//   envsync --push --replace  ← upload keys, overwriting existing values
//   envsync -c -b             ← clean, with preview scoped to the git branch
//   envsync --list --json     ← list remote keys, write a JSON summary
//
// EXECUTION FLOW
// ==============
//
//   main()
//    │
//    ├─ rootCmd().Execute()
//    │    │
//    │    ├─ cli.Parse(args)       ← left-to-right fold over raw tokens
//    │    │     unknown token → abort before any side effect
//    │    │     --help        → usage text only, nothing runs
//    │    │
//    │    └─ run(invocation)
//    │         ├─ config.Load(".envsync.yaml")   ← defaults if absent
//    │         ├─ wire store (vercel CLI), git branch resolver, reporter
//    │         └─ for each requested operation, in fixed order:
//    │              push → pull → clean → list
//    │
//    └─ non-nil error → message on stderr, exit 1
//
// Flag parsing is taken away from cobra on purpose: the operation set is
// an order-sensitive fold (--all resets it, later flags keep mutating it),
// which a flag library's unordered value model cannot express. Cobra still
// owns the usage text and the command shell.
// =============================================================================

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lmartin/envsync/internal/cli"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envsync [flags]",
		Short: "Sync a local env file with the platform's variable store",
		Long: `envsync reconciles a local environment file against the hosted
platform's variable store across the development, preview and production
targets. The local file is the source of truth.

Operations (run in the order push, pull, clean, list regardless of flag
order; no operation flags means push, pull and clean):
  --push,   -u   upload local keys missing remotely
  --pull,   -d   download the production snapshot to the local snapshot file
  --clean,  -c   delete remote keys absent from the local file
  --list,   -l   print the remote variables per target
  --all,    -a   select exactly push, pull and clean

Modifiers:
  --replace,        -r   push overwrites values of keys that already exist
  --branch-preview, -b   scope the preview target to the current git branch
  --json,           -j   write a JSON summary of the run to reports/
  --help,           -h   print this text and run nothing

Flags are processed left to right: --all resets the accumulated operation
set, and flags after it keep adding to the result.`,
		Example: `  envsync
  envsync --push --replace
  envsync --clean --branch-preview
  envsync -l -j`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := cli.Parse(args)
			if err != nil {
				return err
			}
			if inv.Help {
				return cmd.Help()
			}
			return run(inv)
		},
	}
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
