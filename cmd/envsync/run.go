package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/lmartin/envsync/internal/cli"
	"github.com/lmartin/envsync/internal/config"
	"github.com/lmartin/envsync/internal/envfile"
	"github.com/lmartin/envsync/internal/reconcile"
	"github.com/lmartin/envsync/internal/remote"
	"github.com/lmartin/envsync/internal/report"
	"github.com/lmartin/envsync/internal/scope"
)

var bold = color.New(color.Bold).SprintFunc()

// run wires the real collaborators and executes the requested operations
// in their fixed order. Per-key remote failures surface through the
// reporter only; errors returned here mean the run itself failed.
func run(inv cli.Invocation) error {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}

	store := remote.NewCLI(cfg.Remote.Command, cfg.ExtraArgs(), cfg.Remote.Timeout)
	recorder := &report.Recorder{}
	sink := report.Multi{report.Console{Out: os.Stdout}, recorder}
	engine := reconcile.New(store, scope.GitBranches{}, sink)

	opts := reconcile.Options{
		BranchScoped: inv.BranchScoped,
		Replace:      inv.Replace,
	}
	ctx := context.Background()

	for _, op := range inv.Operations {
		switch op {
		case cli.OpPush:
			fmt.Printf("%s\n", bold(fmt.Sprintf("Pushing %s", cfg.Files.Source)))
			// The source file is read once per operation, not per target,
			// so all three targets see the same snapshot of it.
			entries, err := envfile.Parse(cfg.Files.Source)
			if err != nil {
				return err
			}
			if err := engine.Push(ctx, entries, opts); err != nil {
				return err
			}

		case cli.OpPull:
			fmt.Printf("%s\n", bold(fmt.Sprintf("Pulling production snapshot to %s", cfg.Files.Snapshot)))
			if err := engine.Pull(ctx, cfg.Files.Snapshot); err != nil {
				return err
			}
			fmt.Printf("  wrote %s\n", cfg.Files.Snapshot)

		case cli.OpClean:
			fmt.Printf("%s\n", bold(fmt.Sprintf("Cleaning keys absent from %s", cfg.Files.Source)))
			entries, err := envfile.Parse(cfg.Files.Source)
			if err != nil {
				return err
			}
			if err := engine.Clean(ctx, entries, opts); err != nil {
				return err
			}

		case cli.OpList:
			if err := engine.List(ctx, os.Stdout, opts); err != nil {
				return err
			}
		}
	}

	if inv.JSON {
		path, err := report.WriteJSON(recorder.Events)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "JSON report written to: %s\n", path)
	}
	return nil
}
