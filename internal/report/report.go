// Package report emits the per-key, per-scope status lines produced during
// sync operations, renders remote listings as tables, and can persist a
// JSON summary of a whole run. Reporting is purely observational: nothing
// here feeds back into control flow.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/lmartin/envsync/internal/scope"
)

// Action classifies what happened to one key in one scope.
type Action string

const (
	Added   Action = "added"
	Skipped Action = "skipped"
	Updated Action = "updated"
	Removed Action = "removed"
	Failed  Action = "error"
)

// Event is one reportable per-key outcome.
type Event struct {
	Operation string // push, clean, list
	Scope     scope.Scope
	Key       string
	Action    Action
	Err       error
}

// Sink consumes events. The engine only ever talks to this interface, so
// tests can swap in a recorder and the CLI can fan out to several sinks.
type Sink interface {
	Event(e Event)
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// DisableColors turns off ANSI colors process-wide, for non-terminal output.
func DisableColors() {
	color.NoColor = true
}

// Console writes one colorized line per event.
type Console struct {
	Out io.Writer
}

func (c Console) Event(e Event) {
	switch e.Action {
	case Added:
		fmt.Fprintf(c.Out, "  %s %-9s %s (%s)\n", green("+"), green("added"), e.Key, e.Scope)
	case Skipped:
		fmt.Fprintf(c.Out, "  %s %-9s %s (%s)\n", dim("="), dim("skipped"), e.Key, e.Scope)
	case Updated:
		fmt.Fprintf(c.Out, "  %s %-9s %s (%s)\n", yellow("~"), yellow("updated"), e.Key, e.Scope)
	case Removed:
		fmt.Fprintf(c.Out, "  %s %-9s %s (%s)\n", red("-"), red("removed"), e.Key, e.Scope)
	case Failed:
		fmt.Fprintf(c.Out, "  %s %-9s %s (%s): %v\n", red("!"), red("error"), e.Key, e.Scope, e.Err)
	}
}

// Recorder keeps every event in memory, for tests and for the JSON summary.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Event(e Event) {
	r.Events = append(r.Events, e)
}

// Multi fans events out to several sinks.
type Multi []Sink

func (m Multi) Event(e Event) {
	for _, s := range m {
		s.Event(e)
	}
}

// Discard drops every event. Useful where a nil check would otherwise
// litter the engine.
type Discard struct{}

func (Discard) Event(Event) {}
