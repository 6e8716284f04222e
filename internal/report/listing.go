package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/lmartin/envsync/internal/scope"
)

// RenderListing prints the remote keys of one scope as a table, preserving
// the order the remote client returned them in.
func RenderListing(out io.Writer, s scope.Scope, keys []string) {
	fmt.Fprintf(out, "\n%s\n", cyan(fmt.Sprintf("Variables in %s", s)))

	if len(keys) == 0 {
		fmt.Fprintln(out, dim("  (none)"))
		return
	}

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Variable", "Scope")
	tbl.WithWriter(out)
	tbl.WithHeaderFormatter(headerFmt)

	for _, key := range keys {
		tbl.AddRow(key, s.String())
	}

	tbl.Print()
}
