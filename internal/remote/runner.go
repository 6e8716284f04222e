package remote

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Runner executes one invocation of the external client and returns its
// captured output. It exists so tests can script the client's behavior
// without a real binary on PATH.
type Runner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner runs commands with os/exec. This is the only place a real
// subprocess is spawned.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, stdin string, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	err := cmd.Run()
	return outBuf.String(), errBuf.String(), err
}
