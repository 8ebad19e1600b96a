package osmosisd

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner runs an external command and returns what it wrote to stdout
// and stderr.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

// NewExecRunner returns a CommandRunner that spawns a process for every
// command. The process is killed if the context is done before it exits.
func NewExecRunner() CommandRunner {
	return execRunner{}
}

func (execRunner) Run(
	ctx context.Context, name string, args ...string,
) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
