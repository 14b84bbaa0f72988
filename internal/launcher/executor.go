package launcher

import (
	"context"
	"os/exec"
)

// Process is a started child process.
type Process interface {
	Pid() int
	// Wait blocks until the process exits.
	Wait() error
}

// Executor abstracts os/exec so launches can be tested without spawning
// real programs.
type Executor interface {
	LookPath(name string) (string, error)
	Start(ctx context.Context, name string, args ...string) (Process, error)
}

// ExecExecutor starts real processes.
type ExecExecutor struct{}

func (ExecExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name) //nolint:wrapcheck // callers match exec.ErrNotFound
}

// Start spawns name. The child is not tied to ctx cancellation: games keep
// running after the launcher exits.
func (ExecExecutor) Start(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(context.WithoutCancel(ctx), name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err //nolint:wrapcheck // callers match exec.ErrNotFound
	}
	return execProcess{cmd: cmd}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p execProcess) Pid() int    { return p.cmd.Process.Pid }
func (p execProcess) Wait() error { return p.cmd.Wait() }
