package launcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

var (
	ErrConfigurationUnset = errors.New("game executable not set")
	ErrPathInvalid        = errors.New("game executable not found")
	ErrRuntimeMissing     = errors.New("runtime not installed or not in PATH")
	ErrSpawnFailed        = errors.New("failed to start process")
	ErrAlreadyRunning     = errors.New("game is already running")
)

// SpawnError is a start failure other than a missing binary.
type SpawnError struct {
	Err  error
	Name string
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() []error {
	return []error{ErrSpawnFailed, e.Err}
}

func classifyStartError(name string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrRuntimeMissing, name, err)
	}
	return &SpawnError{Name: name, Err: err}
}
