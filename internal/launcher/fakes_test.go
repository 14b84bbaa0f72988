package launcher

import (
	"context"
	"os/exec"
	"sync"

	"github.com/SiirRandall/yanix-launcher/internal/presence"
)

type fakeProcess struct {
	exit chan error
	pid  int
}

func (p *fakeProcess) Pid() int    { return p.pid }
func (p *fakeProcess) Wait() error { return <-p.exit }

// Exit ends the process with err. Buffered so it never blocks the test.
func (p *fakeProcess) Exit(err error) { p.exit <- err }

type startCall struct {
	name string
	args []string
}

type fakeExecutor struct {
	onPath   map[string]string
	startErr error
	calls    []startCall
	procs    []*fakeProcess
	mu       sync.Mutex
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{onPath: map[string]string{}}
}

func (e *fakeExecutor) LookPath(name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.onPath[name]; ok {
		return p, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func (e *fakeExecutor) Start(_ context.Context, name string, args ...string) (Process, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.startErr != nil {
		return nil, e.startErr
	}
	e.calls = append(e.calls, startCall{name: name, args: args})
	p := &fakeProcess{pid: 1000 + len(e.procs), exit: make(chan error, 1)}
	e.procs = append(e.procs, p)
	return p, nil
}

func (e *fakeExecutor) Calls() []startCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]startCall(nil), e.calls...)
}

type recordingReporter struct {
	held    chan struct{}
	release chan struct{}
	updates []presence.Update
	mu      sync.Mutex
}

// HoldNextIdle makes the next idle Report block until release is closed.
// held is closed once that Report has started.
func (r *recordingReporter) HoldNextIdle() (held <-chan struct{}, release chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.held = make(chan struct{})
	r.release = make(chan struct{})
	return r.held, r.release
}

func (r *recordingReporter) Report(u presence.Update) {
	r.mu.Lock()
	held, release := r.held, r.release
	if u == presence.Idle() && held != nil {
		r.held, r.release = nil, nil
	} else {
		held, release = nil, nil
	}
	r.mu.Unlock()

	if held != nil {
		close(held)
		<-release
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func (r *recordingReporter) Updates() []presence.Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]presence.Update(nil), r.updates...)
}
