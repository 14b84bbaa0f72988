// Package launcher starts the game through the compatibility layer and
// tracks it until it exits. At most one game session runs at a time.
package launcher

import (
	"context"
	"fmt"

	"github.com/SiirRandall/yanix-launcher/internal/presence"
	"github.com/SiirRandall/yanix-launcher/internal/syncutil"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Reporter receives status transitions. Report is called with the launcher's
// lock held, so it must not block.
type Reporter interface {
	Report(u presence.Update)
}

// PathSource supplies the saved game executable.
type PathSource interface {
	ExecutablePath() (string, bool)
}

type Options struct {
	Executor    Executor
	Reporter    Reporter
	Fs          afero.Fs
	Clock       clockwork.Clock
	CompatLayer string
	AuxTool     string
	GameTitle   string

	// OnExit runs on the monitor goroutine after a session ends.
	OnExit func(s *Session)
}

type Launcher struct {
	exec     Executor
	reporter Reporter
	fs       afero.Fs
	clock    clockwork.Clock
	onExit   func(s *Session)
	current  *Session
	compat   string
	aux      string
	title    string
	mu       syncutil.Mutex
}

type nopReporter struct{}

func (nopReporter) Report(presence.Update) {}

func New(opts Options) *Launcher {
	l := &Launcher{
		exec:     opts.Executor,
		reporter: opts.Reporter,
		fs:       opts.Fs,
		clock:    opts.Clock,
		onExit:   opts.OnExit,
		compat:   opts.CompatLayer,
		aux:      opts.AuxTool,
		title:    opts.GameTitle,
	}
	if l.exec == nil {
		l.exec = ExecExecutor{}
	}
	if l.reporter == nil {
		l.reporter = nopReporter{}
	}
	if l.fs == nil {
		l.fs = afero.NewOsFs()
	}
	if l.clock == nil {
		l.clock = clockwork.NewRealClock()
	}
	return l
}

func (l *Launcher) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil {
		return Running
	}
	return Idle
}

// LaunchConfigured launches the executable saved in src.
func (l *Launcher) LaunchConfigured(ctx context.Context, src PathSource) (*Session, error) {
	path, ok := src.ExecutablePath()
	if !ok {
		return nil, ErrConfigurationUnset
	}
	return l.Launch(ctx, path)
}

// Launch runs "<compat layer> path". On success the launcher is Running
// before Launch returns and goes back to Idle once the process exits.
func (l *Launcher) Launch(ctx context.Context, path string) (*Session, error) {
	if err := l.checkPath(path); err != nil {
		return nil, err
	}

	// status transitions and their reports happen under one lock so the
	// presence service always sees them in order
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current != nil {
		return nil, ErrAlreadyRunning
	}
	proc, err := l.exec.Start(ctx, l.compat, path)
	if err != nil {
		err = classifyStartError(l.compat, err)
		log.Error().Err(err).Str("path", path).Msg("failed to launch game")
		l.reporter.Report(presence.Idle())
		return nil, err
	}
	s := newSession(path, proc.Pid(), l.clock.Now())
	l.current = s

	log.Info().Str("path", path).Int("pid", s.PID).Msg("game launched")
	l.reporter.Report(presence.Playing(l.title, s.StartedAt))

	go l.monitor(s, proc)
	return s, nil
}

func (l *Launcher) monitor(s *Session, proc Process) {
	err := proc.Wait()

	l.mu.Lock()
	now := l.clock.Now()
	l.reporter.Report(presence.Idle())
	if l.current == s {
		l.current = nil
	}
	l.mu.Unlock()

	s.finish(err, now)
	log.Info().Err(err).Int("pid", s.PID).Dur("played", s.Duration(now)).Msg("game exited")

	if l.onExit != nil {
		l.onExit(s)
	}
}

// LaunchAuxiliaryTool starts the dependency manager found on PATH. Its exit
// is not tracked.
func (l *Launcher) LaunchAuxiliaryTool(ctx context.Context) error {
	bin, err := l.exec.LookPath(l.aux)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRuntimeMissing, l.aux)
	}
	proc, err := l.exec.Start(ctx, bin)
	if err != nil {
		return classifyStartError(l.aux, err)
	}
	log.Info().Str("tool", bin).Int("pid", proc.Pid()).Msg("auxiliary tool started")

	// reap only
	go func() { _ = proc.Wait() }()
	return nil
}

func (l *Launcher) checkPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrPathInvalid)
	}
	info, err := l.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPathInvalid, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrPathInvalid, path)
	}
	return nil
}
