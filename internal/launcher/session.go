package launcher

import (
	"context"
	"time"
)

type Status int

const (
	Idle Status = iota
	Running
)

func (s Status) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Session is one launched game. It is owned by the Launcher until the
// process exits, after which Done is closed and Err holds the exit result.
type Session struct {
	StartedAt time.Time
	endedAt   time.Time
	err       error
	done      chan struct{}
	Path      string
	PID       int
}

func newSession(path string, pid int, startedAt time.Time) *Session {
	return &Session{
		Path:      path,
		PID:       pid,
		StartedAt: startedAt,
		done:      make(chan struct{}),
	}
}

// Done is closed once the game process has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err returns the process exit error. It is nil until Done is closed.
func (s *Session) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Duration is how long the game ran, or has been running so far.
func (s *Session) Duration(now time.Time) time.Duration {
	select {
	case <-s.done:
		return s.endedAt.Sub(s.StartedAt)
	default:
		return now.Sub(s.StartedAt)
	}
}

// Wait blocks until the game exits or ctx is done. Cancelling ctx only
// stops waiting; the game keeps running.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) finish(err error, at time.Time) {
	s.err = err
	s.endedAt = at
	close(s.done)
}
