// Package presence pushes "current activity" updates to an optional
// presence service. Every failure is absorbed here: a reporter that cannot
// connect, or whose transport breaks, simply stops reporting.
package presence

import (
	"errors"
	"fmt"
	"time"

	"github.com/SiirRandall/yanix-launcher/internal/syncutil"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	DetailsIdle  = "In the launcher"
	StateIdle    = "Browsing..."
	StatePlaying = "In-Game"
)

// Update is one status transition. An empty State means no state line; a
// zero StartedAt is replaced with the reporter's start time.
type Update struct {
	StartedAt time.Time
	Details   string
	State     string
}

func Idle() Update {
	return Update{Details: DetailsIdle, State: StateIdle}
}

func Playing(title string, startedAt time.Time) Update {
	return Update{
		Details:   "Playing " + title,
		State:     StatePlaying,
		StartedAt: startedAt,
	}
}

// ErrDisabled is returned by Connect once the reporter has failed or been
// shut down. Reporting does not come back within a session.
var ErrDisabled = errors.New("presence reporting disabled")

// shutdownTimeout bounds how long Disconnect waits for a send in flight.
const shutdownTimeout = 2 * time.Second

type Options struct {
	Clock      clockwork.Clock
	ClientID   string
	LargeImage string
	LargeText  string
}

// Reporter sends updates from its own goroutine so a stuck presence socket
// never blocks the caller. Only the newest unsent update is kept.
type Reporter struct {
	client    Client
	startedAt time.Time
	pending   *Activity
	wake      chan struct{}
	stop      chan struct{}
	stopped   chan struct{}
	opts      Options
	mu        syncutil.Mutex
	connected bool
	disabled  bool
}

func NewReporter(c Client, opts Options) *Reporter {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Reporter{
		client:    c,
		opts:      opts,
		startedAt: opts.Clock.Now(),
	}
}

// Connect logs in to the presence service and starts the sender. A failure
// leaves the reporter disabled; callers may ignore the returned error.
func (r *Reporter) Connect() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.connected {
		return nil
	}
	if r.disabled {
		return ErrDisabled
	}
	if err := r.client.Login(r.opts.ClientID); err != nil {
		r.disabled = true
		log.Warn().Err(err).Msg("presence unavailable, reporting disabled")
		return fmt.Errorf("presence login: %w", err)
	}
	r.connected = true
	r.wake = make(chan struct{}, 1)
	r.stop = make(chan struct{})
	r.stopped = make(chan struct{})
	go r.run(r.wake, r.stop, r.stopped)

	log.Info().Msg("presence connected")
	return nil
}

func (r *Reporter) Connected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected
}

// Report queues u if connected and returns immediately.
func (r *Reporter) Report(u Update) {
	r.mu.Lock()
	if !r.connected {
		r.mu.Unlock()
		return
	}
	started := u.StartedAt
	if started.IsZero() {
		started = r.startedAt
	}
	r.pending = &Activity{
		Details:    u.Details,
		State:      u.State,
		StartedAt:  started,
		LargeImage: r.opts.LargeImage,
		LargeText:  r.opts.LargeText,
	}
	wake := r.wake
	r.mu.Unlock()

	select {
	case wake <- struct{}{}:
	default:
	}
}

// Disconnect stops reporting for good. It is safe to call more than once.
func (r *Reporter) Disconnect() {
	r.mu.Lock()
	r.disabled = true
	r.connected = false
	stop, stopped := r.stop, r.stopped
	r.stop = nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	select {
	case <-stopped:
		log.Info().Msg("presence disconnected")
	case <-r.opts.Clock.After(shutdownTimeout):
		log.Warn().Msg("presence sender did not stop in time")
	}
}

func (r *Reporter) run(wake, stop, stopped chan struct{}) {
	defer close(stopped)
	for {
		select {
		case <-stop:
			r.send()
			r.client.Logout()
			return
		case <-wake:
			if !r.send() {
				r.client.Logout()
				return
			}
		}
	}
}

// send pushes the pending update, if any. A transport error disables the
// reporter and returns false.
func (r *Reporter) send() bool {
	r.mu.Lock()
	a := r.pending
	r.pending = nil
	r.mu.Unlock()

	if a == nil {
		return true
	}
	if err := r.client.SetActivity(*a); err != nil {
		log.Warn().Err(err).Str("details", a.Details).Msg("presence update failed, disconnecting")
		r.mu.Lock()
		r.connected = false
		r.disabled = true
		r.pending = nil
		r.mu.Unlock()
		return false
	}
	log.Debug().Str("details", a.Details).Str("state", a.State).Msg("presence updated")
	return true
}
