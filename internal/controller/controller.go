// Package controller decides when the monitored server is probed.
//
// A Controller owns a single event loop. Triggers (start, stop, refresh,
// connectivity and visibility changes, schedule ticks) are fed into the pure
// Transition function, and the resulting effects are carried out by the loop.
// Probes run in their own goroutines and report back to the loop, so all
// controller state is confined to one goroutine.
package controller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/sergeii/servermon/internal/core/entities/snapshot"
	"github.com/sergeii/servermon/internal/core/entities/verdict"
	"github.com/sergeii/servermon/internal/metrics"
)

const (
	DefaultInterval = time.Second * 30
	DefaultTimeout  = time.Second * 10
)

const eventBacklog = 16

type Checker interface {
	Check(context.Context) verdict.Verdict
}

type CheckerFunc func(context.Context) verdict.Verdict

func (f CheckerFunc) Check(ctx context.Context) verdict.Verdict {
	return f(ctx)
}

// Sink receives every verdict the controller produces, including the
// transient Checking verdict that precedes each probe.
type Sink interface {
	Receive(context.Context, snapshot.Snapshot)
}

type SinkFunc func(context.Context, snapshot.Snapshot)

func (f SinkFunc) Receive(ctx context.Context, snp snapshot.Snapshot) {
	f(ctx, snp)
}

type Opts struct {
	Target   string
	Interval time.Duration
}

type result struct {
	seq     uint64
	id      uuid.UUID
	verdict verdict.Verdict
}

type Controller struct {
	opts    Opts
	checker Checker
	sink    Sink
	clock   clockwork.Clock
	metrics *metrics.Collector
	logger  *zerolog.Logger

	events  chan Event
	results chan result
	done    chan struct{}

	// everything below is owned by the loop
	state       State
	ticker      clockwork.Ticker
	seq         uint64
	cancelProbe context.CancelFunc
	checkedAt   time.Time
}

func New(
	opts Opts,
	checker Checker,
	sink Sink,
	clock clockwork.Clock,
	metrics *metrics.Collector,
	logger *zerolog.Logger,
) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Controller{
		opts:    opts,
		checker: checker,
		sink:    sink,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
		events:  make(chan Event, eventBacklog),
		results: make(chan result),
		done:    make(chan struct{}),
		state:   InitialState(),
	}
}

// Start probes the server right away and then every interval.
// Calling Start again restarts the schedule.
func (c *Controller) Start() {
	c.send(EventStart)
}

// Stop cancels the schedule. A probe that is already running is let finish.
func (c *Controller) Stop() {
	c.send(EventStop)
}

// Refresh probes the server out of schedule.
func (c *Controller) Refresh() {
	c.send(EventRefresh)
}

func (c *Controller) OnConnectivityChange(online bool) {
	if online {
		c.send(EventConnectivityRestored)
	} else {
		c.send(EventConnectivityLost)
	}
}

func (c *Controller) OnVisibilityChange(hidden bool) {
	if hidden {
		c.send(EventHidden)
	} else {
		c.send(EventVisible)
	}
}

// Run processes events until the context is cancelled.
// It must be called at most once.
func (c *Controller) Run(ctx context.Context) {
	defer close(c.done)
	defer c.unschedule()
	defer c.cancelInflight()

	c.logger.Info().
		Str("target", c.opts.Target).Dur("interval", c.opts.Interval).
		Msg("Starting controller")

	for {
		var tick <-chan time.Time
		if c.ticker != nil {
			tick = c.ticker.Chan()
		}
		select {
		case <-ctx.Done():
			c.logger.Debug().Msg("Stopping controller")
			return
		case ev := <-c.events:
			c.handle(ctx, ev)
		case <-tick:
			c.handle(ctx, EventTick)
		case res := <-c.results:
			c.complete(ctx, res)
		}
	}
}

func (c *Controller) send(ev Event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

func (c *Controller) handle(ctx context.Context, ev Event) {
	next, eff := Transition(c.state, ev)

	c.logger.Debug().
		Stringer("event", ev).
		Bool("running", next.Running).Bool("scheduled", next.Scheduled).
		Bool("connected", next.Connected).Bool("hidden", next.Hidden).
		Msg("Handling controller event")

	c.state = next
	if eff.Unschedule {
		c.unschedule()
	}
	if eff.Disconnected {
		c.disconnect(ctx)
	}
	if eff.Probe {
		c.probe(ctx)
	}
	if eff.Schedule {
		c.schedule()
	}
}

func (c *Controller) schedule() {
	// never keep more than one ticker around
	c.unschedule()
	c.ticker = c.clock.NewTicker(c.opts.Interval)
}

func (c *Controller) unschedule() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

func (c *Controller) probe(ctx context.Context) {
	if c.cancelProbe != nil {
		c.metrics.CheckSuperseded.Inc()
		c.logger.Debug().Uint64("seq", c.seq).Msg("Superseding in-flight probe")
	}
	c.cancelInflight()

	c.seq++
	seq, id := c.seq, uuid.New()
	c.emit(ctx, id, verdict.NewChecking())

	probeCtx, cancel := context.WithCancel(ctx)
	c.cancelProbe = cancel

	go func() {
		v := c.checker.Check(probeCtx)
		select {
		case c.results <- result{seq: seq, id: id, verdict: v}:
		case <-probeCtx.Done():
		}
	}()
}

func (c *Controller) complete(ctx context.Context, res result) {
	if res.seq != c.seq {
		c.logger.Debug().
			Uint64("seq", res.seq).Uint64("current", c.seq).Stringer("verdict", res.verdict).
			Msg("Dropping result of stale probe")
		return
	}
	c.cancelInflight()
	c.checkedAt = c.clock.Now().UTC()
	c.emit(ctx, res.id, res.verdict)
}

func (c *Controller) disconnect(ctx context.Context) {
	// the result of a running probe would be misleading now
	c.cancelInflight()
	c.seq++
	c.emit(ctx, uuid.New(), verdict.NewDisconnected())
}

func (c *Controller) cancelInflight() {
	if c.cancelProbe != nil {
		c.cancelProbe()
		c.cancelProbe = nil
	}
}

func (c *Controller) emit(ctx context.Context, id uuid.UUID, v verdict.Verdict) {
	snp := snapshot.New(id, c.opts.Target, v, c.checkedAt, c.state.Connected)
	c.sink.Receive(ctx, snp)
}
