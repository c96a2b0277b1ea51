// Package connectivity tells whether the monitor host itself can reach the network.
package connectivity

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/sergeii/servermon/internal/metrics"
)

const (
	DefaultAddress  = "1.1.1.1:53"
	DefaultInterval = time.Second * 15
	DefaultTimeout  = time.Second * 4
)

const defaultPort = "53"

type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

type Opts struct {
	Address  string
	Interval time.Duration
	Timeout  time.Duration
}

type Watcher struct {
	opts    Opts
	dialer  Dialer
	clock   clockwork.Clock
	metrics *metrics.Collector
	logger  *zerolog.Logger
}

func New(
	opts Opts,
	dialer Dialer,
	clock clockwork.Clock,
	metrics *metrics.Collector,
	logger *zerolog.Logger,
) *Watcher {
	opts.Address = normalizeAddress(opts.Address)
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Watcher{
		opts:    opts,
		dialer:  dialer,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// Watch checks connectivity right away and then every interval,
// calling report whenever the outcome differs from the previous one.
// The host is assumed to be online before the first check.
// Watch blocks until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, report func(online bool)) {
	ticker := w.clock.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	online := true
	check := func() {
		current := w.Check(ctx)
		if ctx.Err() != nil {
			return
		}
		if current == online {
			return
		}
		online = current
		w.metrics.ConnectivityChanges.WithLabelValues(strconv.FormatBool(online)).Inc()
		w.logger.Info().Str("address", w.opts.Address).Bool("online", online).Msg("Connectivity changed")
		report(online)
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			check()
		}
	}
}

// Check dials the configured address once.
func (w *Watcher) Check(ctx context.Context) bool {
	dialCtx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
	defer cancel()

	conn, err := w.dialer.DialContext(dialCtx, "tcp", w.opts.Address)
	if err != nil {
		w.metrics.ConnectivityUp.Set(0)
		w.logger.Debug().Err(err).Str("address", w.opts.Address).Msg("Connectivity check failed")
		return false
	}
	conn.Close() // nolint: errcheck
	w.metrics.ConnectivityUp.Set(1)
	return true
}

func normalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return DefaultAddress
	}
	if _, _, err := net.SplitHostPort(address); err != nil {
		return net.JoinHostPort(address, defaultPort)
	}
	return address
}
