package probers

import (
	"context"
	"errors"
	"net"

	"github.com/sergeii/servermon/internal/core/entities/outcome"
)

const (
	DefaultUserAgent = "Server-Monitor/1.0"
	DefaultAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Prober performs a single probe attempt against the monitored server.
// Probe never fails: any error is reported as outcome.Failed.
type Prober interface {
	Probe(context.Context) outcome.Outcome
}

// ErrorKind maps a transport error onto a failure kind.
// A cancelled or expired context is always a timeout.
func ErrorKind(err error) outcome.Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return outcome.KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return outcome.KindTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return outcome.KindNetworkUnreachable
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return outcome.KindNetworkUnreachable
	}
	return outcome.KindUnknown
}
