package relayserver

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/sergeii/servermon/internal/core/entities/outcome"
	"github.com/sergeii/servermon/internal/metrics"
	"github.com/sergeii/servermon/internal/prober/probers"
	"github.com/sergeii/servermon/internal/relay"
)

type Request struct {
	Target       string
	Prober       probers.Prober
	ProbeTimeout time.Duration
	SnippetSize  int
}

func NewRequest(target string, prober probers.Prober, probeTimeout time.Duration, snippetSize int) Request {
	return Request{
		Target:       target,
		Prober:       prober,
		ProbeTimeout: probeTimeout,
		SnippetSize:  snippetSize,
	}
}

type UseCase struct {
	flights *singleflight.Group
	metrics *metrics.Collector
	clock   clockwork.Clock
	logger  *zerolog.Logger
}

func New(
	metrics *metrics.Collector,
	clock clockwork.Clock,
	logger *zerolog.Logger,
) UseCase {
	return UseCase{
		flights: &singleflight.Group{},
		metrics: metrics,
		clock:   clock,
		logger:  logger,
	}
}

// Execute probes the server on behalf of a relay client.
// Clients asking at the same time share a single probe of the same target.
func (uc UseCase) Execute(ctx context.Context, req Request) relay.Envelope {
	uc.metrics.RelayRequests.Inc()

	res, _, shared := uc.flights.Do(req.Target, func() (any, error) {
		// a client going away must not cut the probe short for the others
		return uc.probe(context.WithoutCancel(ctx), req), nil
	})
	if shared {
		uc.metrics.RelayShared.Inc()
	}

	out := res.(outcome.Outcome) // nolint: forcetypeassert
	return relay.NewEnvelope(req.Target, out, uc.clock.Now(), req.SnippetSize)
}

func (uc UseCase) probe(ctx context.Context, req Request) outcome.Outcome {
	probeCtx, cancel := context.WithTimeout(ctx, req.ProbeTimeout)
	defer cancel()

	out := req.Prober.Probe(probeCtx)

	uc.metrics.RelayDurations.Observe(out.Elapsed().Seconds())

	if failed, ok := out.(outcome.Failed); ok {
		uc.metrics.RelayErrors.Inc()
		uc.logger.Warn().
			Stringer("kind", failed.Kind).Str("error", failed.Message).Str("target", req.Target).
			Msg("Relay was unable to reach server")
	}

	return out
}
