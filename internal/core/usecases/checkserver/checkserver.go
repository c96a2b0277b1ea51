package checkserver

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sergeii/servermon/internal/classifier"
	"github.com/sergeii/servermon/internal/core/entities/verdict"
	"github.com/sergeii/servermon/internal/metrics"
	"github.com/sergeii/servermon/internal/prober/probers"
)

type Request struct {
	Prober       probers.Prober
	ProbeTimeout time.Duration
}

func NewRequest(prober probers.Prober, probeTimeout time.Duration) Request {
	return Request{
		Prober:       prober,
		ProbeTimeout: probeTimeout,
	}
}

type UseCase struct {
	metrics *metrics.Collector
	logger  *zerolog.Logger
}

func New(
	metrics *metrics.Collector,
	logger *zerolog.Logger,
) UseCase {
	return UseCase{
		metrics: metrics,
		logger:  logger,
	}
}

// Execute probes the server and classifies the outcome.
// Probe failures are reported in the verdict and never returned as errors.
func (uc UseCase) Execute(ctx context.Context, req Request) verdict.Verdict {
	probeCtx, cancel := context.WithTimeout(ctx, req.ProbeTimeout)
	defer cancel()

	out := req.Prober.Probe(probeCtx)
	v := classifier.Classify(out)

	uc.metrics.CheckProbes.WithLabelValues(v.State.String()).Inc()
	uc.metrics.CheckProbeDurations.Observe(out.Elapsed().Seconds())

	if v.IsOnline() {
		uc.logger.Debug().
			Dur("elapsed", out.Elapsed()).
			Msg("Server is online")
		return v
	}

	uc.metrics.CheckProbeFailures.WithLabelValues(string(v.Cause)).Inc()
	uc.logger.Info().
		Str("reason", v.Reason).Str("cause", string(v.Cause)).
		Dur("elapsed", out.Elapsed()).Dur("timeout", req.ProbeTimeout).
		Msg("Server is offline")

	return v
}
