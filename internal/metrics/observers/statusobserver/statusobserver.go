package statusobserver

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/sergeii/servermon/internal/core/entities/verdict"
	"github.com/sergeii/servermon/internal/core/repositories"
	"github.com/sergeii/servermon/internal/metrics"
)

type StatusObserver struct {
	statusRepo repositories.StatusRepository
	clock      clockwork.Clock
	logger     *zerolog.Logger
}

func New(
	collector *metrics.Collector,
	statusRepo repositories.StatusRepository,
	clock clockwork.Clock,
	logger *zerolog.Logger,
) StatusObserver {
	observer := StatusObserver{
		statusRepo: statusRepo,
		clock:      clock,
		logger:     logger,
	}
	collector.AddObserver(&observer)
	return observer
}

func (o StatusObserver) Observe(ctx context.Context, m *metrics.Collector) {
	snp, err := o.statusRepo.Latest(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrStatusNotFound) {
			o.logger.Debug().Msg("No status to observe")
			return
		}
		o.logger.Error().Err(err).Msg("Unable to observe status")
		return
	}

	switch snp.Verdict.State { // nolint: exhaustive
	case verdict.Online:
		m.StatusUp.Set(1)
	case verdict.Offline:
		m.StatusUp.Set(0)
	}

	if snp.HasBeenChecked() {
		age := o.clock.Since(snp.CheckedAt)
		m.StatusAge.Set(age.Seconds())
		o.logger.Debug().
			Stringer("verdict", snp.Verdict).Dur("age", age).
			Msg("Observed status")
	}
}
