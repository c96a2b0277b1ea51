package reportstatus

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sergeii/servermon/internal/core/entities/snapshot"
	"github.com/sergeii/servermon/internal/core/entities/verdict"
	"github.com/sergeii/servermon/internal/core/repositories"
	"github.com/sergeii/servermon/internal/metrics"
)

type UseCase struct {
	statusRepo repositories.StatusRepository
	metrics    *metrics.Collector
	logger     *zerolog.Logger
}

func New(
	statusRepo repositories.StatusRepository,
	metrics *metrics.Collector,
	logger *zerolog.Logger,
) UseCase {
	return UseCase{
		statusRepo: statusRepo,
		metrics:    metrics,
		logger:     logger,
	}
}

func (uc UseCase) Execute(ctx context.Context, snp snapshot.Snapshot) error {
	switch snp.Verdict.State { // nolint: exhaustive
	case verdict.Online:
		uc.metrics.StatusUp.Set(1)
	case verdict.Offline:
		uc.metrics.StatusUp.Set(0)
	}

	if err := uc.statusRepo.Save(ctx, snp); err != nil {
		uc.metrics.MonitorPublishErrors.Inc()
		uc.logger.Error().
			Err(err).
			Stringer("id", snp.ID).Stringer("verdict", snp.Verdict).
			Msg("Failed to publish status")
		return err
	}

	uc.logger.Debug().
		Stringer("id", snp.ID).Stringer("verdict", snp.Verdict).Bool("connected", snp.Connected).
		Msg("Published status")

	return nil
}
