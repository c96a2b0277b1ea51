package receivecommands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sergeii/servermon/internal/core/entities/command"
	"github.com/sergeii/servermon/internal/core/repositories"
	"github.com/sergeii/servermon/internal/metrics"
)

type Handler func(command.Command)

type UseCase struct {
	commandRepo repositories.CommandRepository
	metrics     *metrics.Collector
	logger      *zerolog.Logger
}

func New(
	commandRepo repositories.CommandRepository,
	metrics *metrics.Collector,
	logger *zerolog.Logger,
) UseCase {
	return UseCase{
		commandRepo: commandRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute passes received commands to the handler until the context is done.
func (uc UseCase) Execute(ctx context.Context, handle Handler) error {
	commands, err := uc.commandRepo.Listen(ctx)
	if err != nil {
		return fmt.Errorf("unable to listen for commands: %w", err)
	}
	for cmd := range commands {
		uc.metrics.MonitorCommands.WithLabelValues(cmd.String()).Inc()
		uc.logger.Info().Stringer("command", cmd).Msg("Received command")
		handle(cmd)
	}
	return nil
}
