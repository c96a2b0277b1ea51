package sendcommand

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sergeii/servermon/internal/core/entities/command"
	"github.com/sergeii/servermon/internal/core/repositories"
)

type UseCase struct {
	commandRepo repositories.CommandRepository
	logger      *zerolog.Logger
}

func New(
	commandRepo repositories.CommandRepository,
	logger *zerolog.Logger,
) UseCase {
	return UseCase{
		commandRepo: commandRepo,
		logger:      logger,
	}
}

func (uc UseCase) Execute(ctx context.Context, cmd command.Command) error {
	if err := uc.commandRepo.Send(ctx, cmd); err != nil {
		uc.logger.Error().Err(err).Stringer("command", cmd).Msg("Unable to send command")
		return err
	}
	uc.logger.Info().Stringer("command", cmd).Msg("Sent command to monitor")
	return nil
}
