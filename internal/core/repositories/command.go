package repositories

import (
	"context"

	"github.com/sergeii/servermon/internal/core/entities/command"
)

type CommandRepository interface {
	Send(context.Context, command.Command) error
	// Listen delivers every sent command until the context is done.
	Listen(context.Context) (<-chan command.Command, error)
}
