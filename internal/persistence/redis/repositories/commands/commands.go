package commands

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sergeii/servermon/internal/core/entities/command"
	"github.com/sergeii/servermon/internal/persistence/redis/keyspace"
	"github.com/sergeii/servermon/internal/settings"
)

const channelSuffix = "commands"

// Repository passes monitor commands over redis pub/sub.
// Commands are not queued: a command sent while no monitor listens is lost.
type Repository struct {
	client  *redis.Client
	channel string
	logger  *zerolog.Logger
}

func New(client *redis.Client, s settings.Settings, logger *zerolog.Logger) *Repository {
	return &Repository{
		client:  client,
		channel: keyspace.New(s.MonitorName).Key(channelSuffix),
		logger:  logger,
	}
}

func (r *Repository) Send(ctx context.Context, cmd command.Command) error {
	if err := r.client.Publish(ctx, r.channel, cmd.String()).Err(); err != nil {
		return fmt.Errorf("failed to send command %s: %w", cmd, err)
	}
	return nil
}

func (r *Repository) Listen(ctx context.Context) (<-chan command.Command, error) {
	pubsub := r.client.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close() // nolint: errcheck
		return nil, fmt.Errorf("failed to listen for commands: %w", err)
	}

	cmds := make(chan command.Command)
	go func() {
		defer close(cmds)
		defer pubsub.Close() // nolint: errcheck

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				cmd, err := command.Parse(msg.Payload)
				if err != nil {
					r.logger.Warn().Err(err).Str("payload", msg.Payload).Msg("Received unknown command")
					continue
				}
				select {
				case cmds <- cmd:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return cmds, nil
}
