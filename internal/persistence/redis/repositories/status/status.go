package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sergeii/servermon/internal/core/entities/snapshot"
	"github.com/sergeii/servermon/internal/core/entities/verdict"
	"github.com/sergeii/servermon/internal/core/repositories"
	"github.com/sergeii/servermon/internal/persistence/redis/keyspace"
	"github.com/sergeii/servermon/internal/settings"
)

const (
	latestKey     = "status"
	channelSuffix = "snapshots"
)

type Repository struct {
	client    *redis.Client
	key       string
	channel   string
	retention time.Duration
	logger    *zerolog.Logger
}

type item struct {
	ID        uuid.UUID     `json:"id"`
	Target    string        `json:"target"`
	State     verdict.State `json:"state"`
	Reason    string        `json:"reason"`
	Cause     verdict.Cause `json:"cause"`
	Elapsed   time.Duration `json:"elapsed"`
	Timed     bool          `json:"timed"`
	CheckedAt time.Time     `json:"checked_at"`
	Connected bool          `json:"connected"`
}

func New(client *redis.Client, s settings.Settings, logger *zerolog.Logger) *Repository {
	ks := keyspace.New(s.MonitorName)
	return &Repository{
		client:    client,
		key:       ks.Key(latestKey),
		channel:   ks.Key(channelSuffix),
		retention: s.StatusRetention,
		logger:    logger,
	}
}

func (r *Repository) Save(ctx context.Context, snp snapshot.Snapshot) error {
	encoded, err := encode(snp)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// retention of zero keeps the key forever
		pipe.Set(ctx, r.key, encoded, r.retention)
		pipe.Publish(ctx, r.channel, encoded)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (r *Repository) Latest(ctx context.Context) (snapshot.Snapshot, error) {
	value, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return snapshot.Blank, repositories.ErrStatusNotFound
		}
		return snapshot.Blank, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	snp, err := decode(value)
	if err != nil {
		return snapshot.Blank, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return snp, nil
}

func (r *Repository) Subscribe(ctx context.Context) (<-chan snapshot.Snapshot, error) {
	pubsub := r.client.Subscribe(ctx, r.channel)
	// wait for the subscription to be confirmed,
	// so that no snapshot published after return is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close() // nolint: errcheck
		return nil, fmt.Errorf("failed to subscribe to snapshots: %w", err)
	}

	snapshots := make(chan snapshot.Snapshot)
	go func() {
		defer close(snapshots)
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
				snp, err := decode([]byte(msg.Payload))
				if err != nil {
					r.logger.Warn().Err(err).Str("channel", msg.Channel).Msg("Received malformed snapshot")
					continue
				}
				select {
				case snapshots <- snp:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return snapshots, nil
}

func encode(snp snapshot.Snapshot) ([]byte, error) {
	return json.Marshal(item{
		ID:        snp.ID,
		Target:    snp.Target,
		State:     snp.Verdict.State,
		Reason:    snp.Verdict.Reason,
		Cause:     snp.Verdict.Cause,
		Elapsed:   snp.Verdict.Elapsed,
		Timed:     snp.Verdict.Timed,
		CheckedAt: snp.CheckedAt,
		Connected: snp.Connected,
	})
}

func decode(value []byte) (snapshot.Snapshot, error) {
	var it item
	if err := json.Unmarshal(value, &it); err != nil {
		return snapshot.Blank, err
	}
	v := verdict.Verdict{
		State:   it.State,
		Reason:  it.Reason,
		Cause:   it.Cause,
		Elapsed: it.Elapsed,
		Timed:   it.Timed,
	}
	return snapshot.New(it.ID, it.Target, v, it.CheckedAt, it.Connected), nil
}
