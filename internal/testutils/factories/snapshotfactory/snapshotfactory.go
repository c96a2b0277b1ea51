package snapshotfactory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sergeii/servermon/internal/core/entities/snapshot"
	"github.com/sergeii/servermon/internal/core/entities/verdict"
	"github.com/sergeii/servermon/internal/core/repositories"
)

type BuildParams struct {
	ID        uuid.UUID
	Target    string
	Verdict   verdict.Verdict
	CheckedAt time.Time
	Connected bool
}

type BuildOption func(*BuildParams)

func WithID(id uuid.UUID) BuildOption {
	return func(p *BuildParams) {
		p.ID = id
	}
}

func WithTarget(target string) BuildOption {
	return func(p *BuildParams) {
		p.Target = target
	}
}

func WithVerdict(v verdict.Verdict) BuildOption {
	return func(p *BuildParams) {
		p.Verdict = v
	}
}

func WithOnline(elapsed time.Duration) BuildOption {
	return WithVerdict(verdict.NewOnline(elapsed))
}

func WithOffline(reason string, cause verdict.Cause, elapsed time.Duration) BuildOption {
	return WithVerdict(verdict.NewOffline(reason, cause, elapsed))
}

func WithCheckedAt(checkedAt time.Time) BuildOption {
	return func(p *BuildParams) {
		p.CheckedAt = checkedAt
	}
}

func WithNoConnectivity() BuildOption {
	return func(p *BuildParams) {
		p.Verdict = verdict.NewDisconnected()
		p.Connected = false
	}
}

func Build(opts ...BuildOption) snapshot.Snapshot {
	params := BuildParams{
		ID:        uuid.New(),
		Target:    "http://tassby.kozow.com:8074/",
		Verdict:   verdict.NewOnline(time.Millisecond * 150),
		CheckedAt: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
		Connected: true,
	}

	for _, opt := range opts {
		opt(&params)
	}

	return snapshot.New(params.ID, params.Target, params.Verdict, params.CheckedAt, params.Connected)
}

func Save(
	ctx context.Context,
	repo repositories.StatusRepository,
	snp snapshot.Snapshot,
) snapshot.Snapshot {
	if err := repo.Save(ctx, snp); err != nil {
		panic(err)
	}
	return snp
}

func Create(
	ctx context.Context,
	repo repositories.StatusRepository,
	opts ...BuildOption,
) snapshot.Snapshot {
	snp := Build(opts...)
	return Save(ctx, repo, snp)
}
