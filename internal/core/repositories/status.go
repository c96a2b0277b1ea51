package repositories

import (
	"context"

	"github.com/sergeii/servermon/internal/core/entities/snapshot"
)

type StatusRepository interface {
	Save(context.Context, snapshot.Snapshot) error
	Latest(context.Context) (snapshot.Snapshot, error)
	// Subscribe delivers every saved snapshot until the context is done.
	Subscribe(context.Context) (<-chan snapshot.Snapshot, error)
}
