package getstatus

import (
	"context"
	"errors"

	"github.com/sergeii/servermon/internal/core/entities/snapshot"
	"github.com/sergeii/servermon/internal/core/repositories"
)

var (
	ErrStatusUnknown        = errors.New("status is unknown")
	ErrUnableToObtainStatus = errors.New("unable to obtain status from repository")
)

type UseCase struct {
	statusRepo repositories.StatusRepository
}

func New(
	statusRepo repositories.StatusRepository,
) UseCase {
	return UseCase{
		statusRepo: statusRepo,
	}
}

func (uc UseCase) Execute(ctx context.Context) (snapshot.Snapshot, error) {
	snp, err := uc.statusRepo.Latest(ctx)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrStatusNotFound):
			return snapshot.Blank, ErrStatusUnknown
		default:
			return snapshot.Blank, ErrUnableToObtainStatus
		}
	}
	return snp, nil
}

// Watch streams every new snapshot until the context is done.
func (uc UseCase) Watch(ctx context.Context) (<-chan snapshot.Snapshot, error) {
	return uc.statusRepo.Subscribe(ctx)
}
