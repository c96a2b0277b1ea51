package getstatus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sergeii/servermon/internal/core/entities/snapshot"
	"github.com/sergeii/servermon/internal/core/entities/verdict"
	"github.com/sergeii/servermon/internal/core/repositories"
	"github.com/sergeii/servermon/internal/core/usecases/getstatus"
)

type MockStatusRepository struct {
	mock.Mock
	repositories.StatusRepository
}

func (m *MockStatusRepository) Latest(ctx context.Context) (snapshot.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(snapshot.Snapshot), args.Error(1) // nolint: forcetypeassert
}

func TestGetStatusUseCase_OK(t *testing.T) {
	ctx := context.TODO()
	snp := snapshot.New(uuid.New(), "http://localhost/", verdict.NewOnline(time.Millisecond), time.Now(), true)

	repo := new(MockStatusRepository)
	repo.On("Latest", ctx).Return(snp, nil)

	uc := getstatus.New(repo)
	got, err := uc.Execute(ctx)

	require.NoError(t, err)
	assert.Equal(t, snp, got)
	repo.AssertExpectations(t)
}

func TestGetStatusUseCase_Errors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{
			"not published yet",
			repositories.ErrStatusNotFound,
			getstatus.ErrStatusUnknown,
		},
		{
			"repository error",
			errors.New("connection reset"),
			getstatus.ErrUnableToObtainStatus,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.TODO()
			repo := new(MockStatusRepository)
			repo.On("Latest", ctx).Return(snapshot.Blank, tt.repoErr)

			uc := getstatus.New(repo)
			_, err := uc.Execute(ctx)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
