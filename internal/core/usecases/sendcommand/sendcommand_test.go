package sendcommand_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sergeii/servermon/internal/core/entities/command"
	"github.com/sergeii/servermon/internal/core/repositories"
	"github.com/sergeii/servermon/internal/core/usecases/sendcommand"
)

type MockCommandRepository struct {
	mock.Mock
	repositories.CommandRepository
}

func (m *MockCommandRepository) Send(ctx context.Context, cmd command.Command) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func TestSendCommandUseCase_OK(t *testing.T) {
	ctx := context.TODO()
	logger := zerolog.Nop()

	repo := new(MockCommandRepository)
	repo.On("Send", ctx, command.Refresh).Return(nil)

	uc := sendcommand.New(repo, &logger)
	assert.NoError(t, uc.Execute(ctx, command.Refresh))
	repo.AssertExpectations(t)
}

func TestSendCommandUseCase_Error(t *testing.T) {
	ctx := context.TODO()
	logger := zerolog.Nop()
	sendErr := errors.New("redis is down")

	repo := new(MockCommandRepository)
	repo.On("Send", ctx, command.Pause).Return(sendErr)

	uc := sendcommand.New(repo, &logger)
	assert.ErrorIs(t, uc.Execute(ctx, command.Pause), sendErr)
}
