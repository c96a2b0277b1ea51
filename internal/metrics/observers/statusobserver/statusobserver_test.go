package statusobserver_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sergeii/servermon/internal/core/entities/snapshot"
	"github.com/sergeii/servermon/internal/core/entities/verdict"
	"github.com/sergeii/servermon/internal/core/repositories"
	"github.com/sergeii/servermon/internal/metrics"
	"github.com/sergeii/servermon/internal/metrics/observers/statusobserver"
)

type MockStatusRepository struct {
	mock.Mock
	repositories.StatusRepository
}

func (m *MockStatusRepository) Latest(ctx context.Context) (snapshot.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(snapshot.Snapshot), args.Error(1) // nolint: forcetypeassert
}

func TestStatusObserver_Observe(t *testing.T) {
	clock := clockwork.NewFakeClock()
	checkedAt := clock.Now().Add(-time.Second * 45)

	tests := []struct {
		name    string
		snp     snapshot.Snapshot
		wantUp  float64
		wantAge float64
	}{
		{
			"online",
			snapshot.New(uuid.New(), "http://example.com/", verdict.NewOnline(time.Millisecond*10), checkedAt, true),
			1,
			45,
		},
		{
			"offline",
			snapshot.New(uuid.New(), "http://example.com/", verdict.NewOffline("Bad Gateway", verdict.CauseProtocol, 0), checkedAt, true),
			0,
			45,
		},
		{
			"checking keeps previous state",
			snapshot.New(uuid.New(), "http://example.com/", verdict.NewChecking(), time.Time{}, true),
			-1,
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.TODO()
			logger := zerolog.Nop()
			collector := metrics.New()
			collector.StatusUp.Set(-1)

			repo := new(MockStatusRepository)
			repo.On("Latest", ctx).Return(tt.snp, nil)

			observer := statusobserver.New(collector, repo, clock, &logger)
			observer.Observe(ctx, collector)

			assert.Equal(t, tt.wantUp, testutil.ToFloat64(collector.StatusUp))
			assert.Equal(t, tt.wantAge, testutil.ToFloat64(collector.StatusAge))
			repo.AssertExpectations(t)
		})
	}
}

func TestStatusObserver_Observe_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"not found", repositories.ErrStatusNotFound},
		{"repository failure", errors.New("redis is down")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.TODO()
			logger := zerolog.Nop()
			collector := metrics.New()

			repo := new(MockStatusRepository)
			repo.On("Latest", ctx).Return(snapshot.Blank, tt.err)

			observer := statusobserver.New(collector, repo, clockwork.NewFakeClock(), &logger)
			observer.Observe(ctx, collector)

			assert.Equal(t, 0.0, testutil.ToFloat64(collector.StatusUp))
			assert.Equal(t, 0.0, testutil.ToFloat64(collector.StatusAge))
		})
	}
}
