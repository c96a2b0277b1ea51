package testutils

import (
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/sergeii/servermon/cmd/servermon/application"
	"github.com/sergeii/servermon/cmd/servermon/components/api"
	"github.com/sergeii/servermon/cmd/servermon/components/relay"
	"github.com/sergeii/servermon/internal/core/repositories"
	"github.com/sergeii/servermon/internal/testutils/testapp"
)

type TestServerRepositories struct {
	Status   repositories.StatusRepository
	Commands repositories.CommandRepository
}

func prepareTestServer(tb fxtest.TB, module fx.Option, cfg fx.Option, extra ...fx.Option) (*httptest.Server, func()) {
	gin.SetMode(gin.ReleaseMode) // prevent gin from overwriting middlewares

	var router *gin.Engine
	fxopts := []fx.Option{
		cfg,
		fx.Provide(testapp.ProvideSettings),
		fx.Provide(testapp.ProvidePersistence),
		fx.Provide(testapp.NoLogging),
		application.Module,
		module,
		fx.NopLogger,
		fx.Populate(&router),
	}
	fxopts = append(fxopts, extra...)

	app := fxtest.New(tb, fxopts...)
	app.RequireStart()

	ts := httptest.NewServer(router)

	return ts, func() {
		defer app.RequireStop() // nolint: errcheck
		defer ts.Close()
	}
}

// PrepareTestServer runs the API component backed by an in-memory redis.
func PrepareTestServer(tb fxtest.TB, extra ...fx.Option) (*httptest.Server, func()) {
	cfg := fx.Supply(api.Config{
		HTTPListenAddr: "localhost:0",
	})
	return prepareTestServer(tb, api.Module, cfg, extra...)
}

func PrepareTestServerWithRepos(
	tb fxtest.TB,
	extra ...fx.Option,
) (*httptest.Server, TestServerRepositories, func()) {
	var repos TestServerRepositories
	extra = append(
		extra,
		fx.Populate(&repos.Status, &repos.Commands),
	)
	ts, cleanup := PrepareTestServer(tb, extra...)
	return ts, repos, cleanup
}

// PrepareTestRelay runs the relay component.
func PrepareTestRelay(tb fxtest.TB, cfg relay.Config, extra ...fx.Option) (*httptest.Server, func()) {
	if cfg.HTTPListenAddr == "" {
		cfg.HTTPListenAddr = "localhost:0"
	}
	return prepareTestServer(tb, relay.Module, fx.Supply(cfg), extra...)
}
