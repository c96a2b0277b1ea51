package relay

import (
	"context"
	"net"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/sergeii/servermon/cmd/servermon/application"
	"github.com/sergeii/servermon/cmd/servermon/build"
	"github.com/sergeii/servermon/cmd/servermon/commander"
	"github.com/sergeii/servermon/internal/prober/probers"
	"github.com/sergeii/servermon/internal/prober/probers/directprober"
	"github.com/sergeii/servermon/internal/rest"
	"github.com/sergeii/servermon/internal/rest/relay"
	"github.com/sergeii/servermon/internal/settings"
	"github.com/sergeii/servermon/pkg/http/httpserver"
)

type Config struct {
	HTTPListenAddr      string
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPShutdownTimeout time.Duration
	ProbeTimeout        time.Duration
	SnippetSize         int
}

type Component struct{}

func New(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	router *gin.Engine,
	cfg Config,
	logger *zerolog.Logger,
) (*Component, error) {
	ready := make(chan struct{})

	svr, err := httpserver.New(
		cfg.HTTPListenAddr,
		httpserver.WithShutdownTimeout(cfg.HTTPShutdownTimeout),
		httpserver.WithReadTimeout(cfg.HTTPReadTimeout),
		httpserver.WithWriteTimeout(cfg.HTTPWriteTimeout),
		httpserver.WithHandler(router),
		httpserver.WithReadySignal(func(addr net.Addr) {
			logger.Info().Stringer("addr", addr).Msg("Relay server is ready to accept connections")
			close(ready)
		}),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to set up relay server")
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if serveErr := svr.ListenAndServe(); serveErr != nil {
					logger.Warn().Err(serveErr).Msg("Relay server exited prematurely")
					if shutErr := shutdowner.Shutdown(); shutErr != nil {
						logger.Error().Err(shutErr).Msg("Failed to handle premature relay server shutdown")
					}
				}
			}()
			<-ready
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			if stopErr := svr.Stop(stopCtx); stopErr != nil {
				logger.Error().Err(stopErr).Msg("Failed to stop relay server gracefully")
				return stopErr
			}
			logger.Info().Msg("Relay server stopped")
			return nil
		},
	})

	return &Component{}, nil
}

type command struct {
	HTTPListenAddress   string        `default:":3001" help:"Sets the address where the relay server listens for incoming http requests"`       // nolint:lll
	HTTPReadTimeout     time.Duration `default:"5s"    help:"Sets the maximum duration to read the request before timing out"`                  // nolint:lll
	HTTPWriteTimeout    time.Duration `default:"15s"   help:"Sets the maximum duration to write a response, must exceed the probe timeout"`     // nolint:lll
	HTTPShutdownTimeout time.Duration `default:"10s"   help:"Defines how long the server waits to gracefully close connections before exiting"` // nolint:lll
	SnippetSize         int           `default:"2048"  help:"Limits how many bytes of the server response are passed to relay clients"`         // nolint:lll
}

func (c *command) Run(globals *commander.Globals, builder *application.Builder) error {
	app := builder.
		Add(
			fx.Supply(
				Config{
					HTTPListenAddr:      c.HTTPListenAddress,
					HTTPReadTimeout:     c.HTTPReadTimeout,
					HTTPWriteTimeout:    c.HTTPWriteTimeout,
					HTTPShutdownTimeout: c.HTTPShutdownTimeout,
					ProbeTimeout:        globals.ProbeTimeout,
					SnippetSize:         c.SnippetSize,
				},
			),
			Module,
			fx.Invoke(func(logger *zerolog.Logger, _ *Component) {
				logger.Info().
					Str("version", build.Version).
					Str("commit", build.Commit).
					Str("address", c.HTTPListenAddress).
					Str("target", globals.TargetURL).
					Msg("Starting relay server")
			}),
		).
		WithExporter().
		Build()
	app.Run()
	return nil
}

type CLI struct {
	Relay command `cmd:"" help:"Start relay server"`
}

func provideRelayOpts(cfg Config) relay.Opts {
	return relay.Opts{
		ProbeTimeout: cfg.ProbeTimeout,
		SnippetSize:  cfg.SnippetSize,
	}
}

func provideProber(s settings.Settings, clock clockwork.Clock) probers.Prober {
	return directprober.New(directprober.Opts{URL: s.TargetURL}, clock)
}

var Module = fx.Module("relay",
	fx.Provide(fx.Private, provideRelayOpts),
	fx.Provide(fx.Private, provideProber),
	fx.Provide(fx.Private, relay.New),
	fx.Provide(rest.NewRelayRouter),
	fx.Provide(New),
)
