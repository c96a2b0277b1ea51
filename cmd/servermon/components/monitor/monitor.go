package monitor

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/sergeii/servermon/cmd/servermon/application"
	"github.com/sergeii/servermon/cmd/servermon/commander"
	"github.com/sergeii/servermon/cmd/servermon/container"
	"github.com/sergeii/servermon/internal/connectivity"
	"github.com/sergeii/servermon/internal/controller"
	"github.com/sergeii/servermon/internal/core/entities/command"
	"github.com/sergeii/servermon/internal/core/entities/snapshot"
	"github.com/sergeii/servermon/internal/core/entities/verdict"
	"github.com/sergeii/servermon/internal/core/usecases/checkserver"
	"github.com/sergeii/servermon/internal/metrics"
	"github.com/sergeii/servermon/internal/prober/probers"
	"github.com/sergeii/servermon/internal/prober/probers/directprober"
	"github.com/sergeii/servermon/internal/prober/probers/relayprober"
	"github.com/sergeii/servermon/internal/settings"
)

const (
	ViaDirect = "direct"
	ViaRelay  = "relay"
)

const DefaultCommandRetryInterval = time.Second * 5

type Config struct {
	CheckInterval time.Duration `validate:"min=1s"`
	ProbeTimeout  time.Duration `validate:"min=100ms"`

	Via      string `validate:"oneof=direct relay"`
	RelayURL string `validate:"required_if=Via relay,omitempty,httpurl"`

	ConnectivityCheck    bool
	ConnectivityAddress  string `validate:"required_if=ConnectivityCheck true"`
	ConnectivityInterval time.Duration
	ConnectivityTimeout  time.Duration

	CommandRetryInterval time.Duration
}

func (c Config) Validate(v *validator.Validate) error {
	return v.Struct(c)
}

type Component struct{}

func run(
	stop chan struct{},
	stopped chan struct{},
	ctrl *controller.Controller,
	watcher *connectivity.Watcher,
	cont container.Container,
	clock clockwork.Clock,
	logger *zerolog.Logger,
	cfg Config,
) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info().
		Dur("interval", cfg.CheckInterval).
		Dur("timeout", cfg.ProbeTimeout).
		Str("via", cfg.Via).
		Bool("connectivity", cfg.ConnectivityCheck).
		Msg("Starting monitor")

	wg := &sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		receiveCommands(ctx, ctrl, cont, clock, logger, cfg.CommandRetryInterval)
	}()

	if cfg.ConnectivityCheck {
		wg.Add(1)
		go func() {
			defer wg.Done()
			watcher.Watch(ctx, ctrl.OnConnectivityChange)
		}()
	}

	ctrl.Start()

	<-stop
	ctrl.Stop()
	cancel()
	wg.Wait()

	close(stopped)
}

// receiveCommands keeps the monitor subscribed to commands,
// resubscribing whenever the subscription fails or ends.
func receiveCommands(
	ctx context.Context,
	ctrl *controller.Controller,
	cont container.Container,
	clock clockwork.Clock,
	logger *zerolog.Logger,
	retryInterval time.Duration,
) {
	if retryInterval <= 0 {
		retryInterval = DefaultCommandRetryInterval
	}
	for {
		err := cont.ReceiveCommands.Execute(ctx, func(cmd command.Command) {
			handleCommand(ctrl, cmd)
		})
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			logger.Error().Err(err).Dur("retry", retryInterval).Msg("Monitor is unable to receive commands")
		} else {
			logger.Warn().Dur("retry", retryInterval).Msg("Command subscription ended unexpectedly")
		}
		select {
		case <-ctx.Done():
			return
		case <-clock.After(retryInterval):
		}
	}
}

func handleCommand(ctrl *controller.Controller, cmd command.Command) {
	switch cmd {
	case command.Refresh:
		ctrl.Refresh()
	case command.Pause:
		ctrl.OnVisibilityChange(true)
	case command.Resume:
		ctrl.OnVisibilityChange(false)
	}
}

func New(
	lc fx.Lifecycle,
	ctrl *controller.Controller,
	watcher *connectivity.Watcher,
	cont container.Container,
	clock clockwork.Clock,
	logger *zerolog.Logger,
	cfg Config,
) *Component {
	stopped := make(chan struct{})
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go run(stop, stopped, ctrl, watcher, cont, clock, logger, cfg) // nolint: contextcheck
			return nil
		},
		OnStop: func(context.Context) error {
			close(stop)
			<-stopped
			logger.Info().Msg("Monitor stopped")
			return nil
		},
	})

	return &Component{}
}

type monitorCmd struct {
	CheckInterval time.Duration `default:"30s"    help:"Sets how often the monitored server is checked"`
	Via           string        `default:"direct" enum:"direct,relay" help:"Chooses whether the server is checked directly or through a relay"` // nolint:lll
	RelayURL      string        `help:"Defines the relay endpoint used when checking through a relay, e.g. http://localhost:3001/api/proxy"`    // nolint:lll

	ConnectivityCheck    bool          `default:"true"       negatable:"" help:"Enables watching the network connectivity of the monitor host"`          // nolint:lll
	ConnectivityAddress  string        `default:"1.1.1.1:53"              help:"Sets the TCP address dialed to tell whether the monitor host is online"` // nolint:lll
	ConnectivityInterval time.Duration `default:"15s"                     help:"Sets how often network connectivity is checked"`
	ConnectivityTimeout  time.Duration `default:"4s"                      help:"Sets the maximum time to wait for the connectivity check to connect"` // nolint:lll

	CommandRetryInterval time.Duration `default:"5s" help:"Sets how long to wait before subscribing to monitor commands again after a failure"` // nolint:lll
}

func (c *monitorCmd) Run(globals *commander.Globals, builder *application.Builder) error {
	app := builder.
		Add(
			fx.Supply(Config{
				CheckInterval:        c.CheckInterval,
				ProbeTimeout:         globals.ProbeTimeout,
				Via:                  c.Via,
				RelayURL:             c.RelayURL,
				ConnectivityCheck:    c.ConnectivityCheck,
				ConnectivityAddress:  c.ConnectivityAddress,
				ConnectivityInterval: c.ConnectivityInterval,
				ConnectivityTimeout:  c.ConnectivityTimeout,
				CommandRetryInterval: c.CommandRetryInterval,
			}),
			Module,
			fx.Invoke(func(_ *Component) {}),
		).
		WithExporter().
		Build()
	app.Run()
	return nil
}

type CLI struct {
	Monitor monitorCmd `cmd:"" help:"Start monitor"`
}

func provideProber(cfg Config, s settings.Settings, clock clockwork.Clock) probers.Prober {
	if cfg.Via == ViaRelay {
		return relayprober.New(relayprober.Opts{URL: cfg.RelayURL}, clock)
	}
	return directprober.New(directprober.Opts{URL: s.TargetURL}, clock)
}

func provideController(
	cfg Config,
	s settings.Settings,
	prober probers.Prober,
	cont container.Container,
	clock clockwork.Clock,
	collector *metrics.Collector,
	logger *zerolog.Logger,
) *controller.Controller {
	checker := controller.CheckerFunc(func(ctx context.Context) verdict.Verdict {
		return cont.CheckServer.Execute(ctx, checkserver.NewRequest(prober, cfg.ProbeTimeout))
	})
	sink := controller.SinkFunc(func(ctx context.Context, snp snapshot.Snapshot) {
		// publish failures are logged and counted by the use case
		_ = cont.ReportStatus.Execute(ctx, snp)
	})
	return controller.New(
		controller.Opts{Target: s.TargetURL, Interval: cfg.CheckInterval},
		checker,
		sink,
		clock,
		collector,
		logger,
	)
}

func provideWatcher(
	cfg Config,
	clock clockwork.Clock,
	collector *metrics.Collector,
	logger *zerolog.Logger,
) *connectivity.Watcher {
	return connectivity.New(
		connectivity.Opts{
			Address:  cfg.ConnectivityAddress,
			Interval: cfg.ConnectivityInterval,
			Timeout:  cfg.ConnectivityTimeout,
		},
		&net.Dialer{},
		clock,
		collector,
		logger,
	)
}

func validateConfig(cfg Config, v *validator.Validate) error {
	return cfg.Validate(v)
}

var Module = fx.Module("monitor",
	fx.Invoke(validateConfig),
	fx.Provide(fx.Private, provideProber),
	fx.Provide(fx.Private, provideController),
	fx.Provide(fx.Private, provideWatcher),
	fx.Provide(New),
)
