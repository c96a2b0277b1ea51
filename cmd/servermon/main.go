package main

import (
	"github.com/alecthomas/kong"
	"go.uber.org/fx"

	"github.com/sergeii/servermon/cmd/servermon/application"
	"github.com/sergeii/servermon/cmd/servermon/commander"
	"github.com/sergeii/servermon/cmd/servermon/components/api"
	"github.com/sergeii/servermon/cmd/servermon/components/exporter"
	"github.com/sergeii/servermon/cmd/servermon/components/monitor"
	"github.com/sergeii/servermon/cmd/servermon/components/observer"
	"github.com/sergeii/servermon/cmd/servermon/components/relay"
	"github.com/sergeii/servermon/cmd/servermon/config"
	"github.com/sergeii/servermon/cmd/servermon/logging"
	"github.com/sergeii/servermon/cmd/servermon/persistence"
	"github.com/sergeii/servermon/internal/settings"
)

// @title        servermon API
// @version      1.0
// @description  Status of a single monitored HTTP server.
// @BasePath     /api
func main() {
	cli := commander.CLI{}
	cli.Run.Plugins = kong.Plugins{
		&api.CLI{},
		&monitor.CLI{},
		&observer.CLI{},
		&relay.CLI{},
	}
	ctx := kong.Parse(
		&cli,
		kong.Name("servermon"),
		kong.Description("Single server status monitor"),
		kong.UsageOnError(),
		kong.Configuration(config.YAML),
		kong.ConfigureHelp(kong.HelpOptions{
			Summary:   true,
			Tree:      true,
			FlagsLast: true,
		}),
	)

	builder := application.NewBuilder(
		fx.Supply(persistence.Config{
			RedisURL: cli.Globals.RedisURL,
		}),
		fx.Provide(persistence.Provide),
		application.Module,
		fx.Supply(logging.Config{
			LogLevel:  cli.Globals.LogLevel,
			LogOutput: cli.Globals.LogOutput,
			Component: componentName(ctx),
		}),
		fx.Supply(settings.Settings{
			MonitorName:     cli.Globals.MonitorName,
			TargetURL:       cli.Globals.TargetURL,
			StatusRetention: cli.Globals.StatusRetention,
		}),
		fx.Provide(logging.Provide),
		fx.WithLogger(logging.FxLogger),
		fx.Supply(exporter.Config{
			HTTPListenAddress:   cli.Globals.ExporterHTTPListenAddress,
			HTTPReadTimeout:     cli.Globals.ExporterHTTPReadTimeout,
			HTTPWriteTimeout:    cli.Globals.ExporterHTTPWriteTimeout,
			HTTPShutdownTimeout: cli.Globals.ExporterHTTPShutdownTimeout,
		}),
		exporter.Module,
	)

	if err := ctx.Run(&cli.Globals, builder); err != nil {
		ctx.FatalIfErrorf(err)
	}
}

// componentName picks the leaf of "run <component>".
func componentName(ctx *kong.Context) string {
	if sel := ctx.Selected(); sel != nil {
		return sel.Name
	}
	return ""
}
