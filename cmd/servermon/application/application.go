package application

import (
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"

	"github.com/sergeii/servermon/cmd/servermon/components/exporter"
	"github.com/sergeii/servermon/cmd/servermon/container"
	"github.com/sergeii/servermon/cmd/servermon/logging"
	"github.com/sergeii/servermon/internal/core/repositories"
	"github.com/sergeii/servermon/internal/metrics"
	"github.com/sergeii/servermon/internal/persistence/redis/repositories/commands"
	"github.com/sergeii/servermon/internal/persistence/redis/repositories/status"
	"github.com/sergeii/servermon/internal/settings"
	"github.com/sergeii/servermon/internal/validation"
)

type Repositories struct {
	fx.Out

	Status   repositories.StatusRepository
	Commands repositories.CommandRepository
}

func provideRepositories(
	statusRepo *status.Repository,
	commandRepo *commands.Repository,
) Repositories {
	return Repositories{
		Status:   statusRepo,
		Commands: commandRepo,
	}
}

func validateSettings(s settings.Settings, v *validator.Validate) error {
	return s.Validate(v)
}

type Builder struct {
	opts []fx.Option
}

func NewBuilder(opts ...fx.Option) *Builder {
	return &Builder{
		opts: opts,
	}
}

func (b *Builder) Add(opts ...fx.Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

func (b *Builder) WithExporter() *Builder {
	return b.Add(
		fx.Invoke(func(*exporter.Component) {}),
	)
}

func (b *Builder) Build() *fx.App {
	return fx.New(b.opts...)
}

var Module = fx.Module("application",
	fx.Invoke(logging.NoGlobal),
	fx.Provide(clockwork.NewRealClock),
	fx.Provide(validation.New),
	fx.Invoke(validateSettings),
	fx.Provide(status.New, commands.New),
	fx.Provide(provideRepositories),
	fx.Provide(metrics.New),
	container.Module,
)
