package testapp

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/sergeii/servermon/internal/settings"
)

func ProvidePersistence(lc fx.Lifecycle) (*redis.Client, error) {
	mr, err := miniredis.Run()
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			defer mr.Close()
			return rdb.Close()
		},
	})

	return rdb, nil
}

func ProvideSettings() settings.Settings {
	return settings.Settings{
		MonitorName:     "Test Server",
		TargetURL:       "http://127.0.0.1:1/",
		StatusRetention: time.Minute,
	}
}

// WithTargetURL points the monitored target of the app at the given url.
func WithTargetURL(targetURL string) fx.Option {
	return fx.Decorate(func(s settings.Settings) settings.Settings {
		s.TargetURL = targetURL
		return s
	})
}

func NoLogging() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
