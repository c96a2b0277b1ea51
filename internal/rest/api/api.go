package api

import (
	"github.com/rs/zerolog"

	"github.com/sergeii/servermon/cmd/servermon/container"
	"github.com/sergeii/servermon/internal/metrics"
	"github.com/sergeii/servermon/internal/settings"
)

type API struct {
	settings  settings.Settings
	container container.Container
	metrics   *metrics.Collector
	logger    *zerolog.Logger
}

func New(
	settings settings.Settings,
	container container.Container,
	metrics *metrics.Collector,
	logger *zerolog.Logger,
) *API {
	return &API{
		settings:  settings,
		container: container,
		metrics:   metrics,
		logger:    logger,
	}
}
