// Package relay serves the intermediary endpoint that probes the monitored
// server on behalf of clients that cannot reach it directly.
package relay

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sergeii/servermon/cmd/servermon/container"
	"github.com/sergeii/servermon/internal/core/usecases/relayserver"
	"github.com/sergeii/servermon/internal/prober/probers"
	"github.com/sergeii/servermon/internal/settings"
)

type Opts struct {
	ProbeTimeout time.Duration
	SnippetSize  int
}

type Relay struct {
	opts      Opts
	settings  settings.Settings
	container container.Container
	prober    probers.Prober
	logger    *zerolog.Logger
}

func New(
	opts Opts,
	settings settings.Settings,
	container container.Container,
	prober probers.Prober,
	logger *zerolog.Logger,
) *Relay {
	return &Relay{
		opts:      opts,
		settings:  settings,
		container: container,
		prober:    prober,
		logger:    logger,
	}
}

// Proxy godoc
// @Summary      Probe server through relay
// @Description  Probe the monitored server and describe the outcome. Always answers 200.
// @Tags         relay
// @Produce      json
// @Success      200 {object} relay.Envelope
// @Router       /proxy [get]
func (r *Relay) Proxy(c *gin.Context) {
	req := relayserver.NewRequest(r.settings.TargetURL, r.prober, r.opts.ProbeTimeout, r.opts.SnippetSize)
	env := r.container.RelayServer.Execute(c, req)
	c.JSON(http.StatusOK, env)
}

// Preflight answers CORS preflight requests.
func (r *Relay) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}
