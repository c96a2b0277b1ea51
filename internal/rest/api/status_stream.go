package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sergeii/servermon/internal/core/entities/snapshot"
	"github.com/sergeii/servermon/internal/core/usecases/getstatus"
	"github.com/sergeii/servermon/internal/rest/model"
)

const streamWriteTimeout = time.Second * 5

var streamUpgrader = websocket.Upgrader{ // nolint: gochecknoglobals
	CheckOrigin: sameOrigin,
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := strings.ToLower(strings.TrimSpace(r.Host))
	originHost := strings.ToLower(strings.TrimSpace(u.Host))
	return host == originHost
}

// StreamStatus godoc
// @Summary      Stream server status
// @Description  Upgrade to a websocket and push every new status of the monitored server
// @Tags         status
// @Produce      json
// @Success      101 {object} model.Status
// @Router       /status/stream [get]
func (a *API) StreamStatus(c *gin.Context) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// subscribe before reading the latest status, so that nothing published in between is lost
	updates, err := a.container.GetStatus.Watch(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("Unable to watch status")
		c.Status(http.StatusInternalServerError)
		return
	}

	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already responded to the client
		a.logger.Debug().Err(err).Msg("Unable to upgrade status stream")
		return
	}
	defer conn.Close() // nolint: errcheck

	a.metrics.StreamClients.Inc()
	defer a.metrics.StreamClients.Dec()

	a.logger.Debug().Str("remote", c.ClientIP()).Msg("Status stream client connected")

	// clients are not expected to send anything, reading only detects disconnects
	go func() {
		defer cancel()
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	latest, err := a.container.GetStatus.Execute(ctx)
	switch {
	case err == nil:
		if writeErr := a.writeStatus(conn, latest); writeErr != nil {
			return
		}
	case errors.Is(err, getstatus.ErrStatusUnknown):
	default:
		a.logger.Warn().Err(err).Msg("Unable to obtain status for stream client")
	}

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug().Str("remote", c.ClientIP()).Msg("Status stream client disconnected")
			return
		case snp, ok := <-updates:
			if !ok {
				return
			}
			if writeErr := a.writeStatus(conn, snp); writeErr != nil {
				a.logger.Debug().Err(writeErr).Msg("Unable to push status to stream client")
				return
			}
		}
	}
}

func (a *API) writeStatus(conn *websocket.Conn, snp snapshot.Snapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(model.NewStatusFromDomain(snp))
}
