package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sergeii/servermon/internal/core/usecases/getstatus"
	"github.com/sergeii/servermon/internal/rest/model"
)

// ViewStatus godoc
// @Summary      View server status
// @Description  Return the latest known status of the monitored server
// @Tags         status
// @Produce      json
// @Success      200 {object} model.Status
// @Failure      404
// @Router       /status [get]
func (a *API) ViewStatus(c *gin.Context) {
	snp, err := a.container.GetStatus.Execute(c)
	if err != nil {
		switch {
		case errors.Is(err, getstatus.ErrStatusUnknown):
			a.logger.Debug().Msg("Requested status is not known yet")
			c.Status(http.StatusNotFound)
		default:
			a.logger.Error().Err(err).Msg("Unable to obtain status")
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, model.NewStatusFromDomain(snp))
}
