package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sergeii/servermon/internal/core/entities/command"
	"github.com/sergeii/servermon/internal/rest/model"
)

// SendCommand godoc
// @Summary      Send monitor command
// @Description  Ask the monitor to refresh the status now, pause or resume scheduled checks
// @Tags         monitor
// @Accept       json
// @Produce      json
// @Param        command body model.MonitorCommand true "Command"
// @Success      202
// @Failure      400 {object} model.Error
// @Router       /monitor/commands [post]
func (a *API) SendCommand(c *gin.Context) {
	var req model.MonitorCommand
	if err := c.ShouldBindJSON(&req); err != nil {
		a.logger.Debug().Err(err).Msg("Received invalid monitor command")
		c.JSON(http.StatusBadRequest, model.Error{Error: "Invalid command"})
		return
	}

	cmd, err := command.Parse(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Error{Error: "Invalid command"})
		return
	}

	if err := a.container.SendCommand.Execute(c, cmd); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusAccepted)
}
