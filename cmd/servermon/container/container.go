package container

import (
	"go.uber.org/fx"

	"github.com/sergeii/servermon/internal/core/usecases/checkserver"
	"github.com/sergeii/servermon/internal/core/usecases/getstatus"
	"github.com/sergeii/servermon/internal/core/usecases/receivecommands"
	"github.com/sergeii/servermon/internal/core/usecases/relayserver"
	"github.com/sergeii/servermon/internal/core/usecases/reportstatus"
	"github.com/sergeii/servermon/internal/core/usecases/sendcommand"
)

type Container struct {
	CheckServer     checkserver.UseCase
	ReportStatus    reportstatus.UseCase
	GetStatus       getstatus.UseCase
	SendCommand     sendcommand.UseCase
	ReceiveCommands receivecommands.UseCase
	RelayServer     relayserver.UseCase
}

func New(
	checkServerUseCase checkserver.UseCase,
	reportStatusUseCase reportstatus.UseCase,
	getStatusUseCase getstatus.UseCase,
	sendCommandUseCase sendcommand.UseCase,
	receiveCommandsUseCase receivecommands.UseCase,
	relayServerUseCase relayserver.UseCase,
) Container {
	return Container{
		CheckServer:     checkServerUseCase,
		ReportStatus:    reportStatusUseCase,
		GetStatus:       getStatusUseCase,
		SendCommand:     sendCommandUseCase,
		ReceiveCommands: receiveCommandsUseCase,
		RelayServer:     relayServerUseCase,
	}
}

var Module = fx.Module("container",
	fx.Provide(checkserver.New),
	fx.Provide(reportstatus.New),
	fx.Provide(getstatus.New),
	fx.Provide(sendcommand.New),
	fx.Provide(receivecommands.New),
	fx.Provide(relayserver.New),
	fx.Provide(New),
)
