package rest

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sergeii/servermon/api/docs" // nolint: revive
	"github.com/sergeii/servermon/internal/rest/api"
	"github.com/sergeii/servermon/internal/rest/relay"
)

func NewRouter(a *api.API) *gin.Engine {
	router := gin.Default()
	router.GET("/status", a.Status)
	router.GET("/api/status", a.ViewStatus)
	router.GET("/api/status/stream", a.StreamStatus)
	router.POST("/api/monitor/commands", a.SendCommand)
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}

func NewRelayRouter(r *relay.Relay) *gin.Engine {
	router := gin.Default()
	proxy := router.Group("/api/proxy", relay.CORS())
	proxy.GET("", r.Proxy)
	proxy.OPTIONS("", r.Preflight)
	return router
}
