package ipc

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, viewer ViewerInterface) {
	e.GET("/status", statusHandler(viewer))
	e.POST("/stop", commandHandler(viewer, CommandStop))
	e.POST("/next", commandHandler(viewer, CommandNext))
	e.POST("/previous", commandHandler(viewer, CommandPrevious))
	e.POST("/pause", commandHandler(viewer, CommandPause))
	e.POST("/random", commandHandler(viewer, CommandRandom))
}
