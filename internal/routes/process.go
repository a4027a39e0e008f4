package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
)

func runProcessRouter(secure *echo.Group, ctrl *controllers.ProcessController) {
	secure.GET("/processes", ctrl.GetProcesses)
	secure.GET("/processes/:id", ctrl.FindProcess)
	secure.POST("/processes", ctrl.CreateProcess)
	secure.PUT("/processes/:id", ctrl.UpdateProcess)
	secure.DELETE("/processes/:id", ctrl.DeleteProcess)
}
