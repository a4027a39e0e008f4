package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
)

func runDashboardRouter(secure *echo.Group, ctrl *controllers.DashboardController) {
	secure.GET("/dashboard/stats", ctrl.GetStats)
}
