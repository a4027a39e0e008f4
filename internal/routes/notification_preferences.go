package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
)

func runNotificationPreferencesRouter(secure *echo.Group, ctrl *controllers.NotificationPreferencesController) {
	secure.GET("/notification-preferences", ctrl.GetMyPreferences)
	secure.PUT("/notification-preferences", ctrl.UpdateMyPreferences)
}
