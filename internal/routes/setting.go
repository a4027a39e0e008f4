package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
	"workshop-system/pkg/constants"
	"workshop-system/pkg/middleware"
)

func runSettingRouter(secure *echo.Group, ctrl *controllers.SettingController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(constants.RoleAdmin.String())

	secure.GET("/settings", ctrl.GetSettings)
	secure.GET("/settings/:key", ctrl.FindSetting)
	secure.PUT("/settings/:key", ctrl.UpsertSetting, adminOnly)
}
