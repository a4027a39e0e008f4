package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
	"workshop-system/pkg/constants"
	"workshop-system/pkg/middleware"
)

func runReportRouter(secure *echo.Group, ctrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	backOffice := authMW.RequireRoles(constants.RoleAdmin.String(), constants.RoleOffice.String())

	secure.GET("/reports/monthly", ctrl.GetMonthlyReports)
	secure.POST("/reports/monthly/generate", ctrl.GenerateMonthlyReports, backOffice)
	secure.POST("/reports/monthly/:id/approve", ctrl.ApproveReport, backOffice)
	secure.GET("/reports/workshops", ctrl.GetWorkshopReport)
}
