package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
)

func runWorkshopRouter(secure *echo.Group, ctrl *controllers.WorkshopController) {
	secure.GET("/workshops", ctrl.GetWorkshops)
	secure.GET("/workshops/:id", ctrl.FindWorkshop)
	secure.POST("/workshops", ctrl.CreateWorkshop)
	secure.PUT("/workshops/:id", ctrl.UpdateWorkshop)
	secure.PATCH("/workshops/:id/checklist", ctrl.UpdateChecklist)
	secure.DELETE("/workshops/:id", ctrl.DeleteWorkshop)

	secure.GET("/workshops/:id/equipment", ctrl.GetWorkshopEquipment)
	secure.GET("/workshops/:id/work-order.pdf", ctrl.GetWorkOrderPDF)

	secure.POST("/workshops/:id/summary", ctrl.CreateSummary)
	secure.GET("/workshops/:id/summary", ctrl.GetSummary)
}
