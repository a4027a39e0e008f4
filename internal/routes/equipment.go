package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
)

func runEquipmentRouter(secure *echo.Group, ctrl *controllers.EquipmentController) {
	secure.GET("/equipment", ctrl.GetEquipmentList)
	secure.GET("/equipment/:id", ctrl.FindEquipment)
	secure.POST("/equipment", ctrl.CreateEquipment)
	secure.DELETE("/equipment/:id", ctrl.DeleteEquipment)

	secure.POST("/equipment/:id/advance", ctrl.AdvanceStatus)
	secure.PATCH("/equipment/:id/status", ctrl.SetStatus)
	secure.POST("/equipment/batch-status", ctrl.BatchSetStatus)
	secure.GET("/equipment/:id/events", ctrl.GetStatusEvents)
}
