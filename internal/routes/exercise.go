package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
)

func runExerciseRouter(secure *echo.Group, ctrl *controllers.ExerciseController) {
	secure.GET("/exercises", ctrl.GetExercises)
	secure.GET("/exercises/:id", ctrl.FindExercise)
	secure.GET("/exercises/:id/equipment-preview", ctrl.GetEquipmentPreview)
}
