package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
)

func runClientContactRouter(secure *echo.Group, ctrl *controllers.ClientContactController) {
	secure.GET("/client-contacts", ctrl.GetContacts)
	secure.GET("/client-contacts/:id", ctrl.FindContact)
	secure.POST("/client-contacts", ctrl.CreateContact)
	secure.PUT("/client-contacts/:id", ctrl.UpdateContact)
	secure.DELETE("/client-contacts/:id", ctrl.DeleteContact)
}
