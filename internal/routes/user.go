package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
	"workshop-system/pkg/constants"
	"workshop-system/pkg/middleware"
)

func runUserRouter(secure *echo.Group, ctrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(constants.RoleAdmin.String())

	secure.GET("/users", ctrl.GetUsers)
	secure.GET("/users/:id", ctrl.FindUser)
	secure.POST("/users", ctrl.CreateUser, adminOnly)
	secure.PATCH("/users/:id/role", ctrl.UpdateUserRole, adminOnly)
	secure.DELETE("/users/:id", ctrl.DeleteUser, adminOnly)
}
