package userRoutes

import (
	userControllers "rkzs/controllers/user"
	"rkzs/middleware"
	"rkzs/models"
	userValidators "rkzs/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	app.Get("/users", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), userControllers.UserList)
	app.Post("/users", userValidators.CreateUser(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), userControllers.CreateUser)
}
