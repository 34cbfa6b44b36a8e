package authRoutes

import (
	authControllers "rkzs/controllers/auth"
	"rkzs/middleware"
	authValidators "rkzs/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// Paths are root-level, not grouped: the front end predates this
// server and calls them as-is.
func SetupAuthRoutes(app *fiber.App) {
	app.Post("/register", authValidators.Register(), authControllers.Register)
	app.Post("/login", authValidators.Login(), authControllers.Login)
	app.Get("/user", middleware.JWTMiddleware, authControllers.GetUser)

	app.Post("/request-password-reset", authValidators.RequestPasswordReset(), authControllers.RequestPasswordReset)
	app.Post("/verify-reset-code", authValidators.VerifyResetCode(), authControllers.VerifyResetCode)
	app.Post("/reset-password", authValidators.ResetPassword(), authControllers.ResetPassword)
}
