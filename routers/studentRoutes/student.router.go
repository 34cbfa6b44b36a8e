package studentRoutes

import (
	studentControllers "rkzs/controllers/student"
	"rkzs/middleware"
	"rkzs/models"
	studentValidators "rkzs/validators/student"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentRoutes(app *fiber.App) {
	app.Get("/students", middleware.JWTMiddleware, studentControllers.StudentList)
	app.Post("/students", studentValidators.AddStudent(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleFranchiseAdmin), studentControllers.AddStudent)

	app.Put("/students/:id/payment-status", studentValidators.StudentID(), studentValidators.PaymentStatus(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), studentControllers.UpdatePaymentStatus)
	app.Put("/students/:id/completion-status", studentValidators.StudentID(), studentValidators.CompletionStatus(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleFranchiseAdmin), studentControllers.UpdateCompletionStatus)

	// Role gate runs before the multipart body is touched, so a denied
	// request never writes a file that would need cleaning up.
	app.Post("/students/:id/upload-certificate", studentValidators.StudentID(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleFranchiseAdmin), studentControllers.UploadCertificate)
}
