package courseRoutes

import (
	courseControllers "rkzs/controllers/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	app.Get("/courses", courseControllers.CourseList)
}
