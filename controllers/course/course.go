package courseController

import (
	"log"

	"rkzs/database"
	"rkzs/middleware"
	"rkzs/models"

	"github.com/gofiber/fiber/v2"
)

// CourseList returns the full catalog. The surface has no course
// create/update endpoint; the catalog is seeded at migration.
func CourseList(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Order("id asc").Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}
