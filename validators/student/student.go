package studentValidator

import (
	"strconv"
	"strings"

	"rkzs/middleware"
	"rkzs/models"

	"github.com/gofiber/fiber/v2"
)

type AddStudentRequest struct {
	Name     string `json:"name"`
	CourseID uint   `json:"course_id"`
}

// AddStudent validator middleware
func AddStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddStudentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStudent", reqData)
		return c.Next()
	}
}

// StudentID validates the :id route parameter
func StudentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Student ID is required!", nil)
		}

		// Validate StudentID is a valid integer
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Student ID!", nil)
		}

		c.Locals("studentID", id)
		return c.Next()
	}
}

// PaymentStatus validates the payment status payload
func PaymentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PaymentStatus string `json:"payment_status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !models.ValidStatus(reqData.PaymentStatus) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"payment_status": "Status must be 'pending' or 'completed'!",
			})
		}

		c.Locals("validatedStatus", reqData.PaymentStatus)
		return c.Next()
	}
}

// CompletionStatus validates the completion status payload
func CompletionStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CompletionStatus string `json:"completion_status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !models.ValidStatus(reqData.CompletionStatus) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"completion_status": "Status must be 'pending' or 'completed'!",
			})
		}

		c.Locals("validatedStatus", reqData.CompletionStatus)
		return c.Next()
	}
}
