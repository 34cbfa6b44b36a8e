package userController

import (
	"log"

	"rkzs/config"
	"rkzs/database"
	"rkzs/middleware"
	"rkzs/models"
	userValidators "rkzs/validators/user"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// UserRow is the admin listing shape. Password and reset code never
// leave the server.
type UserRow struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// UserList returns every account for the admin dashboard.
func UserList(c *fiber.Ctx) error {
	var users []UserRow
	if err := database.Database.Db.Model(&models.User{}).
		Select("id, name, email, role").
		Order("id asc").
		Scan(&users).Error; err != nil {
		log.Printf("Error fetching user list: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User list.", users)
}

// CreateUser lets an admin provision an account with an explicit role.
func CreateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateUser").(*userValidators.CreateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User with this email already exists!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:       reqData.Name,
		Email:      reqData.Email,
		Password:   string(hashedPassword),
		UniqueCode: reqData.UniqueCode,
		Role:       models.Role(reqData.Role),
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error creating user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	log.Printf("User created by admin: %s (%s)", newUser.Email, newUser.Role)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully.", fiber.Map{
		"userId": newUser.ID,
	})
}
