package authController

import (
	"log"
	"strings"

	"rkzs/config"
	"rkzs/database"
	"rkzs/middleware"
	"rkzs/models"
	"rkzs/utils"
	authValidators "rkzs/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidators.RegisterRequest)
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

	// Prepare User Struct for DB Entry
	newUser := models.User{
		Name:       reqData.Name,
		Email:      reqData.Email,
		Password:   string(hashedPassword),
		UniqueCode: reqData.UniqueCode,
		Role:       models.Role(reqData.Role),
	}

	// Create User
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	log.Printf("User registered: %s (%s)", newUser.Email, newUser.Role)

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidators.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		log.Printf("Login failed: user not found: %s", reqData.Email)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		log.Printf("Login failed: invalid password for user: %s", reqData.Email)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid password!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	if err != nil {
		log.Printf("Error generating JWT for user %s: %v", reqData.Email, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	log.Printf("User logged in: %s", reqData.Email)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"auth":  true,
		"token": token,
	})
}

// GetUser returns the calling user's own profile.
func GetUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User data fetched.", fiber.Map{
		"name":        user.Name,
		"unique_code": user.UniqueCode,
		"role":        user.Role,
	})
}

func RequestPasswordReset(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetRequest").(*authValidators.RequestPasswordResetRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	resetCode := utils.GenerateResetCode()

	// Overwrites any prior unconsumed code: only one is active at a time.
	result := db.Model(&models.User{}).Where("email = ?", reqData.Email).Update("reset_code", resetCode)
	if result.Error != nil {
		log.Printf("Error storing reset code for %s: %v", reqData.Email, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to request password reset!", nil)
	}
	if result.RowsAffected == 0 {
		log.Printf("Password reset request failed: user not found: %s", reqData.Email)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := utils.SendPasswordResetEmail(reqData.Email, resetCode); err != nil {
		log.Printf("Error sending password reset email to %s: %v", reqData.Email, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send password reset email!", nil)
	}

	log.Printf("Password reset email sent for user: %s", reqData.Email)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset email sent successfully.", nil)
}

func VerifyResetCode(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyReset").(*authValidators.VerifyResetCodeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		log.Printf("Verify reset code failed: user not found: %s", reqData.Email)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	// Case-insensitive compare. Verification does not consume the code;
	// only a completed password reset clears it.
	if user.ResetCode == "" || !strings.EqualFold(reqData.ResetCode, user.ResetCode) {
		log.Printf("Verify reset code failed: invalid code for user: %s", reqData.Email)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid reset code!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reset code verified.", nil)
}

func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*authValidators.ResetPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	// Single UPDATE writes the new password and clears the reset code
	result := database.Database.Db.Model(&models.User{}).
		Where("email = ?", reqData.Email).
		Updates(map[string]interface{}{
			"password":   string(hashedPassword),
			"reset_code": "",
		})
	if result.Error != nil {
		log.Printf("Error resetting password for %s: %v", reqData.Email, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}
	if result.RowsAffected == 0 {
		log.Printf("Password reset failed: user not found: %s", reqData.Email)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	log.Printf("Password reset successful for user: %s", reqData.Email)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully.", nil)
}
