package studentController

import (
	"log"

	"rkzs/config"
	"rkzs/database"
	"rkzs/middleware"
	"rkzs/models"
	"rkzs/utils"
	studentValidators "rkzs/validators/student"

	"github.com/gofiber/fiber/v2"
)

// StudentRow is a student joined with its course name and, for admin
// listings, the owning franchise's display name.
type StudentRow struct {
	ID                   uint   `json:"id"`
	Name                 string `json:"name"`
	CourseID             uint   `json:"course_id"`
	FranchiseID          uint   `json:"franchise_id"`
	PaymentStatus        string `json:"payment_status"`
	CompletionStatus     string `json:"completion_status"`
	CertificatePath      string `json:"certificate_path"`
	CourseName           string `json:"course_name"`
	FranchiseName        string `json:"franchise_name,omitempty"`
	CertificateAvailable bool   `json:"certificate_available"`
	CertificateURL       string `json:"certificate_url,omitempty"`
}

// StudentList returns all students for admins, own students for
// franchise-admins. Ordered by id so the listing is deterministic.
func StudentList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, ok := c.Locals("userRole").(models.Role)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	var rows []StudentRow

	query := db.Model(&models.Student{}).
		Select("students.id, students.name, students.course_id, students.franchise_id, " +
			"students.payment_status, students.completion_status, students.certificate_path, " +
			"courses.course_name, users.name AS franchise_name").
		Joins("JOIN courses ON courses.id = students.course_id").
		Joins("JOIN users ON users.id = students.franchise_id").
		Order("students.id asc")

	switch role {
	case models.RoleAdmin:
		// Global view, franchise name included
	case models.RoleFranchiseAdmin:
		query = query.Where("students.franchise_id = ?", userID)
	default:
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := query.Scan(&rows).Error; err != nil {
		log.Printf("Error fetching students for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	for i := range rows {
		row := &rows[i]
		if role != models.RoleAdmin {
			row.FranchiseName = "" // only admins see the franchise column
		}
		row.CertificateAvailable = models.CertificateAvailable(row.PaymentStatus, row.CompletionStatus, row.CertificatePath)
		if row.CertificateAvailable {
			row.CertificateURL = utils.GetFileURL(row.CertificatePath)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully.", rows)
}

// AddStudent enrolls a new student under the calling franchise-admin.
func AddStudent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedStudent").(*studentValidators.AddStudentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if course exists
	var course models.Course
	if err := db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	student := models.Student{
		Name:             reqData.Name,
		CourseID:         reqData.CourseID,
		FranchiseID:      userID,
		PaymentStatus:    models.StatusPending,
		CompletionStatus: models.StatusPending,
	}

	if err := db.Create(&student).Error; err != nil {
		log.Printf("Error adding student: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add student!", nil)
	}

	log.Printf("Student added: id=%d name=%s franchise=%d", student.ID, student.Name, userID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Student added successfully.", fiber.Map{
		"studentId": student.ID,
	})
}

// UpdatePaymentStatus is the admin side of the status workflow.
func UpdatePaymentStatus(c *fiber.Ctx) error {
	studentID := c.Locals("studentID").(int)
	status := c.Locals("validatedStatus").(string)

	result := database.Database.Db.Model(&models.Student{}).
		Where("id = ?", studentID).
		Update("payment_status", status)
	if result.Error != nil {
		log.Printf("Error updating payment status for student %d: %v", studentID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment status!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	log.Printf("Payment status updated for student %d: %s", studentID, status)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment status updated.", nil)
}

// UpdateCompletionStatus is the franchise-admin side of the status
// workflow. No ownership check: any franchise-admin may update any
// student, matching the admin-side endpoint.
func UpdateCompletionStatus(c *fiber.Ctx) error {
	studentID := c.Locals("studentID").(int)
	status := c.Locals("validatedStatus").(string)

	result := database.Database.Db.Model(&models.Student{}).
		Where("id = ?", studentID).
		Update("completion_status", status)
	if result.Error != nil {
		log.Printf("Error updating completion status for student %d: %v", studentID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update completion status!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	log.Printf("Completion status updated for student %d: %s", studentID, status)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completion status updated.", nil)
}

// UploadCertificate stores the uploaded file and records its reference
// on the student. Blob write and record update are not one transaction:
// if the update fails the file is deleted again so nothing orphans.
func UploadCertificate(c *fiber.Ctx) error {
	studentID := c.Locals("studentID").(int)

	file, err := c.FormFile("certificate")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
	}

	uploadDir := config.AppConfig.UploadDir

	filename, err := utils.SaveUploadedFile(file, uploadDir)
	if err != nil {
		log.Printf("Error saving certificate upload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store certificate!", nil)
	}

	certPath := "uploads/" + filename

	result := database.Database.Db.Model(&models.Student{}).
		Where("id = ?", studentID).
		Update("certificate_path", certPath)
	if result.Error != nil {
		log.Printf("Error recording certificate for student %d: %v", studentID, result.Error)
		utils.RemoveUploadedFile(uploadDir, filename)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload certificate!", nil)
	}
	if result.RowsAffected == 0 {
		utils.RemoveUploadedFile(uploadDir, filename)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	log.Printf("Certificate uploaded for student %d: %s", studentID, certPath)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate uploaded successfully.", fiber.Map{
		"certificate_path": certPath,
	})
}
