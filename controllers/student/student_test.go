package studentController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"rkzs/config"
	"rkzs/database"
	"rkzs/middleware"
	"rkzs/models"
	studentRoutes "rkzs/routers/studentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type studentRow struct {
	ID                   uint   `json:"id"`
	Name                 string `json:"name"`
	CourseID             uint   `json:"course_id"`
	FranchiseID          uint   `json:"franchise_id"`
	PaymentStatus        string `json:"payment_status"`
	CompletionStatus     string `json:"completion_status"`
	CertificatePath      string `json:"certificate_path"`
	CourseName           string `json:"course_name"`
	FranchiseName        string `json:"franchise_name"`
	CertificateAvailable bool   `json:"certificate_available"`
	CertificateURL       string `json:"certificate_url"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()
	config.AppConfig.JWTKey = "test-secret"
	config.AppConfig.SaltRound = 4
	config.AppConfig.UploadDir = t.TempDir()
	database.ConnectTestDb()

	app := fiber.New()
	studentRoutes.SetupStudentRoutes(app)
	return app
}

// seedUser inserts a user directly; the auth endpoints have their own
// tests and these only need a valid token.
func seedUser(t *testing.T, name string, role models.Role) (uint, string) {
	t.Helper()
	user := models.User{
		Name:       name,
		Email:      name + "@example.com",
		Password:   "irrelevant-hash",
		UniqueCode: "FR-" + name,
		Role:       role,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, role)
	require.NoError(t, err)
	return user.ID, token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, envelope) {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func addStudent(t *testing.T, app *fiber.App, token, name string, courseID uint) uint {
	t.Helper()
	resp, env := doJSON(t, app, http.MethodPost, "/students", fiber.Map{
		"name":      name,
		"course_id": courseID,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var data struct {
		StudentID uint `json:"studentId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.StudentID)
	return data.StudentID
}

func listStudents(t *testing.T, app *fiber.App, token string) []studentRow {
	t.Helper()
	resp, env := doJSON(t, app, http.MethodGet, "/students", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []studentRow
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	return rows
}

func uploadCertificate(t *testing.T, app *fiber.App, token string, studentID uint, filename string) *http.Response {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("certificate", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 certificate body"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/students/%d/upload-certificate", studentID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(middleware.TokenHeader, token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAddStudent(t *testing.T) {
	app := setupApp(t)
	franchiseID, token := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)

	id := addStudent(t, app, token, "Bob", 1)

	var student models.Student
	require.NoError(t, database.Database.Db.First(&student, id).Error)
	assert.Equal(t, franchiseID, student.FranchiseID)
	assert.Equal(t, models.StatusPending, student.PaymentStatus)
	assert.Equal(t, models.StatusPending, student.CompletionStatus)
	assert.Empty(t, student.CertificatePath)
}

func TestAddStudentForbiddenForAdmin(t *testing.T) {
	app := setupApp(t)
	_, adminToken := seedUser(t, "Admin", models.RoleAdmin)

	resp, _ := doJSON(t, app, http.MethodPost, "/students", fiber.Map{
		"name":      "Bob",
		"course_id": 1,
	}, adminToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAddStudentUnknownCourse(t *testing.T) {
	app := setupApp(t)
	_, token := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)

	resp, _ := doJSON(t, app, http.MethodPost, "/students", fiber.Map{
		"name":      "Bob",
		"course_id": 9999,
	}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddStudentMissingFields(t *testing.T) {
	app := setupApp(t)
	_, token := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)

	resp, _ := doJSON(t, app, http.MethodPost, "/students", fiber.Map{
		"name": "Bob",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStudentListIsolation(t *testing.T) {
	app := setupApp(t)
	_, tokenA := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)
	_, tokenB := seedUser(t, "FranchiseB", models.RoleFranchiseAdmin)
	_, adminToken := seedUser(t, "Admin", models.RoleAdmin)

	bobID := addStudent(t, app, tokenA, "Bob", 1)
	addStudent(t, app, tokenB, "Carol", 2)

	// A sees only Bob, with the course joined in
	rowsA := listStudents(t, app, tokenA)
	require.Len(t, rowsA, 1)
	assert.Equal(t, "Bob", rowsA[0].Name)
	assert.Equal(t, bobID, rowsA[0].ID)
	assert.NotEmpty(t, rowsA[0].CourseName)
	assert.Empty(t, rowsA[0].FranchiseName)

	// B never sees Bob
	rowsB := listStudents(t, app, tokenB)
	require.Len(t, rowsB, 1)
	assert.Equal(t, "Carol", rowsB[0].Name)

	// Admin sees both, with franchise names attached
	rowsAdmin := listStudents(t, app, adminToken)
	require.Len(t, rowsAdmin, 2)
	names := map[string]string{}
	for _, r := range rowsAdmin {
		names[r.Name] = r.FranchiseName
	}
	assert.Equal(t, "FranchiseA", names["Bob"])
	assert.Equal(t, "FranchiseB", names["Carol"])
}

func TestUpdatePaymentStatus(t *testing.T) {
	app := setupApp(t)
	_, franchiseToken := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)
	_, adminToken := seedUser(t, "Admin", models.RoleAdmin)

	id := addStudent(t, app, franchiseToken, "Bob", 1)

	resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/students/%d/payment-status", id), fiber.Map{
		"payment_status": "completed",
	}, adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var student models.Student
	require.NoError(t, database.Database.Db.First(&student, id).Error)
	assert.Equal(t, models.StatusCompleted, student.PaymentStatus)
}

func TestUpdatePaymentStatusForbiddenForFranchise(t *testing.T) {
	app := setupApp(t)
	_, franchiseToken := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)

	id := addStudent(t, app, franchiseToken, "Bob", 1)

	resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/students/%d/payment-status", id), fiber.Map{
		"payment_status": "completed",
	}, franchiseToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdatePaymentStatusUnknownStudent(t *testing.T) {
	app := setupApp(t)
	_, adminToken := seedUser(t, "Admin", models.RoleAdmin)

	resp, _ := doJSON(t, app, http.MethodPut, "/students/9999/payment-status", fiber.Map{
		"payment_status": "completed",
	}, adminToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdatePaymentStatusInvalidValue(t *testing.T) {
	app := setupApp(t)
	_, franchiseToken := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)
	_, adminToken := seedUser(t, "Admin", models.RoleAdmin)

	id := addStudent(t, app, franchiseToken, "Bob", 1)

	resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/students/%d/payment-status", id), fiber.Map{
		"payment_status": "paid",
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateCompletionStatus(t *testing.T) {
	app := setupApp(t)
	_, franchiseToken := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)
	_, adminToken := seedUser(t, "Admin", models.RoleAdmin)

	id := addStudent(t, app, franchiseToken, "Bob", 1)

	resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/students/%d/completion-status", id), fiber.Map{
		"completion_status": "completed",
	}, franchiseToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Admin cannot touch completion status
	resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/students/%d/completion-status", id), fiber.Map{
		"completion_status": "pending",
	}, adminToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Any franchise-admin may update any student's completion status; there
// is no ownership scoping on this endpoint.
func TestUpdateCompletionStatusCrossFranchise(t *testing.T) {
	app := setupApp(t)
	_, tokenA := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)
	_, tokenB := seedUser(t, "FranchiseB", models.RoleFranchiseAdmin)

	id := addStudent(t, app, tokenA, "Bob", 1)

	resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/students/%d/completion-status", id), fiber.Map{
		"completion_status": "completed",
	}, tokenB)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadCertificate(t *testing.T) {
	app := setupApp(t)
	_, franchiseToken := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)

	id := addStudent(t, app, franchiseToken, "Bob", 1)

	resp := uploadCertificate(t, app, franchiseToken, id, "Bob's Certificate 2026.pdf")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var student models.Student
	require.NoError(t, database.Database.Db.First(&student, id).Error)
	require.NotEmpty(t, student.CertificatePath)

	// Stored name is sanitized and the blob really exists
	assert.NotContains(t, student.CertificatePath, "'")
	assert.NotContains(t, student.CertificatePath, " ")
	filename := filepath.Base(student.CertificatePath)
	_, err := os.Stat(filepath.Join(config.AppConfig.UploadDir, filename))
	assert.NoError(t, err)
}

func TestUploadCertificateForbiddenForAdmin(t *testing.T) {
	app := setupApp(t)
	_, franchiseToken := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)
	_, adminToken := seedUser(t, "Admin", models.RoleAdmin)

	id := addStudent(t, app, franchiseToken, "Bob", 1)

	resp := uploadCertificate(t, app, adminToken, id, "cert.pdf")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUploadCertificateUnknownStudentCleansUp(t *testing.T) {
	app := setupApp(t)
	_, franchiseToken := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)

	resp := uploadCertificate(t, app, franchiseToken, 9999, "cert.pdf")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The stored blob was compensating-deleted
	entries, err := os.ReadDir(config.AppConfig.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadCertificateWithoutFile(t *testing.T) {
	app := setupApp(t)
	_, franchiseToken := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)

	id := addStudent(t, app, franchiseToken, "Bob", 1)

	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/students/%d/upload-certificate", id), nil, franchiseToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Certificate availability must hold iff payment and completion are
// both completed and a certificate exists, whatever the order the three
// updates happen in.
func TestCertificateAvailabilityOrderings(t *testing.T) {
	type step int
	const (
		pay step = iota
		complete
		upload
	)
	orderings := [][]step{
		{pay, complete, upload},
		{pay, upload, complete},
		{complete, pay, upload},
		{complete, upload, pay},
		{upload, pay, complete},
		{upload, complete, pay},
	}

	for _, order := range orderings {
		app := setupApp(t)
		_, franchiseToken := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)
		_, adminToken := seedUser(t, "Admin", models.RoleAdmin)

		id := addStudent(t, app, franchiseToken, "Bob", 1)

		apply := func(s step) {
			switch s {
			case pay:
				resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/students/%d/payment-status", id), fiber.Map{
					"payment_status": "completed",
				}, adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)
			case complete:
				resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/students/%d/completion-status", id), fiber.Map{
					"completion_status": "completed",
				}, franchiseToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)
			case upload:
				resp := uploadCertificate(t, app, franchiseToken, id, "cert.pdf")
				require.Equal(t, http.StatusOK, resp.StatusCode)
			}
		}

		for i, s := range order {
			apply(s)

			rows := listStudents(t, app, franchiseToken)
			require.Len(t, rows, 1)

			if i < len(order)-1 {
				assert.False(t, rows[0].CertificateAvailable, "ordering %v step %d", order, i)
				assert.Empty(t, rows[0].CertificateURL)
			} else {
				assert.True(t, rows[0].CertificateAvailable, "ordering %v", order)
				assert.NotEmpty(t, rows[0].CertificateURL)
			}
		}
	}
}

// Full §8-style scenario: enroll, both statuses completed, certificate
// uploaded, owner sees the link, another franchise sees nothing.
func TestCertificateScenario(t *testing.T) {
	app := setupApp(t)
	_, tokenA := seedUser(t, "FranchiseA", models.RoleFranchiseAdmin)
	_, tokenB := seedUser(t, "FranchiseB", models.RoleFranchiseAdmin)
	_, adminToken := seedUser(t, "Admin", models.RoleAdmin)

	id := addStudent(t, app, tokenA, "Bob", 1)

	resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/students/%d/payment-status", id), fiber.Map{
		"payment_status": "completed",
	}, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/students/%d/completion-status", id), fiber.Map{
		"completion_status": "completed",
	}, tokenA)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Equal(t, http.StatusOK, uploadCertificate(t, app, tokenA, id, "bob.pdf").StatusCode)

	rows := listStudents(t, app, tokenA)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].CertificateAvailable)
	assert.Equal(t, "/"+rows[0].CertificatePath, rows[0].CertificateURL)

	assert.Empty(t, listStudents(t, app, tokenB))
}
