package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/siswa-api/internal/app/models"
	"github.com/sekolahku/siswa-api/internal/app/models/dto"
	"github.com/sekolahku/siswa-api/internal/middleware"
	"github.com/sekolahku/siswa-api/internal/pkg/apperrors"
)

// stubStudentService returns canned results and records what it was called with
type stubStudentService struct {
	students        []*models.Student
	student         *models.Student
	err             error
	createdBy       int64
	deletedID       int64
	receivedRequest *dto.StudentRequest
}

func (s *stubStudentService) GetAllStudents(_ context.Context) ([]*models.Student, error) {
	return s.students, s.err
}

func (s *stubStudentService) GetStudentByID(_ context.Context, _ int64) (*models.Student, error) {
	return s.student, s.err
}

func (s *stubStudentService) CreateStudent(_ context.Context, req *dto.StudentRequest, createdBy int64) (*models.Student, error) {
	s.receivedRequest = req
	s.createdBy = createdBy
	return s.student, s.err
}

func (s *stubStudentService) UpdateStudent(_ context.Context, _ int64, req *dto.StudentRequest) (*models.Student, error) {
	s.receivedRequest = req
	return s.student, s.err
}

func (s *stubStudentService) DeleteStudent(_ context.Context, id int64) error {
	s.deletedID = id
	return s.err
}

func newStudentTestRouter(svc *stubStudentService, callerID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Stand-in for the auth gate: inject the caller identity directly
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, callerID)
		c.Next()
	})

	controller := NewStudentController(svc)
	router.GET("/api/students", controller.Index)
	router.GET("/api/students/:id", controller.Show)
	router.POST("/api/students", controller.Store)
	router.PUT("/api/students/:id", controller.Update)
	router.DELETE("/api/students/:id", controller.Destroy)
	return router
}

func sampleStudent() *models.Student {
	phone := "08123456789"
	return &models.Student{
		ID:           1,
		NIS:          "12345678",
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		Phone:        &phone,
		DateOfBirth:  time.Date(2005, time.March, 20, 0, 0, 0, 0, time.UTC),
		PlaceOfBirth: "Jakarta",
		ClassName:    "XII IPA 1",
		CreatedBy:    7,
		Creator:      &models.User{ID: 7, Name: "Admin", Email: "admin@sekolahku.id", Password: "hash"},
	}
}

func TestStudentIndex(t *testing.T) {
	svc := &stubStudentService{students: []*models.Student{sampleStudent()}}
	router := newStudentTestRouter(svc, 7)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/students", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "12345678", body[0]["nis"])
	assert.Equal(t, "2005-03-20", body[0]["date_of_birth"])

	creator, ok := body[0]["creator"].(map[string]any)
	require.True(t, ok, "creator must be embedded")
	assert.Equal(t, "admin@sekolahku.id", creator["email"])
	assert.NotContains(t, creator, "password")
}

func TestStudentStore(t *testing.T) {
	svc := &stubStudentService{student: sampleStudent()}
	router := newStudentTestRouter(svc, 7)

	payload := `{"nis":"12345678","name":"Jane Doe","email":"jane@example.com","date_of_birth":"2005-03-20","place_of_birth":"Jakarta","class_name":"XII IPA 1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/students", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), svc.createdBy, "attribution comes from the authenticated caller")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["created_by"])
}

func TestStudentStoreValidationFailure(t *testing.T) {
	svc := &stubStudentService{err: apperrors.NewValidationError(map[string][]string{
		"nis": {"The nis field is required."},
	})}
	router := newStudentTestRouter(svc, 7)

	req := httptest.NewRequest(http.MethodPost, "/api/students", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Error  string              `json:"error"`
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "The given data was invalid.", body.Error)
	assert.Equal(t, []string{"The nis field is required."}, body.Errors["nis"])
}

func TestStudentShowNotFound(t *testing.T) {
	svc := &stubStudentService{err: apperrors.ErrStudentNotFound}
	router := newStudentTestRouter(svc, 7)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/students/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Student not found.")
}

func TestStudentShowNonNumericID(t *testing.T) {
	svc := &stubStudentService{student: sampleStudent()}
	router := newStudentTestRouter(svc, 7)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/students/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentUpdate(t *testing.T) {
	svc := &stubStudentService{student: sampleStudent()}
	router := newStudentTestRouter(svc, 7)

	payload := `{"nis":"12345678","name":"Jane Updated","email":"jane@example.com","date_of_birth":"2005-03-20","place_of_birth":"Jakarta","class_name":"XII IPA 2"}`
	req := httptest.NewRequest(http.MethodPut, "/api/students/1", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.receivedRequest)
	assert.Equal(t, "Jane Updated", svc.receivedRequest.Name)
}

func TestStudentDestroy(t *testing.T) {
	svc := &stubStudentService{}
	router := newStudentTestRouter(svc, 7)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/students/1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), svc.deletedID)
	assert.Contains(t, rec.Body.String(), "Student deleted successfully.")
}

func TestStudentIndexFailure(t *testing.T) {
	svc := &stubStudentService{err: assert.AnError}
	router := newStudentTestRouter(svc, 7)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/students", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An error occurred while fetching students.")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
