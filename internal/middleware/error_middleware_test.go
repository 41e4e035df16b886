package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/siswa-api/internal/pkg/apperrors"
)

func performWithError(err error, fallback string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandleAPIError(c, err, fallback)
	return rec
}

func TestHandleAPIErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "user not found", err: apperrors.ErrUserNotFound, status: http.StatusNotFound, message: "User not found."},
		{name: "student not found", err: apperrors.ErrStudentNotFound, status: http.StatusNotFound, message: "Student not found."},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", apperrors.ErrStudentNotFound), status: http.StatusNotFound, message: "Student not found."},
		{name: "user has students", err: apperrors.ErrUserHasStudents, status: http.StatusConflict, message: "User has associated students and cannot be deleted."},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, status: http.StatusUnauthorized, message: "Invalid credentials."},
		{name: "expired token", err: apperrors.ErrTokenExpired, status: http.StatusUnauthorized, message: "Unauthenticated."},
		{name: "invalid token", err: apperrors.ErrTokenInvalid, status: http.StatusUnauthorized, message: "Unauthenticated."},
		{name: "unexpected fault", err: errors.New("connection refused"), status: http.StatusInternalServerError, message: "An error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performWithError(tt.err, "An error occurred.")

			assert.Equal(t, tt.status, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
			assert.NotContains(t, body, "errors")
		})
	}
}

func TestHandleAPIErrorValidation(t *testing.T) {
	err := apperrors.NewValidationError(map[string][]string{
		"nis":   {"The nis field is required."},
		"email": {"The email must be a valid email address.", "The email has already been taken."},
	})

	rec := performWithError(err, "An error occurred.")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Error  string              `json:"error"`
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "The given data was invalid.", body.Error)
	assert.Equal(t, []string{"The nis field is required."}, body.Errors["nis"])
	assert.Len(t, body.Errors["email"], 2)
}

func TestHandleAPIErrorNeverLeaksInternalDetail(t *testing.T) {
	rec := performWithError(errors.New("pq: relation \"students\" does not exist"), "An error occurred while fetching students.")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
	assert.Contains(t, rec.Body.String(), "An error occurred while fetching students.")
}
