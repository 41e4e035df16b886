package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/siswa-api/internal/app/models"
	"github.com/sekolahku/siswa-api/internal/pkg/auth"
)

// stubTokenRepo satisfies ITokenRepository for the auth gate tests
type stubTokenRepo struct {
	revoked map[string]bool
	err     error
}

func (r *stubTokenRepo) Revoke(_ context.Context, jti string, _ int64, _ time.Time) error {
	if r.revoked == nil {
		r.revoked = make(map[string]bool)
	}
	r.revoked[jti] = true
	return nil
}

func (r *stubTokenRepo) IsRevoked(_ context.Context, jti string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.revoked[jti], nil
}

func (r *stubTokenRepo) PurgeExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func newAuthTestRouter(jwtService *auth.JWTService, tokenRepo *stubTokenRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authMiddleware := NewAuthMiddleware(jwtService, tokenRepo)
	router.GET("/protected", authMiddleware.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt64(ContextUserIDKey),
			"email":   c.GetString(ContextEmailKey),
		})
	})
	return router
}

func issueToken(t *testing.T, jwtService *auth.JWTService) string {
	t.Helper()
	token, _, err := jwtService.GenerateToken(&models.User{ID: 42, Email: "john@example.com"})
	require.NoError(t, err)
	return token
}

func TestRequireAuthValidToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})
	router := newAuthTestRouter(jwtService, &stubTokenRepo{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["user_id"])
	assert.Equal(t, "john@example.com", body["email"])
}

func TestRequireAuthRejections(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})
	expiredService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: -time.Minute})
	otherService := auth.NewJWTService(auth.JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour})

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{name: "missing header", header: "", message: "Unauthenticated."},
		{name: "wrong scheme", header: "Basic abc", message: "Unauthenticated."},
		{name: "garbage token", header: "Bearer not.a.token", message: "Unauthenticated."},
		{name: "wrong signature", header: "Bearer " + issueToken(t, otherService), message: "Unauthenticated."},
		{name: "expired token", header: "Bearer " + issueToken(t, expiredService), message: "Token has expired."},
	}

	router := newAuthTestRouter(jwtService, &stubTokenRepo{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestRequireAuthRevokedToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})
	token := issueToken(t, jwtService)

	claims, err := jwtService.ValidateAndExtractClaims(token)
	require.NoError(t, err)

	tokenRepo := &stubTokenRepo{revoked: map[string]bool{claims.ID: true}}
	router := newAuthTestRouter(jwtService, tokenRepo)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRevocationLookupFailure(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})
	tokenRepo := &stubTokenRepo{err: errors.New("connection refused")}
	router := newAuthTestRouter(jwtService, tokenRepo)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
