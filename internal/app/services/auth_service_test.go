package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/siswa-api/internal/app/models/dto"
	"github.com/sekolahku/siswa-api/internal/pkg/apperrors"
	"github.com/sekolahku/siswa-api/internal/pkg/auth"
)

// fakeTokenRepo is an in-memory ITokenRepository for service tests
type fakeTokenRepo struct {
	revoked map[string]time.Time
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{revoked: make(map[string]time.Time)}
}

func (r *fakeTokenRepo) Revoke(_ context.Context, jti string, _ int64, expiresAt time.Time) error {
	r.revoked[jti] = expiresAt
	return nil
}

func (r *fakeTokenRepo) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := r.revoked[jti]
	return ok, nil
}

func (r *fakeTokenRepo) PurgeExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func newTestAuthService(userRepo *fakeUserRepo, tokenRepo *fakeTokenRepo) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "siswa-api-test",
	})
	return NewAuthService(userRepo, tokenRepo, jwtService, zerolog.Nop()), jwtService
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUser(userRepo, "John", "john@example.com", "secret123")
	svc, jwtService := newTestAuthService(userRepo, newFakeTokenRepo())

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "john@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)

	claims, err := jwtService.ValidateAndExtractClaims(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", claims.Email)
}

func TestLoginBadCredentials(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUser(userRepo, "John", "john@example.com", "secret123")
	svc, _ := newTestAuthService(userRepo, newFakeTokenRepo())

	// Wrong password and unknown email must be indistinguishable
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "john@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	userRepo := newFakeUserRepo()
	existing := seedUser(userRepo, "John", "john@example.com", "secret123")
	svc, _ := newTestAuthService(userRepo, newFakeTokenRepo())

	user, err := svc.Me(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)

	_, err = svc.Me(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLogout(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUser(userRepo, "John", "john@example.com", "secret123")
	tokenRepo := newFakeTokenRepo()
	svc, jwtService := newTestAuthService(userRepo, tokenRepo)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "john@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.AccessToken))

	claims, err := jwtService.ValidateAndExtractClaims(resp.AccessToken)
	require.NoError(t, err)
	revoked, err := tokenRepo.IsRevoked(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked, "logout must land the jti on the revocation list")
}

func TestLogoutInvalidToken(t *testing.T) {
	svc, _ := newTestAuthService(newFakeUserRepo(), newFakeTokenRepo())

	err := svc.Logout(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
