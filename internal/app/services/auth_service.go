package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sekolahku/siswa-api/internal/app/models"
	"github.com/sekolahku/siswa-api/internal/app/models/dto"
	"github.com/sekolahku/siswa-api/internal/app/repositories"
	"github.com/sekolahku/siswa-api/internal/pkg/apperrors"
	"github.com/sekolahku/siswa-api/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
	Logout(ctx context.Context, tokenString string) error
}

type authService struct {
	userRepo   repositories.IUserRepository
	tokenRepo  repositories.ITokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies credentials and issues an access token. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// Me returns the authenticated caller's user record
func (s *authService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Logout puts the presented token on the revocation list so the auth
// gate rejects it for the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return apperrors.ErrTokenExpired
		}
		return apperrors.ErrTokenInvalid
	}

	if err := s.tokenRepo.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}

	s.logger.Info().Int64("userID", claims.UserID).Msg("User logged out")
	return nil
}
