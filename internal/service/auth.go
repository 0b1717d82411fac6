package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wallfeed/wallfeed/internal/dto"
	apperrors "github.com/wallfeed/wallfeed/internal/errors"
	"github.com/wallfeed/wallfeed/internal/model"
	"github.com/wallfeed/wallfeed/internal/repository"
	ctxutil "github.com/wallfeed/wallfeed/pkg/context"
	"github.com/wallfeed/wallfeed/pkg/logger"
	"gorm.io/gorm"
)

// AuthService orchestrates registration and login over the profile store
// and the token service.
type AuthService struct {
	profiles   repository.ProfileRepository
	jwtService *JWTService
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(profiles repository.ProfileRepository, jwtService *JWTService, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		profiles:   profiles,
		jwtService: jwtService,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// hashPassword computes a single-round unsalted SHA-256 hex digest.
// This is a known weakness carried over deliberately: stored hashes are
// part of the data compatibility contract, switching to a salted KDF
// would invalidate every existing credential.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func checkPassword(password, storedHash string) bool {
	return hashPassword(password) == storedHash
}

// Register creates a profile with blank fields for the given credentials
// and issues both token variants. Fails with ErrEmailExists when the email
// is taken (exact-match, case-sensitive lookup). The existence check and
// the insert are not a single transaction; a concurrent duplicate
// registration can slip through, which the unique email index then stops.
func (s *AuthService) Register(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Register")

	logger.InfoWithContext(ctx, "Registering user").
		String("email", email).
		Log()

	_, err := s.profiles.GetByEmail(ctx, email)
	if err == nil {
		logger.WarnWithContext(ctx, "Registration rejected: email already exists").
			String("email", email).
			Log()
		return nil, apperrors.ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.ErrorWithContext(ctx, "Failed to check email availability").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	profile := &model.Profile{
		Email:     email,
		Password:  hashPassword(password),
		Avatar:    "",
		About:     "",
		BirthDate: model.BlankBirthDate,
		Phone:     "",
		FirstName: "",
		LastName:  "",
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		logger.ErrorWithContext(ctx, "Failed to create profile").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response, err := s.issueTokens(ctx, profile)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "User registered").
		String("email", email).
		Uint("user_id", profile.ID).
		Log()

	return response, nil
}

// Login authenticates the credentials and issues both token variants.
// Unknown email and wrong password surface as the same error so the
// caller cannot tell which part mismatched.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Login")

	logger.InfoWithContext(ctx, "User login attempt").
		String("email", email).
		Log()

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Login failed: user not found").
				String("email", email).
				Log()
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.ErrorWithContext(ctx, "Failed to get profile for login").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !checkPassword(password, profile.Password) {
		logger.WarnWithContext(ctx, "Login failed: incorrect password").
			String("email", email).
			Uint("user_id", profile.ID).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	response, err := s.issueTokens(ctx, profile)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "User logged in").
		String("email", email).
		Uint("user_id", profile.ID).
		Log()

	return response, nil
}

// ValidateToken is a thin pass-through to token verification that
// collapses every failure to nil instead of propagating an error.
func (s *AuthService) ValidateToken(token string) jwt.MapClaims {
	claims, err := s.jwtService.Verify(token)
	if err != nil {
		return nil
	}
	return claims
}

func (s *AuthService) issueTokens(ctx context.Context, profile *model.Profile) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtService.Issue(profile.ID, s.accessTTL)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to issue access token").
			Uint("user_id", profile.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshToken, err := s.jwtService.Issue(profile.ID, s.refreshTTL)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to issue refresh token").
			Uint("user_id", profile.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.AuthResponse{
		User:         *dto.NewUserSnapshot(profile),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
