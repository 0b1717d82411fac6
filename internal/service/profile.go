package service

import (
	"context"
	"errors"
	"time"

	"github.com/wallfeed/wallfeed/internal/dto"
	apperrors "github.com/wallfeed/wallfeed/internal/errors"
	"github.com/wallfeed/wallfeed/internal/model"
	"github.com/wallfeed/wallfeed/internal/repository"
	ctxutil "github.com/wallfeed/wallfeed/pkg/context"
	"github.com/wallfeed/wallfeed/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) Get(ctx context.Context, id uint) (*dto.UserSnapshot, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Get")

	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to get profile").
			Uint("profile_id", id).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return dto.NewUserSnapshot(profile), nil
}

// Create makes a profile record without credentials, used by the direct
// profile-creation endpoint.
func (s *ProfileService) Create(ctx context.Context, req *dto.CreateProfileRequest) (*dto.UserSnapshot, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Create")

	logger.InfoWithContext(ctx, "Creating profile").
		String("email", req.Email).
		Log()

	birthDate := model.BlankBirthDate
	if req.BirthDate != "" {
		parsed, err := parseBirthDate(req.BirthDate)
		if err != nil {
			return nil, apperrors.ErrInvalidInput
		}
		birthDate = parsed
	}

	profile := &model.Profile{
		Email:     req.Email,
		Avatar:    req.Avatar,
		About:     req.About,
		BirthDate: birthDate,
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		logger.ErrorWithContext(ctx, "Failed to create profile").
			String("email", req.Email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return dto.NewUserSnapshot(profile), nil
}

// Update merges the provided fields into the record, leaving missing ones
// untouched, and returns the freshly reloaded profile.
func (s *ProfileService) Update(ctx context.Context, id uint, req *dto.UpdateProfileRequest) (*dto.UserSnapshot, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Update")

	logger.InfoWithContext(ctx, "Updating profile").
		Uint("profile_id", id).
		Log()

	fields := map[string]interface{}{}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.About != nil {
		fields["about"] = *req.About
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.BirthDate != nil {
		parsed, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, apperrors.ErrInvalidInput
		}
		fields["birth_date"] = parsed
	}

	if len(fields) > 0 {
		if err := s.profiles.Update(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			logger.ErrorWithContext(ctx, "Failed to update profile").
				Uint("profile_id", id).
				Err(err).
				Log()
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	return s.Get(ctx, id)
}

// UpdateAvatar sets the avatar filename only and returns the reloaded
// profile.
func (s *ProfileService) UpdateAvatar(ctx context.Context, id uint, filename string) (*dto.UserSnapshot, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateAvatar")

	logger.InfoWithContext(ctx, "Updating avatar").
		Uint("profile_id", id).
		String("filename", filename).
		Log()

	if err := s.profiles.Update(ctx, id, map[string]interface{}{"avatar": filename}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to update avatar").
			Uint("profile_id", id).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return s.Get(ctx, id)
}

func parseBirthDate(raw string) (datatypes.Date, error) {
	parsed, err := time.Parse(dto.BirthDateFormat, raw)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(parsed), nil
}
