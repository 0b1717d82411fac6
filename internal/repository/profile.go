package repository

import (
	"context"
	"time"

	"github.com/wallfeed/wallfeed/internal/model"
	"github.com/wallfeed/wallfeed/pkg/logger"
	"gorm.io/gorm"
)

// ProfileRepository is the narrow persistence contract for profile records.
// Not-found is reported as gorm.ErrRecordNotFound.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	Create(ctx context.Context, profile *model.Profile) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id uint) (*model.Profile, error) {
	logger.DebugWithContext(ctx, "Getting profile by ID").
		Uint("profile_id", id).
		Log()

	start := time.Now()
	var profile model.Profile

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&profile)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "Failed to get profile by ID").
			Uint("profile_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &profile, nil
}

// GetByEmail does an exact-match, case-sensitive lookup
func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	logger.DebugWithContext(ctx, "Getting profile by email").
		String("email", email).
		Log()

	start := time.Now()
	var profile model.Profile

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&profile)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "Failed to get profile by email").
			String("email", email).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	logger.DebugWithContext(ctx, "Creating profile").
		String("email", profile.Email).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Create(profile)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create profile").
			String("email", profile.Email).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Profile created").
		String("email", profile.Email).
		Uint("profile_id", profile.ID).
		Duration(duration).
		Log()

	return nil
}

// Update applies only the given columns; the caller decides which fields
// participate in the merge.
func (r *profileRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	logger.DebugWithContext(ctx, "Updating profile").
		Uint("profile_id", id).
		Int("field_count", len(fields)).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Updates(fields)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update profile").
			Uint("profile_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No profile found to update").
			Uint("profile_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	return nil
}
