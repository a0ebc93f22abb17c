package repository

import (
	"context"

	"github.com/andela/ah-olympians/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	FindAllActive(ctx context.Context) ([]model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error

	Follow(ctx context.Context, followerID, followedID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	Followers(ctx context.Context, userID uuid.UUID) ([]model.Profile, error)
	Following(ctx context.Context, userID uuid.UUID) ([]model.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? AND active = ?", userID, true).
		First(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) FindAllActive(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("active = ?", true).
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) Follow(ctx context.Context, followerID, followedID uuid.UUID) error {
	follow := model.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	return r.db.WithContext(ctx).Create(&follow).Error
}

func (r *profileRepository) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{}).Error
}

func (r *profileRepository) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Followers returns the profiles of users who follow userID.
func (r *profileRepository) Followers(ctx context.Context, userID uuid.UUID) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN follows ON follows.follower_id = profiles.user_id").
		Where("follows.followed_id = ?", userID).
		Find(&profiles).Error
	return profiles, err
}

// Following returns the profiles that userID follows.
func (r *profileRepository) Following(ctx context.Context, userID uuid.UUID) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN follows ON follows.followed_id = profiles.user_id").
		Where("follows.follower_id = ?", userID).
		Find(&profiles).Error
	return profiles, err
}
