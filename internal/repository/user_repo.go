package repository

import (
	"context"

	"github.com/andela/ah-olympians/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error

	SaveVerification(ctx context.Context, v *model.EmailVerification) error
	FindVerification(ctx context.Context, token string) (*model.EmailVerification, error)
	InvalidateVerification(ctx context.Context, v *model.EmailVerification) error

	SavePasswordReset(ctx context.Context, r *model.PasswordReset) error
	FindPasswordReset(ctx context.Context, token string) (*model.PasswordReset, error)
	InvalidatePasswordReset(ctx context.Context, r *model.PasswordReset) error

	FindSocialIdentity(ctx context.Context, provider, externalID string) (*model.SocialIdentity, error)
	SaveSocialIdentity(ctx context.Context, identity *model.SocialIdentity) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SaveVerification(ctx context.Context, v *model.EmailVerification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *userRepository) FindVerification(ctx context.Context, token string) (*model.EmailVerification, error) {
	var v model.EmailVerification
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&v).Error; err != nil {
		return nil, err
	}

	return &v, nil
}

func (r *userRepository) InvalidateVerification(ctx context.Context, v *model.EmailVerification) error {
	v.Valid = false
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *userRepository) SavePasswordReset(ctx context.Context, reset *model.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

func (r *userRepository) FindPasswordReset(ctx context.Context, token string) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&reset).Error; err != nil {
		return nil, err
	}

	return &reset, nil
}

func (r *userRepository) InvalidatePasswordReset(ctx context.Context, reset *model.PasswordReset) error {
	reset.Valid = false
	return r.db.WithContext(ctx).Save(reset).Error
}

func (r *userRepository) FindSocialIdentity(ctx context.Context, provider, externalID string) (*model.SocialIdentity, error) {
	var identity model.SocialIdentity
	if err := r.db.WithContext(ctx).
		Where("provider = ? AND external_id = ?", provider, externalID).
		First(&identity).Error; err != nil {
		return nil, err
	}

	return &identity, nil
}

func (r *userRepository) SaveSocialIdentity(ctx context.Context, identity *model.SocialIdentity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}
