package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/andela/ah-olympians/internal/dto"
	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/andela/ah-olympians/pkg/apperror"
	"github.com/andela/ah-olympians/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, req dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	GetProfile(ctx context.Context, username string) (*dto.ProfileResponse, error)
	ListProfiles(ctx context.Context) ([]dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	DeactivateProfile(ctx context.Context, userID uuid.UUID) error
	ReactivateProfile(ctx context.Context, userID uuid.UUID) error
	UploadAvatar(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (*dto.ProfileResponse, error)
	SetNotifyPrefs(ctx context.Context, userID uuid.UUID, emailNotify, appNotify *bool) (*dto.ProfileResponse, error)

	Follow(ctx context.Context, followerID uuid.UUID, username string) (string, error)
	Unfollow(ctx context.Context, followerID uuid.UUID, username string) (string, error)
	Followers(ctx context.Context, username string) ([]dto.ProfileResponse, error)
	Following(ctx context.Context, username string) ([]dto.ProfileResponse, error)
}

type profileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	images   storage.ImageStorage
	folder   string
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, images storage.ImageStorage, folder string) ProfileService {
	return &profileService{
		profiles: profiles,
		users:    users,
		images:   images,
		folder:   folder,
	}
}

func (s *profileService) CreateProfile(ctx context.Context, userID uuid.UUID, req dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	if existing, err := s.profiles.FindByUserID(ctx, userID); err == nil {
		if !existing.Active {
			return nil, apperror.BadRequest("please activate your profile to continue")
		}
		return nil, apperror.Conflict("profile already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	avatar := req.Avatar
	if avatar == "" {
		avatar = storage.DefaultImageRef
	}

	profile := &model.Profile{
		UserID:         userID,
		Bio:            req.Bio,
		AvatarURL:      avatar,
		Interests:      req.Interests,
		FavoriteQuote:  req.FavoriteQuote,
		MailingAddress: req.MailingAddress,
		Website:        req.Website,
		Active:         true,
		EmailNotify:    true,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	return s.reload(ctx, userID)
}

func (s *profileService) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("profile not found")
		}
		return nil, err
	}

	resp := profileResponse(profile)
	return &resp, nil
}

func (s *profileService) GetProfile(ctx context.Context, username string) (*dto.ProfileResponse, error) {
	profile, err := s.activeProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := profileResponse(profile)
	return &resp, nil
}

func (s *profileService) ListProfiles(ctx context.Context) ([]dto.ProfileResponse, error) {
	profiles, err := s.profiles.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	return profileResponses(profiles), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.FindActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("profile not found")
		}
		return nil, err
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Interests != nil {
		profile.Interests = *req.Interests
	}
	if req.FavoriteQuote != nil {
		profile.FavoriteQuote = *req.FavoriteQuote
	}
	if req.MailingAddress != nil {
		profile.MailingAddress = *req.MailingAddress
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.Avatar != nil {
		profile.AvatarURL = *req.Avatar
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	resp := profileResponse(profile)
	return &resp, nil
}

func (s *profileService) DeactivateProfile(ctx context.Context, userID uuid.UUID) error {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("profile not found")
		}
		return err
	}

	if !profile.Active {
		return apperror.BadRequest("profile is already deactivated")
	}

	profile.Active = false
	return s.profiles.Update(ctx, profile)
}

func (s *profileService) ReactivateProfile(ctx context.Context, userID uuid.UUID) error {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("profile not found")
		}
		return err
	}

	if profile.Active {
		return apperror.BadRequest("profile is already active")
	}

	profile.Active = true
	return s.profiles.Update(ctx, profile)
}

func (s *profileService) UploadAvatar(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.FindActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("profile not found")
		}
		return nil, err
	}

	url, err := s.images.UploadImage(ctx, file, s.folder, fileName)
	if err != nil {
		return nil, err
	}

	profile.AvatarURL = url
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	resp := profileResponse(profile)
	return &resp, nil
}

func (s *profileService) SetNotifyPrefs(ctx context.Context, userID uuid.UUID, emailNotify, appNotify *bool) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.FindActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("profile not found")
		}
		return nil, err
	}

	if emailNotify != nil {
		profile.EmailNotify = *emailNotify
	}
	if appNotify != nil {
		profile.AppNotify = *appNotify
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	resp := profileResponse(profile)
	return &resp, nil
}

func (s *profileService) Follow(ctx context.Context, followerID uuid.UUID, username string) (string, error) {
	followed, err := s.activeProfileByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if followed.UserID == followerID {
		return "", apperror.BadRequest("you cannot follow yourself")
	}

	following, err := s.profiles.IsFollowing(ctx, followerID, followed.UserID)
	if err != nil {
		return "", err
	}
	if following {
		return "", apperror.BadRequest(fmt.Sprintf("you already follow %s", username))
	}

	if err := s.profiles.Follow(ctx, followerID, followed.UserID); err != nil {
		return "", err
	}

	return fmt.Sprintf("you are now following %s", username), nil
}

func (s *profileService) Unfollow(ctx context.Context, followerID uuid.UUID, username string) (string, error) {
	followed, err := s.activeProfileByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if followed.UserID == followerID {
		return "", apperror.BadRequest("you cannot unfollow yourself")
	}

	following, err := s.profiles.IsFollowing(ctx, followerID, followed.UserID)
	if err != nil {
		return "", err
	}
	if !following {
		return "", apperror.BadRequest(fmt.Sprintf("you do not follow %s", username))
	}

	if err := s.profiles.Unfollow(ctx, followerID, followed.UserID); err != nil {
		return "", err
	}

	return fmt.Sprintf("you have unfollowed %s", username), nil
}

func (s *profileService) Followers(ctx context.Context, username string) ([]dto.ProfileResponse, error) {
	profile, err := s.activeProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.profiles.Followers(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	return profileResponses(followers), nil
}

func (s *profileService) Following(ctx context.Context, username string) ([]dto.ProfileResponse, error) {
	profile, err := s.activeProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	following, err := s.profiles.Following(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	return profileResponses(following), nil
}

func (s *profileService) activeProfileByUsername(ctx context.Context, username string) (*model.Profile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("profile not found")
		}
		return nil, err
	}

	profile, err := s.profiles.FindActiveByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("profile not found")
		}
		return nil, err
	}

	return profile, nil
}

func (s *profileService) reload(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := profileResponse(profile)
	return &resp, nil
}

func profileResponse(profile *model.Profile) dto.ProfileResponse {
	username := ""
	if profile.User != nil {
		username = profile.User.Username
	}

	return dto.ProfileResponse{
		Username:       username,
		Bio:            profile.Bio,
		Avatar:         profile.AvatarURL,
		Interests:      profile.Interests,
		FavoriteQuote:  profile.FavoriteQuote,
		MailingAddress: profile.MailingAddress,
		Website:        profile.Website,
		Active:         profile.Active,
		EmailNotify:    profile.EmailNotify,
		AppNotify:      profile.AppNotify,
		CreatedAt:      profile.CreatedAt,
	}
}

func profileResponses(profiles []model.Profile) []dto.ProfileResponse {
	responses := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, profileResponse(&profiles[i]))
	}
	return responses
}
