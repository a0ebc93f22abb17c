package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andela/ah-olympians/internal/dto"
	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/andela/ah-olympians/pkg/apperror"
	"github.com/andela/ah-olympians/pkg/mailer"
	"github.com/andela/ah-olympians/pkg/social"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenKindAccess = "access"
	tokenKindVerify = "verify"
	tokenKindReset  = "reset"
)

type tokenClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	SocialLogin(ctx context.Context, req dto.SocialLoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	repo     repository.UserRepository
	mail     mailer.Mailer
	verifier social.Verifier
	secret   string
	tokenTTL time.Duration
	resetTTL time.Duration
	baseURL  string
}

func NewAuthService(repo repository.UserRepository, mail mailer.Mailer, verifier social.Verifier, secret string, tokenTTL, resetTTL time.Duration, baseURL string) AuthService {
	return &authService{
		repo:     repo,
		mail:     mail,
		verifier: verifier,
		secret:   secret,
		tokenTTL: tokenTTL,
		resetTTL: resetTTL,
		baseURL:  baseURL,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.ensureUserUnique(ctx, req.Email, req.Username); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.sendVerificationEmail(ctx, user)

	return s.buildAuthResponse(user)
}

func (s *authService) sendVerificationEmail(ctx context.Context, user *model.User) {
	token, _, err := s.generateToken(user.ID, tokenKindVerify, s.tokenTTL)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate verification token")
		return
	}

	verification := &model.EmailVerification{
		UserID: user.ID,
		Token:  token,
	}
	if err := s.repo.SaveVerification(ctx, verification); err != nil {
		log.Error().Err(err).Msg("failed to save verification token")
		return
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nVerify your email to complete your Authors Haven registration:\n%s/api/users/verify?token=%s\n",
		user.Username, s.baseURL, token)

	if err := s.mail.Send([]string{user.Email}, "Verify Your Email to Complete Your Authors Haven Registration", body); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("verification email not sent")
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	verification, err := s.repo.FindVerification(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Forbidden("invalid token")
		}
		return err
	}

	if !verification.Valid {
		return apperror.BadRequest("token already used")
	}

	if _, err := s.parseToken(token, tokenKindVerify); err != nil {
		return apperror.Forbidden("invalid token")
	}

	if err := s.repo.InvalidateVerification(ctx, verification); err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, verification.UserID)
	if err != nil {
		return err
	}

	user.Active = true
	return s.repo.Update(ctx, user)
}

// RequestPasswordReset always reports success so the endpoint cannot be
// used to probe which emails are registered.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	message := "If an account with that email exists, a password reset link has been sent"

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message, nil
		}
		return "", err
	}

	token, _, err := s.generateToken(user.ID, tokenKindReset, s.resetTTL)
	if err != nil {
		return "", err
	}

	reset := &model.PasswordReset{
		UserID: user.ID,
		Token:  token,
	}
	if err := s.repo.SavePasswordReset(ctx, reset); err != nil {
		return "", err
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nUse the link below to reset your Authors Haven password:\n%s/api/users/password-reset/%s\n",
		user.Username, s.baseURL, token)

	if err := s.mail.Send([]string{user.Email}, "Authors Haven Password Reset", body); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("password reset email not sent")
	}

	return message, nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	reset, err := s.repo.FindPasswordReset(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Forbidden("invalid token")
		}
		return err
	}

	if !reset.Valid {
		return apperror.BadRequest("token already used")
	}

	if _, err := s.parseToken(token, tokenKindReset); err != nil {
		return apperror.Forbidden("invalid or expired token")
	}

	user, err := s.repo.FindByID(ctx, reset.UserID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	return s.repo.InvalidatePasswordReset(ctx, reset)
}

func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	resp := userResponse(user)
	return &resp, nil
}

func (s *authService) UpdateUser(ctx context.Context, userID uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.repo.FindByUsername(ctx, *req.Username); err == nil {
			return nil, apperror.Conflict("username already taken")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, *req.Email); err == nil {
			return nil, apperror.Conflict("email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := userResponse(user)
	return &resp, nil
}

func (s *authService) SocialLogin(ctx context.Context, req dto.SocialLoginRequest) (*dto.AuthResponse, error) {
	identity, err := s.verifier.Verify(ctx, req.Provider, req.AccessToken, req.AccessTokenSecret)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindSocialIdentity(ctx, identity.Provider, identity.ExternalID); err == nil {
		user, err := s.repo.FindByID(ctx, existing.UserID)
		if err != nil {
			return nil, err
		}
		return s.buildAuthResponse(user)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Bind to an existing account with the same email, or create one.
	user, err := s.repo.FindByEmail(ctx, identity.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user, err = s.createSocialUser(ctx, identity)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.SaveSocialIdentity(ctx, &model.SocialIdentity{
		UserID:     user.ID,
		Provider:   identity.Provider,
		ExternalID: identity.ExternalID,
	}); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) createSocialUser(ctx context.Context, identity *social.Identity) (*model.User, error) {
	if identity.Email == "" {
		return nil, apperror.BadRequest("social provider did not supply an email address")
	}

	username := identity.Name
	if username == "" {
		username = strings.SplitN(identity.Email, "@", 2)[0]
	}
	username = strings.ToLower(strings.ReplaceAll(username, " ", "-"))

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		username = fmt.Sprintf("%s-%s", username, uuid.NewString()[:8])
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Social accounts never log in with a password; store an unguessable one.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        identity.Email,
		PasswordHash: string(hashed),
		Active:       true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	token, _, err := s.generateToken(user.ID, tokenKindAccess, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		UserResponse: userResponse(user),
		Token:        token,
	}, nil
}

func (s *authService) generateToken(userID uuid.UUID, kind string, ttl time.Duration) (string, int64, error) {
	expiresAt := time.Now().Add(ttl)

	claims := tokenClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

func (s *authService) parseToken(tokenString, kind string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || claims.Kind != kind {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return uuid.Parse(claims.Subject)
}

func (s *authService) ensureUserUnique(ctx context.Context, email, username string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return apperror.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return apperror.Conflict("username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

func userResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}
