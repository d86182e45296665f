package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/apperror"
	"github.com/mbayedev/partstore-api/pkg/oauth"
	"github.com/mbayedev/partstore-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	jwtManager *utils.JWTManager
	google     *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	jwtManager *utils.JWTManager,
	google *oauth.GoogleOAuthService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtManager: jwtManager,
		google:     google,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperror.ErrForbidden
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     *string
}

// Register creates a new user account with the cashier role
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	existingUser, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  hashedPassword,
		Provider:  "local",
		Phone:     input.Phone,
		IsActive:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	defaultRole, err := s.roleRepo.GetByName(ctx, "cashier")
	if err != nil {
		return user, nil
	}
	if defaultRole != nil {
		_ = s.userRepo.AssignRole(ctx, user.ID, defaultRole.ID)
	}

	return user, nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(ctx, userID)
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrNotFound
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// GoogleAuthURL returns the Google consent page URL
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if !s.google.IsConfigured() {
		return "", apperror.NewBadRequestError("Google sign-in is not configured")
	}
	return s.google.GetAuthURL(state), nil
}

// GoogleCallback exchanges the OAuth code, provisions the user on first
// sign-in and returns tokens.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*LoginOutput, error) {
	if !s.google.IsConfigured() {
		return nil, apperror.NewBadRequestError("Google sign-in is not configured")
	}

	token, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	info, err := s.google.GetUserInfo(ctx, token)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !info.VerifiedEmail {
		return nil, apperror.NewBadRequestError("Google account email is not verified")
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		providerID := info.ID
		photo := info.Picture
		user = &entity.User{
			FirstName:  info.GivenName,
			LastName:   info.FamilyName,
			Email:      info.Email,
			Provider:   "google",
			ProviderID: &providerID,
			IsActive:   true,
		}
		if photo != "" {
			user.Photo = &photo
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}

		if defaultRole, roleErr := s.roleRepo.GetByName(ctx, "cashier"); roleErr == nil && defaultRole != nil {
			_ = s.userRepo.AssignRole(ctx, user.ID, defaultRole.ID)
		}
	} else if !user.IsActive {
		return nil, apperror.ErrForbidden
	}

	return s.issueTokens(ctx, user.ID)
}

func (s *AuthService) issueTokens(ctx context.Context, userID uuid.UUID) (*LoginOutput, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.GetRoleNames(), user.GetPermissions())
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
