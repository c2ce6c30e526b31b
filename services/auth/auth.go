package auth

import (
	"time"

	"stayhub/config"
	userRepo "stayhub/database/repository/user"
	"stayhub/errs"
	"stayhub/models"
	"stayhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, authentication and user management.
type AuthService interface {
	Register(req models.UserRegistrationRequest) (*models.UserResponse, error)
	Authenticate(req models.UserLoginRequest) (*models.UserLoginResponse, error)
	Logout(userID string) error
	GetProfile(userID string) (*models.UserResponse, error)
	UpdateProfile(userID string, req models.UserUpdateRequest) (*models.UserResponse, error)
	UpdateUserRole(userID string, req models.UserRoleUpdateRequest) (*models.UserResponse, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Repo userRepo.UserRepository
}

// Register creates a new user account with the CUSTOMER role.
func (s *DefaultAuthService) Register(req models.UserRegistrationRequest) (*models.UserResponse, error) {
	exists, err := s.Repo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewRegistration(
			"can't register user with email %s, email already exists", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Roles:        []string{models.RoleCustomer},
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}

	resp := models.ToUserResponse(user)
	return &resp, nil
}

// Authenticate verifies credentials and issues a bearer token. The
// token hash is cached so the auth middleware can verify it cheaply.
func (s *DefaultAuthService) Authenticate(req models.UserLoginRequest) (*models.UserLoginResponse, error) {
	user, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, errs.NewUnauthorized("authentication failed, please try again")
	}
	if user == nil {
		return nil, errs.NewUnauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errs.NewUnauthorized("invalid email or password")
	}

	ttl := time.Duration(config.AppConfig.JWTTTLHours) * time.Hour
	token, err := utils.GenerateToken(user.ID, user.Email, ttl)
	if err != nil {
		return nil, err
	}

	if err := utils.CacheAuthToken(user.ID, token, ttl); err != nil {
		// A cache outage falls back to signature-only verification.
		utils.GetLogger().Warn("Authenticate: failed to cache token hash", zap.Error(err))
	}

	return &models.UserLoginResponse{Token: token}, nil
}

// Logout drops the cached token hash, invalidating the bearer token
// before its exp claim runs out.
func (s *DefaultAuthService) Logout(userID string) error {
	return utils.RevokeAuthToken(userID)
}

// GetProfile returns the public view of a user.
func (s *DefaultAuthService) GetProfile(userID string) (*models.UserResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	resp := models.ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies profile changes, re-checking email uniqueness
// when the address changes.
func (s *DefaultAuthService) UpdateProfile(userID string, req models.UserUpdateRequest) (*models.UserResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		other, err := s.Repo.GetByEmail(req.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != userID {
			return nil, errs.NewRegistration("email %s already exists", req.Email)
		}
	}

	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}

	resp := models.ToUserResponse(user)
	return &resp, nil
}

// UpdateUserRole replaces the role set of a user.
func (s *DefaultAuthService) UpdateUserRole(userID string, req models.UserRoleUpdateRequest) (*models.UserResponse, error) {
	for _, role := range req.Roles {
		if !models.ValidRole(role) {
			return nil, errs.NewValidation("unknown role: %s", role)
		}
	}

	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	user.Roles = req.Roles
	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}

	resp := models.ToUserResponse(user)
	return &resp, nil
}

func (s *DefaultAuthService) findUser(userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewNotFound("user", userID)
	}
	return user, nil
}
