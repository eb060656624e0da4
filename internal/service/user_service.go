package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

const defaultAvatarColor = "#6366f1"

// UserService defines the interface for user account business logic
type UserService interface {
	Register(ctx context.Context, actor Actor, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, actor Actor, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	UpdateUser(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error
	// EnsurePrimordialAdmin seeds the protected admin account on first startup.
	EnsurePrimordialAdmin(ctx context.Context, username, password string) error
}

type userServiceImpl struct {
	userRepo    repository.UserRepository
	settingRepo repository.SystemSettingRepository
	audit       AuditService
	jwtSecret   []byte
	tokenTTL    time.Duration
	logger      *zap.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(
	userRepo repository.UserRepository,
	settingRepo repository.SystemSettingRepository,
	audit AuditService,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *zap.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		settingRepo: settingRepo,
		audit:       audit,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Register creates a regular account. Registration can be switched off by an admin
// through the allow_registrations system setting.
func (s *userServiceImpl) Register(ctx context.Context, actor Actor, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	setting, err := s.settingRepo.Get(ctx, domain.SettingAllowRegistrations)
	if err != nil {
		s.logger.Error("Failed to read registration setting", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to register user", err.Error())
	}
	if setting != nil && setting.Value == "false" {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Registration is disabled", "")
	}

	existing, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Error("Failed to check username", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to register user", err.Error())
	}
	if existing != nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Username is already taken", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to register user", err.Error())
	}

	avatarColor := req.AvatarColor
	if avatarColor == "" {
		avatarColor = defaultAvatarColor
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         domain.UserRoleUser,
		AvatarColor:  avatarColor,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to register user", err.Error())
	}

	// Self-registration: the freshly created account is the acting user.
	actor.UserID = user.ID
	s.audit.Record(ctx, actor, "user.registered", domain.EntityTypeUser, user.ID, map[string]interface{}{
		"username": user.Username,
		"role":     string(user.Role),
	})

	resp := toUserResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues a signed token
func (s *userServiceImpl) Login(ctx context.Context, actor Actor, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Error("Failed to find user", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to log in", err.Error())
	}
	if user == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid username or password", "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid username or password", "")
	}
	if !user.IsActive {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Account is disabled", "")
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to log in", err.Error())
	}

	actor.UserID = user.ID
	s.audit.Record(ctx, actor, "user.login", domain.EntityTypeUser, user.ID, map[string]interface{}{
		"username": user.Username,
	})

	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// GetUser returns a single account
func (s *userServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("User not found", id.String())
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to get user", err.Error())
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers returns all accounts ordered by creation time
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list users", err.Error())
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses, nil
}

// UpdateUser applies an admin update to an account. The primordial admin keeps its
// role and stays active no matter what the request says.
func (s *userServiceImpl) UpdateUser(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("User not found", id.String())
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update user", err.Error())
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.AvatarColor != nil {
		user.AvatarColor = *req.AvatarColor
	}
	if req.Role != nil {
		if user.IsPrimordial && domain.UserRole(*req.Role) != domain.UserRoleAdmin {
			return nil, response.NewAppError(response.ErrCodeForbidden, "The primordial admin cannot be demoted", "")
		}
		user.Role = domain.UserRole(*req.Role)
	}
	if req.IsActive != nil {
		if user.IsPrimordial && !*req.IsActive {
			return nil, response.NewAppError(response.ErrCodeForbidden, "The primordial admin cannot be deactivated", "")
		}
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update user", err.Error())
	}

	s.audit.Record(ctx, actor, "user.updated", domain.EntityTypeUser, user.ID, map[string]interface{}{
		"username": user.Username,
		"role":     string(user.Role),
		"isActive": user.IsActive,
	})

	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteUser removes an account. The primordial admin can never be deleted.
func (s *userServiceImpl) DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("User not found", id.String())
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete user", err.Error())
	}

	if user.IsPrimordial {
		return response.NewAppError(response.ErrCodeForbidden, "The primordial admin cannot be deleted", "")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete user", err.Error())
	}

	s.audit.Record(ctx, actor, "user.deleted", domain.EntityTypeUser, id, map[string]interface{}{
		"username": user.Username,
	})
	return nil
}

// EnsurePrimordialAdmin creates the seed admin account if it does not exist yet
func (s *userServiceImpl) EnsurePrimordialAdmin(ctx context.Context, username, password string) error {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         domain.UserRoleAdmin,
		AvatarColor:  defaultAvatarColor,
		IsActive:     true,
		IsPrimordial: true,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("Primordial admin account created", zap.String("username", username))
	return nil
}

func (s *userServiceImpl) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Email:       user.Email,
		Role:        string(user.Role),
		AvatarColor: user.AvatarColor,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}
