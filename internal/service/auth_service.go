package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"glacier_storefront/internal/model"
	"glacier_storefront/internal/repository"
	"glacier_storefront/internal/utils"

	"github.com/google/uuid"
)

var (
	// ErrInvalidUser is returned when the email has no account. The UI
	// recognizes this message and offers the account-creation path, so it
	// must stay distinguishable from ErrInvalidCredentials.
	ErrInvalidUser        = errors.New("invalid user. please create an account")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("account with this email already exists")
)

// AuthService provides identity operations for the auth routes
type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*model.AuthResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Login authenticates a user. The two failure modes are deliberately
// distinct: unknown email and wrong password surface different errors.
func (s *authService) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidUser
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{Token: token, User: user.Sanitize()}, nil
}

// Register creates a new customer account. The store is untouched when
// the email is already taken.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.AuthResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           newUserID(),
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
		Role:         model.RoleCustomer,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return &model.AuthResponse{Token: token, User: user.Sanitize()}, nil
}

// newUserID generates an opaque user id, e.g. "u-9f8a3c1d"
func newUserID() string {
	return "u-" + strings.Split(uuid.NewString(), "-")[0]
}
