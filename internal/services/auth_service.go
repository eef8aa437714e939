package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Aradhik11/task-management-api/internal/config"
	"github.com/Aradhik11/task-management-api/internal/models"
	"github.com/Aradhik11/task-management-api/internal/repositories"
)

// ErrInvalidCredentials covers both unknown email and wrong password so
// the login response never reveals which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles registration and login.
type AuthService struct {
	users      *repositories.UserRepository
	jwt        *JWTService
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repositories.UserRepository, jwt *JWTService, cfg *config.Config) *AuthService {
	return &AuthService{users: users, jwt: jwt, bcryptCost: cfg.BcryptCost}
}

// HashPassword hashes the password with bcrypt at the configured cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether the password matches the stored hash.
func (s *AuthService) CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// Register hashes the password, persists the account and issues its first
// token. A taken email surfaces as repositories.ErrDuplicateEmail.
func (s *AuthService) Register(req models.RegisterRequest) (*models.User, string, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	hashed, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		Role:     role,
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates the credentials and issues a token.
func (s *AuthService) Login(req models.LoginRequest) (*models.User, string, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.CheckPassword(user.Password, req.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
