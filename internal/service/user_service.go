package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop-admin/internal/apperror"
	"shop-admin/internal/domain"
	"shop-admin/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing.
const BcryptCost = 10

// Principal is the authenticated identity attached to a request after
// credential verification.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Claims are the JWT claims carried by an access token.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CredentialsInput carries a username/password pair.
type CredentialsInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserService handles admin accounts and the stateless token strategy.
type UserService interface {
	Create(ctx context.Context, input CredentialsInput) (*domain.User, error)
	Login(ctx context.Context, input CredentialsInput) (accessToken string, err error)
	ValidateToken(tokenString string) (*Principal, error)
	// SeedAdmin creates the initial admin account when no user exists yet.
	SeedAdmin(ctx context.Context, username, password string) error
}

type userService struct {
	repo         repository.UserRepository
	jwtSecret    string
	accessExpiry time.Duration
	logger       *zap.Logger
}

// NewUserService creates a new UserService. accessExpiryDays controls token
// lifetime.
func NewUserService(repo repository.UserRepository, jwtSecret string, accessExpiryDays int, logger *zap.Logger) UserService {
	if accessExpiryDays <= 0 {
		accessExpiryDays = 1
	}
	return &userService{
		repo:         repo,
		jwtSecret:    jwtSecret,
		accessExpiry: time.Duration(accessExpiryDays) * 24 * time.Hour,
		logger:       logger,
	}
}

// Create registers an admin account. Usernames are unique; the password is
// stored only as a bcrypt hash.
func (s *userService) Create(ctx context.Context, input CredentialsInput) (*domain.User, error) {
	existing, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check username", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), BcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Username:  input.Username,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	user.ID = id
	return user, nil
}

// Login verifies the credentials and mints a signed access token. Invalid
// username and invalid password produce the same error.
func (s *userService) Login(ctx context.Context, input CredentialsInput) (string, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", apperror.Unauthorized("invalid credentials")
	}
	if err != nil {
		s.logger.Error("Failed to find user", zap.Error(err))
		return "", apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return "", apperror.Unauthorized("invalid credentials")
	}

	now := time.Now()
	claims := &Claims{
		ID:       user.ID.Hex(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return "", apperror.Internal(err)
	}

	return signed, nil
}

// ValidateToken verifies an access token against the shared secret and
// expiry and returns the decoded principal.
func (s *userService) ValidateToken(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, apperror.Unauthorized("token is invalid, please login again")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperror.Unauthorized("token is invalid, please login again")
	}

	return &Principal{ID: claims.ID, Username: claims.Username}, nil
}

// SeedAdmin bootstraps the first admin account. It is a no-op when any user
// already exists or when no credentials are configured.
func (s *userService) SeedAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := s.Create(ctx, CredentialsInput{Username: username, Password: password}); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	s.logger.Info("Seeded initial admin user", zap.String("username", username))
	return nil
}
